package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"airbnb-pricing/models"
	"airbnb-pricing/pricing"
)

// listingFlags binds a ListingInput to command flags, defaulting to the
// listing form's initial values.
type listingFlags struct {
	city         string
	propertyType string
	amenities    string
	in           models.ListingInput
}

func addListingFlags(c *cobra.Command) *listingFlags {
	def := pricing.DefaultInput()
	lf := &listingFlags{in: def}

	f := c.Flags()
	f.StringVar(&lf.city, "city", string(def.City), "city: Paris, Vienna, Berlin or Zurich")
	f.StringVar(&lf.propertyType, "type", string(def.PropertyType), "property type, e.g. \"Private room\"")
	f.StringVar(&lf.amenities, "amenities", joinAmenities(def.Amenities), "comma separated amenities")
	f.IntVar(&lf.in.Bedrooms, "bedrooms", def.Bedrooms, "bedrooms (0-10)")
	f.IntVar(&lf.in.Bathrooms, "bathrooms", def.Bathrooms, "bathrooms (0-10)")
	f.IntVar(&lf.in.Accommodates, "accommodates", def.Accommodates, "guests (1-16)")
	f.IntVar(&lf.in.QualityScore, "quality", def.QualityScore, "subjective quality (1-5)")
	f.IntVar(&lf.in.MinNights, "min-nights", def.MinNights, "minimum nights (1-60)")
	f.StringVar(&lf.in.Neighborhood, "neighborhood", "", "neighborhood or arrondissement")
	f.StringVar(&lf.in.Street, "street", "", "street (display only)")
	f.BoolVar(&lf.in.InstantBookable, "instant-book", def.InstantBookable, "instant bookable")
	f.StringVar(&lf.in.TargetDate, "date", def.TargetDate, "target date (YYYY-MM-DD)")
	return lf
}

// input resolves the string flags and validates the result.
func (lf *listingFlags) input() (models.ListingInput, error) {
	in := lf.in

	city, err := pricing.ParseCity(lf.city)
	if err != nil {
		return in, err
	}
	pt, err := pricing.ParsePropertyType(lf.propertyType)
	if err != nil {
		return in, err
	}
	amenities, err := pricing.ParseAmenities(lf.amenities)
	if err != nil {
		return in, err
	}
	in.City, in.PropertyType, in.Amenities = city, pt, amenities

	if err := pricing.Validate(in); err != nil {
		return in, err
	}
	return in, nil
}

func joinAmenities(a []models.Amenity) string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

// printEstimate renders the KPI block and feature table.
func printEstimate(w io.Writer, in models.ListingInput, est models.PriceEstimate) {
	fmt.Fprintf(w, "Suggested price (mock)\n")
	fmt.Fprintf(w, "  Recommended nightly rate : €%d\n", est.RecommendedRate)
	fmt.Fprintf(w, "  Competitive range        : €%d – €%d\n", est.RangeLow, est.RangeHigh)
	fmt.Fprintf(w, "  Rationale                : %.0f%%\n", pricing.RationaleScore(in)*100)
	if c, err := pricing.CityCenter(in.City); err == nil {
		fmt.Fprintf(w, "  Map marker               : %.4f, %.4f\n", c.Lat, c.Lon)
	}

	fmt.Fprintf(w, "\nFeature summary\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range pricing.Summary(in) {
		fmt.Fprintf(tw, "  %s\t%s\n", row.Feature, row.Value)
	}
	_ = tw.Flush()
}
