// Package pricing computes the mock nightly price for a listing.
//
// The numbers are placeholders that stand in for a learned model: a base
// rate is adjusted by additive bonuses for amenities, quality and capacity,
// then scaled by per-city and per-property-type factors.
package pricing

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"airbnb-pricing/models"
)

const (
	basePrice = 70

	amenityPoints = 3
	amenityCap    = 30

	neutralQuality = 3
	qualityPoints  = 12

	includedGuests = 2
	guestPoints    = 6

	lowBand  = 0.85
	highBand = 1.15
)

var cityFactors = map[models.City]float64{
	models.Paris:  1.35,
	models.Vienna: 1.1,
	models.Berlin: 1.0,
	models.Zurich: 1.8,
}

var typeFactors = map[models.PropertyType]float64{
	models.EntireHome:  1.25,
	models.PrivateRoom: 0.6,
	models.SharedRoom:  0.4,
	models.HotelRoom:   1.4,
}

// Estimate returns the recommended nightly rate and its competitive range.
//
// It is deterministic and has no side effects. Numeric fields are assumed
// to be within the ranges Validate enforces; the only error is an unknown
// city, property type or amenity, wrapped in ErrUnknownCategory.
func Estimate(in models.ListingInput) (models.PriceEstimate, error) {
	cityFactor, ok := cityFactors[in.City]
	if !ok {
		return models.PriceEstimate{}, fmt.Errorf("%w: city %q", ErrUnknownCategory, in.City)
	}
	typeFactor, ok := typeFactors[in.PropertyType]
	if !ok {
		return models.PriceEstimate{}, fmt.Errorf("%w: property type %q", ErrUnknownCategory, in.PropertyType)
	}
	n, err := amenityCount(in.Amenities)
	if err != nil {
		return models.PriceEstimate{}, err
	}

	points := basePrice + amenityBonus(n) + qualityBonus(in.QualityScore) + capacityBonus(in.Accommodates)
	rate := int(math.Floor(float64(points) * cityFactor * typeFactor))

	return models.PriceEstimate{
		RecommendedRate: rate,
		RangeLow:        int(math.Floor(float64(rate) * lowBand)),
		RangeHigh:       int(math.Floor(float64(rate) * highBand)),
	}, nil
}

func amenityBonus(n int) int {
	return min(n*amenityPoints, amenityCap)
}

func qualityBonus(score int) int {
	return (score - neutralQuality) * qualityPoints
}

func capacityBonus(guests int) int {
	return max(0, (guests-includedGuests)*guestPoints)
}

// amenityCount counts distinct catalog amenities.
func amenityCount(amenities []models.Amenity) (int, error) {
	seen := make(map[models.Amenity]struct{}, len(amenities))
	for _, a := range amenities {
		if !isCatalogAmenity(a) {
			return 0, fmt.Errorf("%w: amenity %q", ErrUnknownCategory, a)
		}
		seen[a] = struct{}{}
	}
	return len(seen), nil
}

// Validate checks the ranges the listing form allows. Callers run it before
// Estimate; Estimate itself trusts its input.
func Validate(in models.ListingInput) error {
	checks := []struct {
		field    string
		val      int
		min, max int
	}{
		{"bedrooms", in.Bedrooms, 0, 10},
		{"bathrooms", in.Bathrooms, 0, 10},
		{"accommodates", in.Accommodates, 1, 16},
		{"quality_score", in.QualityScore, 1, 5},
		{"min_nights", in.MinNights, 1, 60},
	}
	for _, c := range checks {
		if c.val < c.min || c.val > c.max {
			return fmt.Errorf("%w: %s=%d (want %d-%d)", ErrOutOfRange, c.field, c.val, c.min, c.max)
		}
	}
	if in.TargetDate != "" {
		if _, err := time.Parse(time.DateOnly, in.TargetDate); err != nil {
			return fmt.Errorf("%w: target_date %q is not YYYY-MM-DD", ErrOutOfRange, in.TargetDate)
		}
	}
	return nil
}

// DefaultInput returns the listing form's initial values.
func DefaultInput() models.ListingInput {
	return models.ListingInput{
		City:            models.Paris,
		PropertyType:    models.EntireHome,
		Bedrooms:        1,
		Bathrooms:       1,
		Accommodates:    2,
		QualityScore:    3,
		Amenities:       []models.Amenity{models.WiFi, models.Kitchen},
		MinNights:       2,
		InstantBookable: true,
		TargetDate:      "2025-06-15",
	}
}

// RationaleScore is the 0..1 fill of the rationale bar: amenity count plus
// quality score over ten, capped at one.
func RationaleScore(in models.ListingInput) float64 {
	return math.Min(1.0, float64(displayedAmenities(in.Amenities)+in.QualityScore)/10)
}

// displayedAmenities is the distinct amenity count, falling back to the raw
// length when the list holds something outside the catalog.
func displayedAmenities(amenities []models.Amenity) int {
	n, err := amenityCount(amenities)
	if err != nil {
		return len(amenities)
	}
	return n
}

// Summary builds the feature table shown next to an estimate.
func Summary(in models.ListingInput) []models.FeatureRow {
	neighborhood := in.Neighborhood
	if neighborhood == "" {
		neighborhood = "-"
	}
	instant := "No"
	if in.InstantBookable {
		instant = "Yes"
	}
	return []models.FeatureRow{
		{Feature: "City", Value: string(in.City)},
		{Feature: "Neighborhood", Value: neighborhood},
		{Feature: "Property type", Value: string(in.PropertyType)},
		{Feature: "Bedrooms", Value: strconv.Itoa(in.Bedrooms)},
		{Feature: "Bathrooms", Value: strconv.Itoa(in.Bathrooms)},
		{Feature: "Accommodates", Value: strconv.Itoa(in.Accommodates)},
		{Feature: "Instant book", Value: instant},
		{Feature: "Amenities count", Value: strconv.Itoa(displayedAmenities(in.Amenities))},
		{Feature: "Min nights", Value: strconv.Itoa(in.MinNights)},
	}
}
