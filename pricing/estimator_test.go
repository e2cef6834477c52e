package pricing

import (
	"errors"
	"testing"

	"airbnb-pricing/models"
)

func listing(city models.City, pt models.PropertyType, accommodates, quality int, amenities ...models.Amenity) models.ListingInput {
	return models.ListingInput{
		City:         city,
		PropertyType: pt,
		Bedrooms:     1,
		Bathrooms:    1,
		Accommodates: accommodates,
		QualityScore: quality,
		Amenities:    amenities,
		MinNights:    2,
	}
}

func est(rate, low, high int) models.PriceEstimate {
	return models.PriceEstimate{RecommendedRate: rate, RangeLow: low, RangeHigh: high}
}

func TestEstimateScenarios(t *testing.T) {
	all := AmenityCatalog()

	tests := []struct {
		name string
		in   models.ListingInput
		want models.PriceEstimate
	}{
		{"berlin entire home", listing(models.Berlin, models.EntireHome, 2, 3, models.WiFi, models.Kitchen), est(95, 80, 109)},
		{"zurich private room", listing(models.Zurich, models.PrivateRoom, 2, 3), est(75, 63, 86)},
		{"paris hotel room", listing(models.Paris, models.HotelRoom, 4, 5, all...), est(257, 218, 295)},
		{"vienna shared room", listing(models.Vienna, models.SharedRoom, 1, 1), est(20, 17, 23)},
		{"paris defaults", listing(models.Paris, models.EntireHome, 2, 3, models.WiFi, models.Kitchen), est(128, 108, 147)},
		{"zurich hotel max", listing(models.Zurich, models.HotelRoom, 16, 5, all...), est(524, 445, 602)},
	}

	for _, tt := range tests {
		got, err := Estimate(tt.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %+v; want %+v", tt.name, got, tt.want)
		}
	}
}

func TestEstimateRangeInvariant(t *testing.T) {
	for _, c := range Cities() {
		for _, pt := range PropertyTypes() {
			for acc := 1; acc <= 16; acc++ {
				for q := 1; q <= 5; q++ {
					for n := 0; n <= len(amenityOrder); n++ {
						in := listing(c, pt, acc, q, amenityOrder[:n]...)
						got, err := Estimate(in)
						if err != nil {
							t.Fatalf("Estimate(%+v): %v", in, err)
						}
						if got.RangeLow > got.RecommendedRate || got.RecommendedRate > got.RangeHigh {
							t.Fatalf("range invariant broken for %+v: %+v", in, got)
						}
					}
				}
			}
		}
	}
}

func TestEstimateMonotonic(t *testing.T) {
	rate := func(in models.ListingInput) int {
		t.Helper()
		got, err := Estimate(in)
		if err != nil {
			t.Fatalf("Estimate: %v", err)
		}
		return got.RecommendedRate
	}

	for _, c := range Cities() {
		for _, pt := range PropertyTypes() {
			prev := rate(listing(c, pt, 2, 3))
			for acc := 3; acc <= 16; acc++ {
				cur := rate(listing(c, pt, acc, 3))
				if cur < prev {
					t.Errorf("%s/%s: accommodates %d gave %d < %d", c, pt, acc, cur, prev)
				}
				prev = cur
			}

			prev = rate(listing(c, pt, 2, 1))
			for q := 2; q <= 5; q++ {
				cur := rate(listing(c, pt, 2, q))
				if cur < prev {
					t.Errorf("%s/%s: quality %d gave %d < %d", c, pt, q, cur, prev)
				}
				prev = cur
			}

			prev = rate(listing(c, pt, 2, 3))
			for n := 1; n <= len(amenityOrder); n++ {
				cur := rate(listing(c, pt, 2, 3, amenityOrder[:n]...))
				if cur < prev {
					t.Errorf("%s/%s: %d amenities gave %d < %d", c, pt, n, cur, prev)
				}
				prev = cur
			}
		}
	}
}

func TestEstimateAccommodatesBelowIncluded(t *testing.T) {
	one, _ := Estimate(listing(models.Berlin, models.EntireHome, 1, 3))
	two, _ := Estimate(listing(models.Berlin, models.EntireHome, 2, 3))
	if one != two {
		t.Errorf("accommodates 1 and 2 should price the same: %+v vs %+v", one, two)
	}
}

func TestEstimateDeterministic(t *testing.T) {
	in := listing(models.Vienna, models.EntireHome, 6, 4, models.WiFi, models.TV, models.Balcony)
	first, err := Estimate(in)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		again, _ := Estimate(in)
		if again != first {
			t.Fatalf("call %d: got %+v; want %+v", i, again, first)
		}
	}
}

func TestEstimateAmenityOrderAndDuplicates(t *testing.T) {
	a, _ := Estimate(listing(models.Paris, models.EntireHome, 2, 3, models.WiFi, models.Kitchen))
	b, _ := Estimate(listing(models.Paris, models.EntireHome, 2, 3, models.Kitchen, models.WiFi))
	c, _ := Estimate(listing(models.Paris, models.EntireHome, 2, 3, models.Kitchen, models.WiFi, models.WiFi))
	if a != b || b != c {
		t.Errorf("amenity order or repetition changed the estimate: %+v %+v %+v", a, b, c)
	}
}

func TestAmenityBonusCap(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{2, 6},
		{9, 27},
		{10, 30},
		{11, 30},
		{20, 30},
	}
	for _, tt := range tests {
		if got := amenityBonus(tt.n); got != tt.want {
			t.Errorf("amenityBonus(%d) = %d; want %d", tt.n, got, tt.want)
		}
	}
	if amenityBonus(20) != amenityBonus(10) {
		t.Error("20 amenities should earn the same bonus as 10")
	}
}

func TestEstimateUnknownCategory(t *testing.T) {
	tests := []struct {
		name string
		in   models.ListingInput
	}{
		{"city", listing("Madrid", models.EntireHome, 2, 3)},
		{"property type", listing(models.Paris, "Castle", 2, 3)},
		{"amenity", listing(models.Paris, models.EntireHome, 2, 3, "Sauna")},
	}
	for _, tt := range tests {
		_, err := Estimate(tt.in)
		if !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("%s: got %v; want ErrUnknownCategory", tt.name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(DefaultInput()); err != nil {
		t.Fatalf("default input should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.ListingInput)
	}{
		{"bedrooms", func(in *models.ListingInput) { in.Bedrooms = 11 }},
		{"bathrooms", func(in *models.ListingInput) { in.Bathrooms = -1 }},
		{"accommodates low", func(in *models.ListingInput) { in.Accommodates = 0 }},
		{"accommodates high", func(in *models.ListingInput) { in.Accommodates = 17 }},
		{"quality", func(in *models.ListingInput) { in.QualityScore = 6 }},
		{"min nights", func(in *models.ListingInput) { in.MinNights = 61 }},
		{"target date", func(in *models.ListingInput) { in.TargetDate = "15/06/2025" }},
	}
	for _, tt := range tests {
		in := DefaultInput()
		tt.mutate(&in)
		if err := Validate(in); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%s: got %v; want ErrOutOfRange", tt.name, err)
		}
	}
}

func TestSummaryAndRationale(t *testing.T) {
	in := DefaultInput()
	rows := Summary(in)
	if len(rows) != 9 {
		t.Fatalf("summary rows: got %d, want 9", len(rows))
	}
	if rows[1].Value != "-" {
		t.Errorf("empty neighborhood: got %q, want %q", rows[1].Value, "-")
	}
	if rows[6].Value != "Yes" {
		t.Errorf("instant book: got %q, want Yes", rows[6].Value)
	}
	if rows[7].Value != "2" {
		t.Errorf("amenities count: got %q, want 2", rows[7].Value)
	}

	if got := RationaleScore(in); got != 0.5 {
		t.Errorf("RationaleScore: got %v, want 0.5", got)
	}
	in.Amenities = AmenityCatalog()
	if got := RationaleScore(in); got != 1.0 {
		t.Errorf("RationaleScore capped: got %v, want 1", got)
	}
}

func TestSummaryCountsDistinctAmenities(t *testing.T) {
	in := DefaultInput()
	in.Amenities = []models.Amenity{models.WiFi, models.WiFi, models.WiFi}

	est, err := Estimate(in)
	if err != nil {
		t.Fatal(err)
	}
	if est.RecommendedRate != 123 {
		t.Errorf("rate: got %d, want 123", est.RecommendedRate)
	}
	if got := Summary(in)[7].Value; got != "1" {
		t.Errorf("amenities count: got %q, want 1", got)
	}
	if got := RationaleScore(in); got != 0.4 {
		t.Errorf("RationaleScore: got %v, want 0.4", got)
	}
}
