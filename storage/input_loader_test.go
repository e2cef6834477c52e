package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"airbnb-pricing/models"
	"airbnb-pricing/pricing"
)

func TestReadCSVInputs(t *testing.T) {
	data := `city,property_type,accommodates,quality_score,amenities,instant_bookable,extra
Berlin,Entire home/apt,2,3,Wi-Fi;Kitchen,false,x
zurich,private room,,,,true,y
`
	got, err := ReadCSVInputs(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len: got %d, want 2", len(got))
	}

	if got[0].City != models.Berlin || got[0].InstantBookable {
		t.Errorf("row 1: %+v", got[0])
	}
	est, _ := pricing.Estimate(got[0])
	if est.RecommendedRate != 95 {
		t.Errorf("row 1 rate: got %d, want 95", est.RecommendedRate)
	}

	if got[1].City != models.Zurich || got[1].PropertyType != models.PrivateRoom {
		t.Errorf("row 2 categories: %+v", got[1])
	}
	if got[1].Accommodates != 2 || got[1].QualityScore != 3 {
		t.Errorf("row 2 should take defaults: %+v", got[1])
	}
	if len(got[1].Amenities) != 0 {
		t.Errorf("row 2 amenities should be empty: %v", got[1].Amenities)
	}
	est, _ = pricing.Estimate(got[1])
	if est.RecommendedRate != 75 {
		t.Errorf("row 2 rate: got %d, want 75", est.RecommendedRate)
	}
}

func TestReadCSVInputsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown city", "city\nMadrid\n"},
		{"bad int", "city,bedrooms\nParis,two\n"},
		{"bad bool", "city,instant_bookable\nParis,maybe\n"},
	}
	for _, tt := range tests {
		if _, err := ReadCSVInputs(strings.NewReader(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
	if _, err := ReadCSVInputs(strings.NewReader("city\nMadrid\n")); !errors.Is(err, pricing.ErrUnknownCategory) {
		t.Errorf("unknown city should wrap ErrUnknownCategory, got %v", err)
	}
}

func TestReadYAMLInputs(t *testing.T) {
	data := `
listings:
  - city: Zurich
    property_type: Private room
    amenities: []
  - city: Paris
    accommodates: 4
    quality_score: 5
    amenities: [Wi-Fi, TV]
    neighborhood: Le Marais
    instant_bookable: false
    target_date: 2025-07-01
`
	got, err := ReadYAMLInputs(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len: got %d, want 2", len(got))
	}
	if got[0].Bedrooms != 1 || len(got[0].Amenities) != 0 {
		t.Errorf("listing 0: %+v", got[0])
	}
	p := got[1]
	if p.Accommodates != 4 || p.QualityScore != 5 || p.Neighborhood != "Le Marais" || p.InstantBookable {
		t.Errorf("listing 1: %+v", p)
	}
	if p.TargetDate != "2025-07-01" {
		t.Errorf("target date: %q", p.TargetDate)
	}
	if err := pricing.Validate(p); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadInputsByExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(csvPath, []byte("city\nVienna\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadInputs(csvPath)
	if err != nil || len(got) != 1 || got[0].City != models.Vienna {
		t.Errorf("csv: %v %+v", err, got)
	}

	txtPath := filepath.Join(dir, "in.txt")
	_ = os.WriteFile(txtPath, []byte("x"), 0o644)
	if _, err := LoadInputs(txtPath); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("txt: got %v; want ErrUnsupportedFormat", err)
	}
}
