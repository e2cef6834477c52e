package pricing

import (
	"errors"
	"testing"

	"airbnb-pricing/models"
)

func TestParseCity(t *testing.T) {
	tests := []struct {
		raw  string
		want models.City
	}{
		{"Paris", models.Paris},
		{"  zurich ", models.Zurich},
		{"BERLIN", models.Berlin},
	}
	for _, tt := range tests {
		got, err := ParseCity(tt.raw)
		if err != nil || got != tt.want {
			t.Errorf("ParseCity(%q) = %q, %v; want %q", tt.raw, got, err, tt.want)
		}
	}
	if _, err := ParseCity("Lisbon"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("ParseCity(Lisbon): got %v; want ErrUnknownCategory", err)
	}
}

func TestParsePropertyType(t *testing.T) {
	got, err := ParsePropertyType("private room")
	if err != nil || got != models.PrivateRoom {
		t.Errorf("ParsePropertyType: got %q, %v", got, err)
	}
	if _, err := ParsePropertyType("tent"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("ParsePropertyType(tent): got %v; want ErrUnknownCategory", err)
	}
}

func TestParseAmenities(t *testing.T) {
	got, err := ParseAmenities("wi-fi, Kitchen;;TV ")
	if err != nil {
		t.Fatal(err)
	}
	want := []models.Amenity{models.WiFi, models.Kitchen, models.TV}
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d]: got %q, want %q", i, got[i], want[i])
		}
	}

	if got, _ := ParseAmenities(""); len(got) != 0 {
		t.Errorf("empty list: got %v", got)
	}
	if _, err := ParseAmenities("Wi-Fi,Pool"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("unknown amenity: got %v; want ErrUnknownCategory", err)
	}
}

func TestCityCenter(t *testing.T) {
	for _, c := range Cities() {
		if _, err := CityCenter(c); err != nil {
			t.Errorf("CityCenter(%s): %v", c, err)
		}
	}
	got, _ := CityCenter(models.Berlin)
	if got.Lat != 52.52 || got.Lon != 13.405 {
		t.Errorf("Berlin centre: got %+v", got)
	}
	if _, err := CityCenter("Rome"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("CityCenter(Rome): got %v", err)
	}
}

func TestCatalogCopies(t *testing.T) {
	c := Cities()
	c[0] = "Nowhere"
	if Cities()[0] != models.Paris {
		t.Error("Cities should return a copy")
	}
	if len(AmenityCatalog()) != 10 || len(PropertyTypes()) != 4 {
		t.Error("unexpected catalog sizes")
	}
}
