package pricing

import (
	"fmt"
	"strings"

	"airbnb-pricing/models"
)

var cityOrder = []models.City{models.Paris, models.Vienna, models.Berlin, models.Zurich}

var propertyTypeOrder = []models.PropertyType{
	models.EntireHome, models.PrivateRoom, models.SharedRoom, models.HotelRoom,
}

var amenityOrder = []models.Amenity{
	models.WiFi, models.Kitchen, models.Washer, models.Dryer, models.AirConditioning,
	models.Heating, models.TV, models.Elevator, models.Parking, models.Balcony,
}

// Placeholder map markers, roughly each city's centre.
var cityCenters = map[models.City]models.Coordinates{
	models.Paris:  {Lat: 48.8566, Lon: 2.3522},
	models.Vienna: {Lat: 48.2082, Lon: 16.3738},
	models.Berlin: {Lat: 52.5200, Lon: 13.4050},
	models.Zurich: {Lat: 47.3769, Lon: 8.5417},
}

// Cities lists the supported cities in display order.
func Cities() []models.City {
	return append([]models.City(nil), cityOrder...)
}

// PropertyTypes lists the supported property types in display order.
func PropertyTypes() []models.PropertyType {
	return append([]models.PropertyType(nil), propertyTypeOrder...)
}

// AmenityCatalog lists every amenity a listing may select.
func AmenityCatalog() []models.Amenity {
	return append([]models.Amenity(nil), amenityOrder...)
}

// CityCenter returns the map marker for a city.
func CityCenter(city models.City) (models.Coordinates, error) {
	c, ok := cityCenters[city]
	if !ok {
		return models.Coordinates{}, fmt.Errorf("%w: city %q", ErrUnknownCategory, city)
	}
	return c, nil
}

// ParseCity matches s against the supported cities, ignoring case and
// surrounding whitespace.
func ParseCity(s string) (models.City, error) {
	for _, c := range cityOrder {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: city %q", ErrUnknownCategory, s)
}

// ParsePropertyType matches s against the supported property types.
func ParsePropertyType(s string) (models.PropertyType, error) {
	for _, t := range propertyTypeOrder {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: property type %q", ErrUnknownCategory, s)
}

// ParseAmenities splits a comma or semicolon separated list into catalog
// amenities. Empty items are skipped.
func ParseAmenities(s string) ([]models.Amenity, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]models.Amenity, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		a, err := parseAmenity(p)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func parseAmenity(s string) (models.Amenity, error) {
	for _, a := range amenityOrder {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: amenity %q", ErrUnknownCategory, s)
}

func isCatalogAmenity(a models.Amenity) bool {
	for _, known := range amenityOrder {
		if a == known {
			return true
		}
	}
	return false
}
