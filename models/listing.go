package models

// City is one of the markets the estimator knows a factor for.
type City string

const (
	Paris  City = "Paris"
	Vienna City = "Vienna"
	Berlin City = "Berlin"
	Zurich City = "Zurich"
)

// PropertyType mirrors Airbnb's room_type categories.
type PropertyType string

const (
	EntireHome  PropertyType = "Entire home/apt"
	PrivateRoom PropertyType = "Private room"
	SharedRoom  PropertyType = "Shared room"
	HotelRoom   PropertyType = "Hotel room"
)

// Amenity is an entry of the fixed amenity catalog.
type Amenity string

const (
	WiFi            Amenity = "Wi-Fi"
	Kitchen         Amenity = "Kitchen"
	Washer          Amenity = "Washer"
	Dryer           Amenity = "Dryer"
	AirConditioning Amenity = "Air conditioning"
	Heating         Amenity = "Heating"
	TV              Amenity = "TV"
	Elevator        Amenity = "Elevator"
	Parking         Amenity = "Parking"
	Balcony         Amenity = "Balcony"
)

// ListingInput describes the listing a host wants a price for.
// Neighborhood, Street, InstantBookable and TargetDate (YYYY-MM-DD) are
// carried for display only and never change the price.
type ListingInput struct {
	City         City         `json:"city" yaml:"city"`
	PropertyType PropertyType `json:"property_type" yaml:"property_type"`
	Bedrooms     int          `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms    int          `json:"bathrooms" yaml:"bathrooms"`
	Accommodates int          `json:"accommodates" yaml:"accommodates"`
	QualityScore int          `json:"quality_score" yaml:"quality_score"`
	Amenities    []Amenity    `json:"amenities" yaml:"amenities"`
	MinNights    int          `json:"min_nights" yaml:"min_nights"`

	Neighborhood    string `json:"neighborhood,omitempty" yaml:"neighborhood"`
	Street          string `json:"street,omitempty" yaml:"street"`
	InstantBookable bool   `json:"instant_bookable" yaml:"instant_bookable"`
	TargetDate      string `json:"target_date,omitempty" yaml:"target_date"`
}

// PriceEstimate is the nightly rate suggestion and its competitive band.
type PriceEstimate struct {
	RecommendedRate int `json:"recommended_rate"`
	RangeLow        int `json:"range_low"`
	RangeHigh       int `json:"range_high"`
}

// Coordinates is a map marker position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// FeatureRow is one line of the feature summary table.
type FeatureRow struct {
	Feature string `json:"feature"`
	Value   string `json:"value"`
}
