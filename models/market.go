package models

import "time"

// RawListing holds unprocessed comparable data straight from the browser.
type RawListing struct {
	Title     string
	RawPrice  string
	Location  string
	Rating    string
	URL       string
	ScrapedAt time.Time
	Platform  string
}

// Comparable is a cleaned market listing used to benchmark an estimate.
type Comparable struct {
	Platform string  `json:"platform"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
	URL      string  `json:"url"`
}

// Price levels of an estimate relative to the market average.
const (
	PriceLevelBelowMarket = "below_market"
	PriceLevelFair        = "fair"
	PriceLevelAboveMarket = "above_market"
	PriceLevelUnknown     = "unknown"
)

// BenchmarkReport compares an estimate against scraped comparables.
type BenchmarkReport struct {
	City            City          `json:"city"`
	Estimate        PriceEstimate `json:"estimate"`
	Comparables     int           `json:"comparables"`
	AveragePrice    float64       `json:"average_price"`
	MinPrice        float64       `json:"min_price"`
	MaxPrice        float64       `json:"max_price"`
	InRange         int           `json:"in_range"`
	PriceLevel      string        `json:"price_level"`
	PriceGapPercent float64       `json:"price_gap_percent"`
	TopRated        []*Comparable `json:"top_rated"`
}
