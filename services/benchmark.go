package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"airbnb-pricing/models"
	"airbnb-pricing/utils"
)

const (
	// fairBand is how far from the market average an estimate may sit and
	// still count as fair.
	fairBand = 0.10
	topRated = 5
)

// BenchmarkService compares estimates against market comparables.
type BenchmarkService struct {
	logger *utils.Logger
}

func NewBenchmarkService(logger *utils.Logger) *BenchmarkService {
	return &BenchmarkService{logger: logger}
}

func (s *BenchmarkService) Generate(city models.City, est models.PriceEstimate, comps []*models.Comparable) *models.BenchmarkReport {
	report := &models.BenchmarkReport{
		City:       city,
		Estimate:   est,
		PriceLevel: models.PriceLevelUnknown,
	}

	var priced, rated []*models.Comparable
	for _, c := range comps {
		if c.Price > 0 {
			priced = append(priced, c)
		}
		if c.Rating > 0 {
			rated = append(rated, c)
		}
	}
	report.Comparables = len(priced)

	if len(priced) > 0 {
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		var total float64
		for _, c := range priced {
			total += c.Price
			report.MinPrice = math.Min(report.MinPrice, c.Price)
			report.MaxPrice = math.Max(report.MaxPrice, c.Price)
			if c.Price >= float64(est.RangeLow) && c.Price <= float64(est.RangeHigh) {
				report.InRange++
			}
		}
		avg := total / float64(len(priced))
		report.AveragePrice = round2(avg)
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)

		gap := (float64(est.RecommendedRate) - avg) / avg
		report.PriceGapPercent = round2(gap * 100)
		switch {
		case gap < -fairBand:
			report.PriceLevel = models.PriceLevelBelowMarket
		case gap > fairBand:
			report.PriceLevel = models.PriceLevelAboveMarket
		default:
			report.PriceLevel = models.PriceLevelFair
		}
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	if len(rated) > topRated {
		rated = rated[:topRated]
	}
	report.TopRated = rated

	s.logger.Debug("[benchmark] %s: %d comparables, level %s", city, report.Comparables, report.PriceLevel)
	return report
}

// Render formats the report for a terminal.
func (s *BenchmarkService) Render(r *models.BenchmarkReport) string {
	var b strings.Builder
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Fprintf(&b, "\n╔%s╗\n", border)
	fmt.Fprintf(&b, "║%s║\n", center("MARKET BENCHMARK: "+strings.ToUpper(string(r.City)), 55))
	fmt.Fprintf(&b, "╚%s╝\n", border)

	fmt.Fprintf(&b, "\n ESTIMATE\n%s\n", thin)
	fmt.Fprintf(&b, "  Recommended nightly rate : €%d\n", r.Estimate.RecommendedRate)
	fmt.Fprintf(&b, "  Competitive range        : €%d – €%d\n", r.Estimate.RangeLow, r.Estimate.RangeHigh)

	fmt.Fprintf(&b, "\n MARKET (per night)\n%s\n", thin)
	if r.Comparables == 0 {
		fmt.Fprintf(&b, "  No priced comparables found\n")
	} else {
		fmt.Fprintf(&b, "  Comparables              : %d\n", r.Comparables)
		fmt.Fprintf(&b, "  Average price            : €%.2f\n", r.AveragePrice)
		fmt.Fprintf(&b, "  Minimum price            : €%.2f\n", r.MinPrice)
		fmt.Fprintf(&b, "  Maximum price            : €%.2f\n", r.MaxPrice)
		fmt.Fprintf(&b, "  Inside estimate range    : %d\n", r.InRange)
		fmt.Fprintf(&b, "  Price level              : %s (%+.2f%%)\n", r.PriceLevel, r.PriceGapPercent)
	}

	if len(r.TopRated) > 0 {
		fmt.Fprintf(&b, "\n TOP %d HIGHEST RATED COMPARABLES\n%s\n", len(r.TopRated), thin)
		for i, c := range r.TopRated {
			fmt.Fprintf(&b, "  %d. %-35s %.2f  €%.0f\n", i+1, truncate(c.Title, 35), c.Rating, c.Price)
		}
	}

	fmt.Fprintf(&b, "\n%s\n\n", border)
	return b.String()
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
