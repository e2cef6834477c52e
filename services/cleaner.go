package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"airbnb-pricing/models"
	"airbnb-pricing/utils"
)

var (
	// priceRegexp captures numeric price values
	priceRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)
	// nightsRegexp captures "X nights" or "X night" after the price token
	nightsRegexp = regexp.MustCompile(`(\d+)\s*nights?`)
	// ratingRegexp captures a numeric rating in the 0.0–5.0 range
	ratingRegexp = regexp.MustCompile(`\b([0-5](?:\.\d{1,2})?)\b`)
)

// Cleaner turns scraped RawListings into Comparables.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean drops listings without a URL or with a URL already seen and
// normalises the rest.
func (c *Cleaner) Clean(raw []*models.RawListing) []*models.Comparable {
	seen := make(map[string]struct{})
	result := make([]*models.Comparable, 0, len(raw))

	for _, r := range raw {
		url := strings.TrimSpace(r.URL)
		if url == "" {
			c.logger.Warn("[cleaner] Dropping listing with empty URL: %s", r.Title)
			continue
		}
		if _, dup := seen[url]; dup {
			c.logger.Debug("[cleaner] Duplicate URL skipped: %s", url)
			continue
		}
		seen[url] = struct{}{}

		result = append(result, &models.Comparable{
			Platform: normalisePlatform(r.Platform),
			Title:    normaliseText(r.Title),
			Price:    c.parsePrice(r.RawPrice),
			Location: normaliseText(r.Location),
			Rating:   c.parseRating(r.Rating),
			URL:      url,
		})
	}

	c.logger.Info("[cleaner] Cleaned %d → %d comparables (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice extracts a per-night price, dividing multi-night totals.
//
//	"€150 night"          → 150
//	"€450 for 3 nights"   → 150
//	"€1.200 total"        → 1200
func (c *Cleaner) parsePrice(raw string) float64 {
	s := stripThousands(strings.ToLower(raw))

	loc := priceRegexp.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	total, err := strconv.ParseFloat(s[loc[0]:loc[1]], 64)
	if err != nil {
		return 0
	}

	if m := nightsRegexp.FindStringSubmatch(s[loc[1]:]); len(m) >= 2 {
		nights, err := strconv.Atoi(m[1])
		if err == nil && nights > 1 {
			perNight := total / float64(nights)
			c.logger.Debug("[cleaner] Multi-night price detected: %.2f for %d nights = %.2f/night",
				total, nights, perNight)
			return perNight
		}
	}
	return total
}

// stripThousands removes "," and "." when used as thousands separators
// (followed by exactly three digits), as EUR and CHF listings often do.
func stripThousands(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch == ',' || ch == '.' || ch == '\'') && i > 0 && isDigit(s[i-1]) && groupOfThree(s[i+1:]) {
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func groupOfThree(s string) bool {
	if len(s) < 3 || !isDigit(s[0]) || !isDigit(s[1]) || !isDigit(s[2]) {
		return false
	}
	return len(s) == 3 || !isDigit(s[3])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseRating extracts a 0.0–5.0 numeric rating from a raw string.
func (c *Cleaner) parseRating(raw string) float64 {
	match := ratingRegexp.FindStringSubmatch(raw)
	if len(match) < 2 {
		return 0
	}
	val, err := strconv.ParseFloat(match[1], 64)
	if err != nil || val < 0 || val > 5 {
		return 0
	}
	return val
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

func normalisePlatform(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
