package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

var csvHeader = []string{
	"id", "city", "property_type", "bedrooms", "bathrooms", "accommodates",
	"quality_score", "amenities", "min_nights", "neighborhood", "instant_bookable",
	"target_date", "recommended_rate", "range_low", "range_high", "created_at",
}

// CSVWriter exports estimate records to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per record.
func (c *CSVWriter) Write(records []*EstimateRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		in := r.Input
		row := []string{
			r.ID,
			string(in.City),
			string(in.PropertyType),
			strconv.Itoa(in.Bedrooms),
			strconv.Itoa(in.Bathrooms),
			strconv.Itoa(in.Accommodates),
			strconv.Itoa(in.QualityScore),
			joinAmenities(in.Amenities),
			strconv.Itoa(in.MinNights),
			in.Neighborhood,
			strconv.FormatBool(in.InstantBookable),
			in.TargetDate,
			strconv.Itoa(r.Estimate.RecommendedRate),
			strconv.Itoa(r.Estimate.RangeLow),
			strconv.Itoa(r.Estimate.RangeHigh),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writer.Flush()
	return c.file.Close()
}
