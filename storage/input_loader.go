package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"airbnb-pricing/models"
	"airbnb-pricing/pricing"
)

// ErrUnsupportedFormat is returned for batch files that are neither CSV nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// yamlBatch is the on-disk shape of a YAML batch file. Pointer fields tell
// "absent" apart from zero so absent values take the listing form defaults.
type yamlBatch struct {
	Listings []yamlListing `yaml:"listings"`
}

type yamlListing struct {
	City            string   `yaml:"city"`
	PropertyType    string   `yaml:"property_type"`
	Bedrooms        *int     `yaml:"bedrooms"`
	Bathrooms       *int     `yaml:"bathrooms"`
	Accommodates    *int     `yaml:"accommodates"`
	QualityScore    *int     `yaml:"quality_score"`
	Amenities       []string `yaml:"amenities"`
	MinNights       *int     `yaml:"min_nights"`
	Neighborhood    string   `yaml:"neighborhood"`
	Street          string   `yaml:"street"`
	InstantBookable *bool    `yaml:"instant_bookable"`
	TargetDate      string   `yaml:"target_date"`
}

// LoadInputs reads listing inputs from a .csv, .yaml or .yml file. Missing
// fields take the values of pricing.DefaultInput.
func LoadInputs(path string) ([]models.ListingInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("inputs: open %q: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSVInputs(f)
	case ".yaml", ".yml":
		return ReadYAMLInputs(f)
	default:
		return nil, fmt.Errorf("inputs: %w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadYAMLInputs decodes a document with a top-level "listings" list.
func ReadYAMLInputs(r io.Reader) ([]models.ListingInput, error) {
	var doc yamlBatch
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("inputs: decode yaml: %w", err)
	}

	out := make([]models.ListingInput, 0, len(doc.Listings))
	for i, yl := range doc.Listings {
		in, err := mapYAMLListing(yl)
		if err != nil {
			return nil, fmt.Errorf("inputs: listings[%d]: %w", i, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func mapYAMLListing(yl yamlListing) (models.ListingInput, error) {
	in := pricing.DefaultInput()

	if yl.City != "" {
		c, err := pricing.ParseCity(yl.City)
		if err != nil {
			return in, err
		}
		in.City = c
	}
	if yl.PropertyType != "" {
		pt, err := pricing.ParsePropertyType(yl.PropertyType)
		if err != nil {
			return in, err
		}
		in.PropertyType = pt
	}
	if yl.Amenities != nil {
		a, err := pricing.ParseAmenities(strings.Join(yl.Amenities, ";"))
		if err != nil {
			return in, err
		}
		in.Amenities = a
	}

	setInt(&in.Bedrooms, yl.Bedrooms)
	setInt(&in.Bathrooms, yl.Bathrooms)
	setInt(&in.Accommodates, yl.Accommodates)
	setInt(&in.QualityScore, yl.QualityScore)
	setInt(&in.MinNights, yl.MinNights)
	if yl.InstantBookable != nil {
		in.InstantBookable = *yl.InstantBookable
	}
	in.Neighborhood = yl.Neighborhood
	in.Street = yl.Street
	if yl.TargetDate != "" {
		in.TargetDate = yl.TargetDate
	}
	return in, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// ReadCSVInputs reads a CSV with a header row. Columns are matched by name
// (city, property_type, bedrooms, bathrooms, accommodates, quality_score,
// amenities, min_nights, neighborhood, street, instant_bookable,
// target_date); unknown columns are ignored and amenities are separated by
// ";" or ",".
func ReadCSVInputs(r io.Reader) ([]models.ListingInput, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inputs: read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var out []models.ListingInput
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("inputs: line %d: %w", line, err)
		}
		in, err := mapCSVRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("inputs: line %d: %w", line, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func mapCSVRow(cols map[string]int, row []string) (models.ListingInput, error) {
	in := pricing.DefaultInput()
	get := func(name string) (string, bool) {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[i])
		return v, v != ""
	}

	if v, ok := get("city"); ok {
		c, err := pricing.ParseCity(v)
		if err != nil {
			return in, err
		}
		in.City = c
	}
	if v, ok := get("property_type"); ok {
		pt, err := pricing.ParsePropertyType(v)
		if err != nil {
			return in, err
		}
		in.PropertyType = pt
	}
	if _, present := cols["amenities"]; present {
		v, _ := get("amenities")
		a, err := pricing.ParseAmenities(v)
		if err != nil {
			return in, err
		}
		in.Amenities = a
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"bedrooms", &in.Bedrooms},
		{"bathrooms", &in.Bathrooms},
		{"accommodates", &in.Accommodates},
		{"quality_score", &in.QualityScore},
		{"min_nights", &in.MinNights},
	}
	for _, f := range ints {
		v, ok := get(f.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = n
	}

	if v, ok := get("instant_bookable"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return in, fmt.Errorf("instant_bookable: %w", err)
		}
		in.InstantBookable = b
	}
	if v, ok := get("neighborhood"); ok {
		in.Neighborhood = v
	}
	if v, ok := get("street"); ok {
		in.Street = v
	}
	if v, ok := get("target_date"); ok {
		in.TargetDate = v
	}
	return in, nil
}
