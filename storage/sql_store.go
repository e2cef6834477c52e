package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"airbnb-pricing/config"
	"airbnb-pricing/models"
)

// Schema shared by both drivers. Every statement runs on its own so the
// sqlite driver never sees a multi-statement string.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS estimates (
		id               TEXT    PRIMARY KEY,
		city             TEXT    NOT NULL,
		property_type    TEXT    NOT NULL,
		bedrooms         INTEGER NOT NULL DEFAULT 0,
		bathrooms        INTEGER NOT NULL DEFAULT 0,
		accommodates     INTEGER NOT NULL DEFAULT 1,
		quality_score    INTEGER NOT NULL DEFAULT 3,
		amenities        TEXT    NOT NULL DEFAULT '',
		min_nights       INTEGER NOT NULL DEFAULT 1,
		neighborhood     TEXT    NOT NULL DEFAULT '',
		street           TEXT    NOT NULL DEFAULT '',
		instant_bookable BOOLEAN NOT NULL DEFAULT FALSE,
		target_date      TEXT    NOT NULL DEFAULT '',
		recommended_rate INTEGER NOT NULL,
		range_low        INTEGER NOT NULL,
		range_high       INTEGER NOT NULL,
		created_at       TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_estimates_city       ON estimates(city)`,
	`CREATE INDEX IF NOT EXISTS idx_estimates_created_at ON estimates(created_at)`,
}

const columnsPerRow = 17

// SQLStore persists estimate records through database/sql, on PostgreSQL
// (lib/pq) or SQLite (modernc).
type SQLStore struct {
	db     *sql.DB
	driver string
}

// Open returns the store selected by cfg.StoreDriver, or ErrNoStore when
// persistence is disabled.
func Open(ctx context.Context, cfg *config.Config) (*SQLStore, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres, config.StoreSQLite:
		return NewSQLStore(ctx, cfg.StoreDriver, cfg.DSN())
	case config.StoreNone, "":
		return nil, ErrNoStore
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.StoreDriver)
	}
}

// NewSQLStore opens a connection, waits for the database to answer and runs
// schema migrations.
func NewSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	if driver == config.StoreSQLite && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("%s: create dir: %w", driver, err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", driver, err)
	}
	if driver == config.StoreSQLite {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	}

	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("%s: ping: %w", driver, ctx.Err())
		case <-time.After(2 * time.Second):
		}
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: ping failed after retries: %w", driver, err)
	}

	s := &SQLStore{db: db, driver: driver}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: migrate: %w", driver, err)
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// NewRecord stamps an estimate with a fresh id and the current time.
func NewRecord(in models.ListingInput, est models.PriceEstimate) *EstimateRecord {
	return &EstimateRecord{
		ID:        uuid.NewString(),
		Input:     in,
		Estimate:  est,
		CreatedAt: time.Now().UTC(),
	}
}

// Save batch-inserts records. Records without an id get one.
func (s *SQLStore) Save(ctx context.Context, records ...*EstimateRecord) error {
	const batchSize = 50
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		if err := s.insertBatch(ctx, records[i:end]); err != nil {
			return fmt.Errorf("%s: save: %w", s.driver, err)
		}
	}
	return nil
}

func (s *SQLStore) insertBatch(ctx context.Context, batch []*EstimateRecord) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*columnsPerRow)

	for idx, r := range batch {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}

		base := idx * columnsPerRow
		ph := make([]string, columnsPerRow)
		for j := range ph {
			ph[j] = s.placeholder(base + j + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")

		in := r.Input
		valueArgs = append(valueArgs,
			r.ID, string(in.City), string(in.PropertyType), in.Bedrooms, in.Bathrooms,
			in.Accommodates, in.QualityScore, joinAmenities(in.Amenities), in.MinNights,
			in.Neighborhood, in.Street, in.InstantBookable, in.TargetDate,
			r.Estimate.RecommendedRate, r.Estimate.RangeLow, r.Estimate.RangeHigh,
			r.CreatedAt.UTC())
	}

	query := fmt.Sprintf(`
		INSERT INTO estimates (id, city, property_type, bedrooms, bathrooms,
			accommodates, quality_score, amenities, min_nights,
			neighborhood, street, instant_bookable, target_date,
			recommended_rate, range_low, range_high, created_at)
		VALUES %s
		ON CONFLICT (id) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := s.db.ExecContext(ctx, query, valueArgs...)
	return err
}

// List returns up to limit records, newest first. A non-positive limit
// returns everything.
func (s *SQLStore) List(ctx context.Context, limit int) ([]*EstimateRecord, error) {
	query := `
		SELECT id, city, property_type, bedrooms, bathrooms, accommodates,
			quality_score, amenities, min_nights, neighborhood, street,
			instant_bookable, target_date, recommended_rate, range_low,
			range_high, created_at
		FROM estimates
		ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT " + s.placeholder(1)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: list: %w", s.driver, err)
	}
	defer rows.Close()

	var records []*EstimateRecord
	for rows.Next() {
		var (
			r         EstimateRecord
			city, pt  string
			amenities string
		)
		if err := rows.Scan(
			&r.ID, &city, &pt, &r.Input.Bedrooms, &r.Input.Bathrooms,
			&r.Input.Accommodates, &r.Input.QualityScore, &amenities,
			&r.Input.MinNights, &r.Input.Neighborhood, &r.Input.Street,
			&r.Input.InstantBookable, &r.Input.TargetDate,
			&r.Estimate.RecommendedRate, &r.Estimate.RangeLow,
			&r.Estimate.RangeHigh, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", s.driver, err)
		}
		r.Input.City = models.City(city)
		r.Input.PropertyType = models.PropertyType(pt)
		r.Input.Amenities = splitAmenities(amenities)
		records = append(records, &r)
	}
	return records, rows.Err()
}

// placeholder returns the n-th (1-based) bind parameter in the driver's syntax.
func (s *SQLStore) placeholder(n int) string {
	if s.driver == config.StoreSQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func joinAmenities(amenities []models.Amenity) string {
	parts := make([]string, len(amenities))
	for i, a := range amenities {
		parts[i] = string(a)
	}
	return strings.Join(parts, ";")
}

func splitAmenities(s string) []models.Amenity {
	if s == "" {
		return []models.Amenity{}
	}
	parts := strings.Split(s, ";")
	out := make([]models.Amenity, len(parts))
	for i, p := range parts {
		out[i] = models.Amenity(p)
	}
	return out
}
