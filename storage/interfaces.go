package storage

import (
	"context"
	"errors"
	"time"

	"airbnb-pricing/models"
)

// ErrNoStore is returned when an operation needs persistence but
// STORE_DRIVER is "none".
var ErrNoStore = errors.New("no estimate store configured")

// EstimateRecord is one persisted evaluation of the estimator.
type EstimateRecord struct {
	ID        string               `json:"id"`
	Input     models.ListingInput  `json:"input"`
	Estimate  models.PriceEstimate `json:"estimate"`
	CreatedAt time.Time            `json:"created_at"`
}

// EstimateStore is the interface any persistence backend must satisfy.
type EstimateStore interface {
	Save(ctx context.Context, records ...*EstimateRecord) error
	List(ctx context.Context, limit int) ([]*EstimateRecord, error)
	Close() error
}

// RecordWriter is the interface for exporting records to a file.
type RecordWriter interface {
	Write(records []*EstimateRecord) error
	Close() error
}
