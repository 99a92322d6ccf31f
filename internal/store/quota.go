package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
)

// QuotaStore persists per-user, per-day generation counters.
type QuotaStore interface {
	// Get returns store.ErrQuotaNotFound when no record exists for the pair.
	Get(ctx context.Context, userID uuid.UUID, day string) (*domain.QuotaRecord, error)

	// Create inserts a new record. A record already present for the pair
	// yields store.ErrDuplicate.
	Create(ctx context.Context, record *domain.QuotaRecord) error

	// IncrementBelow adds one to the counter only while it is below ceiling,
	// in a single conditional statement. It reports whether a row changed.
	IncrementBelow(ctx context.Context, userID uuid.UUID, day string, ceiling int) (bool, error)

	// WithTx returns a new store instance that uses the provided transaction.
	WithTx(tx *sql.Tx) QuotaStore
}
