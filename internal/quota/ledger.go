package quota

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ncert-revision/revision-api/internal/domain"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/store"
)

// Decision is the outcome of a reservation.
type Decision int

const (
	// Denied means the counter is already at the ceiling.
	Denied Decision = iota
	// Allowed means the counter was incremented.
	Allowed
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Ledger tracks generation requests per user and calendar day.
type Ledger struct {
	store  store.QuotaStore
	locks  *keyedMutex
	logger *slog.Logger
}

// NewLedger creates a ledger backed by quotaStore.
func NewLedger(quotaStore store.QuotaStore, logger *slog.Logger) (*Ledger, error) {
	if quotaStore == nil {
		return nil, errors.New("quota store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		store:  quotaStore,
		locks:  newKeyedMutex(),
		logger: logger.With(slog.String("component", "quota_ledger")),
	}, nil
}

// Peek returns the current count for the user and day, 0 when no record exists.
func (l *Ledger) Peek(ctx context.Context, userID uuid.UUID, day string) (int, error) {
	rec, err := l.store.Get(ctx, userID, day)
	if err != nil {
		if errors.Is(err, store.ErrQuotaNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read quota: %w", err)
	}
	return rec.RequestCount, nil
}

// ReserveAndIncrement counts one request against ceiling inside tx.
// It never pushes the counter past ceiling.
func (l *Ledger) ReserveAndIncrement(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	day string,
	ceiling int,
) (Decision, error) {
	log := logger.FromContextOrDefault(ctx, l.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("usage_date", day),
	)
	txStore := l.store.WithTx(tx)

	_, err := txStore.Get(ctx, userID, day)
	switch {
	case errors.Is(err, store.ErrQuotaNotFound):
		if ceiling <= 0 {
			log.Debug("quota denied", slog.Int("ceiling", ceiling))
			return Denied, nil
		}
		rec := &domain.QuotaRecord{UserID: userID, UsageDate: day, RequestCount: 1}
		if err := txStore.Create(ctx, rec); err != nil {
			return Denied, fmt.Errorf("failed to create quota record: %w", err)
		}
		log.Debug("quota record opened")
		return Allowed, nil
	case err != nil:
		return Denied, fmt.Errorf("failed to read quota: %w", err)
	}

	ok, err := txStore.IncrementBelow(ctx, userID, day, ceiling)
	if err != nil {
		return Denied, fmt.Errorf("failed to increment quota: %w", err)
	}
	if !ok {
		log.Debug("quota denied", slog.Int("ceiling", ceiling))
		return Denied, nil
	}
	return Allowed, nil
}

// Lock acquires the in-process lock for the (user, day) key and returns the
// function that releases it.
func (l *Ledger) Lock(userID uuid.UUID, day string) (unlock func()) {
	return l.locks.lock(userID.String() + "/" + day)
}
