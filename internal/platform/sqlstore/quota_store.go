package sqlstore

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

// QuotaStore implements store.QuotaStore on the api_usages table.
type QuotaStore struct {
	db      store.DBTX
	dialect store.Dialect
	logger  *slog.Logger
}

var _ store.QuotaStore = (*QuotaStore)(nil)

// NewQuotaStore creates a quota store over db.
func NewQuotaStore(db store.DBTX, dialect store.Dialect, logger *slog.Logger) *QuotaStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QuotaStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "quota_store")),
	}
}

// WithTx implements store.QuotaStore.WithTx.
func (s *QuotaStore) WithTx(tx *sql.Tx) store.QuotaStore {
	return &QuotaStore{db: tx, dialect: s.dialect, logger: s.logger}
}

// Get implements store.QuotaStore.Get.
func (s *QuotaStore) Get(ctx context.Context, userID uuid.UUID, day string) (*domain.QuotaRecord, error) {
	rec := domain.QuotaRecord{UserID: userID, UsageDate: day}
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(`
		SELECT request_count FROM api_usages
		WHERE user_id = $1 AND usage_date = $2`),
		userID, day).Scan(&rec.RequestCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrQuotaNotFound
		}
		return nil, store.NewStoreError("quota", "get", "failed to read quota record", MapError(err))
	}
	return &rec, nil
}

// Create implements store.QuotaStore.Create.
func (s *QuotaStore) Create(ctx context.Context, record *domain.QuotaRecord) error {
	_, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		INSERT INTO api_usages (user_id, usage_date, request_count)
		VALUES ($1, $2, $3)`),
		record.UserID, record.UsageDate, record.RequestCount)
	if err != nil {
		return store.NewStoreError("quota", "create", "failed to create quota record", MapError(err))
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("quota record created",
		slog.String("user_id", record.UserID.String()),
		slog.String("usage_date", record.UsageDate))
	return nil
}

// IncrementBelow implements store.QuotaStore.IncrementBelow.
func (s *QuotaStore) IncrementBelow(ctx context.Context, userID uuid.UUID, day string, ceiling int) (bool, error) {
	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		UPDATE api_usages
		SET request_count = request_count + 1
		WHERE user_id = $1 AND usage_date = $2 AND request_count < $3`),
		userID, day, ceiling)
	if err != nil {
		return false, store.NewStoreError("quota", "increment", "failed to increment quota", MapError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n == 1, nil
}
