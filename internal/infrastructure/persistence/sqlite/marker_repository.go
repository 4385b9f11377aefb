package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/marker"
)

type MarkerRepository struct {
	db *sql.DB
}

func NewMarkerRepository(db *sql.DB) *MarkerRepository {
	return &MarkerRepository{db: db}
}

func (r *MarkerRepository) Exists(ctx context.Context, paymentID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM processed_payments WHERE payment_id = ?`,
		paymentID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, contracts.StoreError("exists", err)
	}
	return true, nil
}

func (r *MarkerRepository) SaveIfNotExist(ctx context.Context, m *marker.Marker) (bool, error) {
	var date any
	if m.Date != nil {
		date = m.Date.UTC().Format(time.RFC3339Nano)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO processed_payments
		 (payment_id, processed_at, amount, payment_date, payment_type, source)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.PaymentID,
		m.ProcessedAt.UTC().Format(time.RFC3339Nano),
		m.Amount.String(),
		date,
		m.Type,
		string(m.Source),
	)
	if err != nil {
		return false, contracts.StoreError("save", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, contracts.StoreError("save", err)
	}

	// 0 rows = already claimed
	return affected == 1, nil
}

func (r *MarkerRepository) Delete(ctx context.Context, paymentID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM processed_payments WHERE payment_id = ?`,
		paymentID,
	); err != nil {
		return contracts.StoreError("delete", err)
	}
	return nil
}
