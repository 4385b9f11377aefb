package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/marker"
)

// NewPool constructs a pgx connection pool using the provided connection string.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	if connString == "" {
		return nil, fmt.Errorf("postgres: empty connection string")
	}

	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	return pool, nil
}

func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS processed_payments (
			payment_id   TEXT PRIMARY KEY,
			processed_at TIMESTAMPTZ NOT NULL,
			amount       TEXT NOT NULL,
			payment_date TIMESTAMPTZ,
			payment_type TEXT NOT NULL,
			source       TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

type MarkerRepository struct {
	pool *pgxpool.Pool
}

func NewMarkerRepository(pool *pgxpool.Pool) *MarkerRepository {
	return &MarkerRepository{pool: pool}
}

func (r *MarkerRepository) Exists(ctx context.Context, paymentID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM processed_payments WHERE payment_id = $1)`,
		paymentID,
	).Scan(&exists)
	if err != nil {
		return false, contracts.StoreError("exists", err)
	}
	return exists, nil
}

func (r *MarkerRepository) SaveIfNotExist(ctx context.Context, m *marker.Marker) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO processed_payments
		 (payment_id, processed_at, amount, payment_date, payment_type, source)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (payment_id) DO NOTHING`,
		m.PaymentID,
		m.ProcessedAt,
		m.Amount.String(),
		m.Date,
		m.Type,
		string(m.Source),
	)
	if err != nil {
		return false, contracts.StoreError("save", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *MarkerRepository) Delete(ctx context.Context, paymentID string) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM processed_payments WHERE payment_id = $1`,
		paymentID,
	); err != nil {
		return contracts.StoreError("delete", err)
	}
	return nil
}
