package postgres_test

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/marker"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infrastructure/persistence/postgres"
)

// TestMarkerRepository_Integration connects to a real PostgreSQL via DATABASE_URL.
func TestMarkerRepository_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is empty; set it to a live PostgreSQL to run integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, postgres.RunMigrations(ctx, pool))

	repo := postgres.NewMarkerRepository(pool)
	id := "test-" + uuid.NewString()
	t.Cleanup(func() { _ = repo.Delete(context.Background(), id) })

	date := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	var wins int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.SaveIfNotExist(ctx, &marker.Marker{
				PaymentID:   id,
				ProcessedAt: time.Now(),
				Amount:      decimal.RequireFromString("500.00"),
				Date:        &date,
				Type:        "bank_transfer",
				Source:      marker.SourcePoll,
			})
			if err == nil && ok {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), wins)

	exists, err := repo.Exists(ctx, id)
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, repo.Delete(ctx, id))

	exists, err = repo.Exists(ctx, id)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestNewPool_RejectsEmptyDSN(t *testing.T) {
	_, err := postgres.NewPool(context.Background(), "")
	require.Error(t, err)
}
