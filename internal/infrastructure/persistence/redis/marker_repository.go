package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/marker"
)

const keyPrefix = "processed_payments:"

func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second
	// single-shot: no hidden retries under a claim
	opts.MaxRetries = -1

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}

	return client, nil
}

type MarkerRepository struct {
	client *redis.Client
}

func NewMarkerRepository(client *redis.Client) *MarkerRepository {
	return &MarkerRepository{client: client}
}

func key(paymentID string) string {
	return keyPrefix + paymentID
}

func (r *MarkerRepository) Exists(ctx context.Context, paymentID string) (bool, error) {
	n, err := r.client.Exists(ctx, key(paymentID)).Result()
	if err != nil {
		return false, contracts.StoreError("exists", err)
	}
	return n == 1, nil
}

// SaveIfNotExist relies on SETNX, which is atomic on the server.
func (r *MarkerRepository) SaveIfNotExist(ctx context.Context, m *marker.Marker) (bool, error) {
	value, err := json.Marshal(m)
	if err != nil {
		return false, contracts.StoreError("encode", err)
	}

	ok, err := r.client.SetNX(ctx, key(m.PaymentID), value, 0).Result()
	if err != nil {
		return false, contracts.StoreError("save", err)
	}
	return ok, nil
}

func (r *MarkerRepository) Delete(ctx context.Context, paymentID string) error {
	if err := r.client.Del(ctx, key(paymentID)).Err(); err != nil {
		return contracts.StoreError("delete", err)
	}
	return nil
}
