package inmemory

import (
	"context"
	"maps"
	"sync"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/marker"
)

type MarkerRepository struct {
	mu      sync.RWMutex
	markers map[string]marker.Marker
}

func NewMarkerRepository() *MarkerRepository {
	return &MarkerRepository{
		markers: make(map[string]marker.Marker),
	}
}

func (r *MarkerRepository) Exists(_ context.Context, paymentID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.markers[paymentID]
	return ok, nil
}

func (r *MarkerRepository) SaveIfNotExist(_ context.Context, m *marker.Marker) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.markers[m.PaymentID]; exists {
		return false, nil
	}

	r.markers[m.PaymentID] = *m
	return true, nil
}

func (r *MarkerRepository) Delete(_ context.Context, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.markers, paymentID)
	return nil
}

func (r *MarkerRepository) Markers() map[string]marker.Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.markers)
}
