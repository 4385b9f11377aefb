package marker

import "context"

// Repository persists markers keyed by payment ID.
//
// SaveIfNotExist must be atomic: of two concurrent calls for the same key
// exactly one reports true.
type Repository interface {
	Exists(ctx context.Context, paymentID string) (bool, error)
	SaveIfNotExist(ctx context.Context, m *Marker) (bool, error)
	Delete(ctx context.Context, paymentID string) error
}
