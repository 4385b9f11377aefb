package contracts

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("invalid signature")
	ErrBadRequest   = errors.New("invalid payload")
	ErrNotFound     = errors.New("not found")
	ErrStore        = errors.New("dedup store failure")
)

// APIError is a non-2xx answer from the payment processor or the bot API.
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	// HideStatus leaves the status code out of the message; the bot API's
	// description already names the failure.
	HideStatus bool
}

func (e *APIError) Error() string {
	if e.HideStatus {
		return fmt.Sprintf("%s API error: %s", e.Service, e.Message)
	}
	return fmt.Sprintf("%s API error %d: %s", e.Service, e.StatusCode, e.Message)
}

func StoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
