package contracts_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/contracts"
)

func TestStoreError_WrapsBothCauses(t *testing.T) {
	cause := errors.New("disk full")

	err := contracts.StoreError("claim", cause)

	require.ErrorIs(t, err, contracts.ErrStore)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "dedup store failure: claim: disk full", err.Error())
}

func TestAPIError_IsReachableThroughWrapping(t *testing.T) {
	err := fmt.Errorf("fetch payment: %w", &contracts.APIError{
		Service:    "Mercado Pago",
		StatusCode: 502,
		Message:    "bad gateway",
	})

	var apiErr *contracts.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 502, apiErr.StatusCode)
	require.Equal(t, "fetch payment: Mercado Pago API error 502: bad gateway", err.Error())
}

func TestAPIError_HideStatus(t *testing.T) {
	err := &contracts.APIError{
		Service:    "Telegram",
		StatusCode: 400,
		Message:    "Bad Request: chat not found",
		HideStatus: true,
	}

	require.Equal(t, "Telegram API error: Bad Request: chat not found", err.Error())
	require.Equal(t, 400, err.StatusCode)
}
