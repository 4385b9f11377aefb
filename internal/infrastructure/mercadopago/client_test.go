package mercadopago_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/payment"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infrastructure/mercadopago"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *mercadopago.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return mercadopago.NewClient(srv.URL, "TEST-token", time.Second)
}

func TestGetPayment_DecodesRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/payments/123456", r.URL.Path)
		require.Equal(t, "Bearer TEST-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 123456,
			"status": "approved",
			"status_detail": "accredited",
			"payment_type_id": "bank_transfer",
			"transaction_amount": 500.25,
			"date_created": "2024-01-01T06:00:00.000-04:00",
			"date_approved": null,
			"transaction_details": {"transaction_id": "SPEI_1"}
		}`))
	})

	rec, err := client.GetPayment(context.Background(), "123456")
	require.NoError(t, err)

	require.Equal(t, payment.ID("123456"), rec.ID)
	require.Equal(t, payment.StatusApproved, rec.Status)
	require.Equal(t, payment.TypeBankTransfer, rec.PaymentTypeID)
	require.Equal(t, "500.25", rec.TransactionAmount.String())
	require.True(t, rec.DateCreated.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
	require.Nil(t, rec.DateApproved)
	require.Equal(t, "SPEI_1", rec.TransactionID())
}

func TestGetPayment_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Payment not found","status":404}`))
	})

	_, err := client.GetPayment(context.Background(), "999")

	require.ErrorIs(t, err, contracts.ErrNotFound)
	require.EqualError(t, err, "Payment 999 not found (404). This is likely a test webhook with a fake ID.")
}

func TestGetPayment_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid access token"}`))
	})

	_, err := client.GetPayment(context.Background(), "1")

	var apiErr *contracts.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Mercado Pago API error 401: invalid access token", err.Error())
	require.False(t, errors.Is(err, contracts.ErrNotFound))
}

func TestGetPayment_APIErrorWithoutBodyUsesStatusText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetPayment(context.Background(), "1")

	require.EqualError(t, err, "Mercado Pago API error 502: Bad Gateway")
}

func TestRecentPayments_QueryAndDecode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments/search", r.URL.Path)
		require.Equal(t, "date_created", r.URL.Query().Get("sort"))
		require.Equal(t, "desc", r.URL.Query().Get("criteria"))
		require.Equal(t, "20", r.URL.Query().Get("limit"))

		w.Write([]byte(`{"results":[
			{"id": 3, "status": "approved", "payment_type_id": "ticket"},
			{"id": "2", "status": "pending", "payment_type_id": "credit_card"}
		],"paging":{"total":2}}`))
	})

	results, err := client.RecentPayments(context.Background(), 20)
	require.NoError(t, err)

	require.Len(t, results, 2)
	require.Equal(t, payment.ID("3"), results[0].ID)
	require.Equal(t, payment.ID("2"), results[1].ID)
	require.Nil(t, results[0].TransactionAmount)
}

func TestRecentPayments_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"internal error"}`))
	})

	_, err := client.RecentPayments(context.Background(), 20)

	var apiErr *contracts.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "internal error", apiErr.Message)
}
