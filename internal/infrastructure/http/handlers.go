package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/webhook"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/payment"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/logging"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/metrics"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infrastructure/signature"
)

const maxBodyBytes = 1 << 20

type WebhookProcessor interface {
	Process(ctx context.Context, paymentID string) (*webhook.Result, error)
}

type SignatureVerifier interface {
	Verify(headers http.Header, dataID string) bool
}

var _ SignatureVerifier = (*signature.Verifier)(nil)

// WebhookHandler accepts payment event deliveries from Mercado Pago.
type WebhookHandler struct {
	Verifier SignatureVerifier
	Service  WebhookProcessor
	Logger   logging.Logger
	Metrics  *metrics.Counters
	Now      func() time.Time
}

type errorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
}

type ignoredResponse struct {
	Received bool `json:"received"`
	Ignored  bool `json:"ignored"`
}

func (h *WebhookHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORS(w.Header())

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	requestID := uuid.NewString()
	h.Metrics.IncWebhookReceived()

	event, decodeErr := decodeEvent(r.Body)

	// The signature covers data.id, so a body that fails to decode is
	// verified against an empty id.
	if !h.Verifier.Verify(r.Header, string(event.Data.ID)) {
		h.Metrics.IncWebhookRejected()
		h.Logger.Warn("webhook signature rejected", map[string]any{
			"request-id":  requestID,
			"mp-request":  r.Header.Get(signature.HeaderRequestID),
			"remote-addr": r.RemoteAddr,
		})
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid signature"})
		return
	}

	if decodeErr != nil || event.Data.ID == "" {
		h.Metrics.IncWebhookRejected()
		fields := map[string]any{"request-id": requestID}
		if decodeErr != nil {
			fields["error"] = decodeErr
		}
		h.Logger.Warn("webhook payload rejected", fields)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid payload"})
		return
	}

	h.Logger.Info("webhook received", map[string]any{
		"request-id": requestID,
		"type":       event.Type,
		"action":     event.Action,
		"payment-id": event.Data.ID.String(),
	})

	if !event.IsPaymentNotification() {
		h.Metrics.IncWebhookIgnored()
		writeJSON(w, http.StatusOK, ignoredResponse{Received: true, Ignored: true})
		return
	}

	res, err := h.Service.Process(r.Context(), event.Data.ID.String())
	if err != nil {
		h.Logger.Error("webhook processing failed", map[string]any{
			"request-id": requestID,
			"payment-id": event.Data.ID.String(),
			"error":      err,
		})
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:     err.Error(),
			Timestamp: h.now().UTC().Format(time.RFC3339),
		})
		return
	}

	h.Logger.Info("webhook processed", map[string]any{
		"request-id": requestID,
		"payment-id": event.Data.ID.String(),
		"success":    res.Success,
		"message":    res.Message,
	})

	writeJSON(w, http.StatusOK, res)
}

func decodeEvent(body io.Reader) (payment.Event, error) {
	var event payment.Event

	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return payment.Event{}, err
	}
	if err := json.Unmarshal(raw, &event); err != nil {
		return payment.Event{}, err
	}

	return event, nil
}

type HealthHandler struct {
	Metrics *metrics.Counters
}

type healthResponse struct {
	Status  string           `json:"status"`
	Metrics metrics.Snapshot `json:"metrics"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Metrics: h.Metrics.Snapshot()})
}

func setCORS(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
