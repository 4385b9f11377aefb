package webhook

import (
	"context"
	"fmt"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/notification"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/marker"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/payment"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/logging"
)

const (
	MessageSent            = "Notificación enviada correctamente"
	MessageNotApproved     = "Payment not approved yet"
	MessageAlreadyNotified = "Payment already notified"
)

// Result is returned to the processor as the webhook response body.
type Result struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"paymentId,omitempty"`
	Status    string `json:"status,omitempty"`
	Message   string `json:"message"`
}

type Notifier interface {
	Notify(context.Context, *payment.Record, marker.Source) (notification.Outcome, error)
}

// Service handles one payment announced by a webhook delivery. Errors are
// returned as-is; redelivery is left to the processor.
type Service struct {
	Gateway  contracts.PaymentGateway
	Notifier Notifier
	Logger   logging.Logger
}

func (s *Service) Process(ctx context.Context, paymentID string) (*Result, error) {
	s.Logger.Info("fetching payment", map[string]any{"payment-id": paymentID})

	rec, err := s.Gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("payment fetched", map[string]any{
		"payment-id":   paymentID,
		"status":       string(rec.Status),
		"payment-type": string(rec.PaymentTypeID),
	})

	switch notification.Decide(rec) {
	case notification.DecisionNotApproved:
		return &Result{
			Success: false,
			Status:  string(rec.Status),
			Message: MessageNotApproved,
		}, nil

	case notification.DecisionTypeIgnored:
		return &Result{
			Success:   true,
			PaymentID: paymentID,
			Message:   fmt.Sprintf("Payment type %s ignored (card payment)", rec.PaymentTypeID),
		}, nil
	}

	outcome, err := s.Notifier.Notify(ctx, rec, marker.SourceWebhook)
	if err != nil {
		return nil, fmt.Errorf("notify payment %s: %w", paymentID, err)
	}

	msg := MessageSent
	if outcome == notification.OutcomeDuplicate {
		msg = MessageAlreadyNotified
	}

	return &Result{
		Success:   true,
		PaymentID: paymentID,
		Message:   msg,
	}, nil
}
