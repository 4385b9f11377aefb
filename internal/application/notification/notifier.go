package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/marker"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/payment"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/logging"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/metrics"
)

type Renderer interface {
	Render(*payment.Record) string
}

// Notifier sends one confirmation per payment. With Markers set, it claims
// the payment's marker before sending and releases it if the send fails, so
// the webhook and the poller never both announce the same payment.
type Notifier struct {
	Channel  contracts.NotificationChannel
	Renderer Renderer
	Markers  marker.Repository
	Logger   logging.Logger
	Metrics  *metrics.Counters
	Now      func() time.Time
}

type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeDuplicate
)

func (n *Notifier) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func (n *Notifier) Notify(ctx context.Context, rec *payment.Record, source marker.Source) (Outcome, error) {
	paymentID := rec.ID.String()

	if n.Markers != nil {
		claimed, err := n.Markers.SaveIfNotExist(ctx, marker.New(rec, source, n.now()))
		if err != nil {
			return 0, fmt.Errorf("claim payment %s: %w", paymentID, err)
		}
		if !claimed {
			n.Metrics.IncDuplicate()
			n.Logger.Info("payment already notified", map[string]any{
				"payment-id": paymentID,
				"source":     string(source),
			})
			return OutcomeDuplicate, nil
		}
	}

	if _, err := n.Channel.Send(ctx, n.Renderer.Render(rec)); err != nil {
		n.Metrics.IncFailed()
		n.release(ctx, paymentID)
		return 0, err
	}

	n.Metrics.IncSent()
	n.Logger.Info("notification sent", map[string]any{
		"payment-id":   paymentID,
		"payment-type": string(rec.PaymentTypeID),
		"source":       string(source),
	})

	return OutcomeSent, nil
}

// release drops the claim so a later webhook delivery or poll tick retries.
func (n *Notifier) release(ctx context.Context, paymentID string) {
	if n.Markers == nil {
		return
	}
	if err := n.Markers.Delete(context.WithoutCancel(ctx), paymentID); err != nil {
		n.Logger.Error("release claim failed; payment will not be retried", map[string]any{
			"payment-id": paymentID,
			"error":      err,
		})
	}
}
