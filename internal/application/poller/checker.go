package poller

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/notification"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/marker"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/payment"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/logging"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/metrics"
)

const DefaultLimit = 20

type Result struct {
	Success        bool   `json:"success"`
	TotalPayments  int    `json:"totalPayments"`
	NewPayments    int    `json:"newPayments"`
	FailedPayments int    `json:"failedPayments,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Fields renders the result the way it is logged: a failed run carries only
// success and error.
func (r Result) Fields() map[string]any {
	if !r.Success {
		return map[string]any{"success": false, "error": r.Error}
	}
	f := map[string]any{
		"success":       true,
		"totalPayments": r.TotalPayments,
		"newPayments":   r.NewPayments,
	}
	if r.FailedPayments > 0 {
		f["failedPayments"] = r.FailedPayments
	}
	return f
}

type Notifier interface {
	Notify(context.Context, *payment.Record, marker.Source) (notification.Outcome, error)
}

// Checker catches payments that never produced a webhook, such as direct
// bank transfers, by scanning the most recent page of payments.
type Checker struct {
	Gateway  contracts.PaymentGateway
	Notifier Notifier
	Markers  marker.Repository
	Limit    int
	// IsolateFailures keeps going after a per-payment error instead of
	// failing the whole run.
	IsolateFailures bool
	Logger          logging.Logger
	Metrics         *metrics.Counters
}

func (c *Checker) limit() int {
	if c.Limit <= 0 {
		return DefaultLimit
	}
	return c.Limit
}

func (c *Checker) Check(ctx context.Context) Result {
	runID := uuid.NewString()
	c.Metrics.IncPollRun()

	res, err := c.check(ctx, runID)
	if err != nil {
		c.Metrics.IncPollFailure()
		c.Logger.Error("recent payments check failed", map[string]any{
			"run-id": runID,
			"error":  err,
		})
		return Result{Success: false, Error: err.Error()}
	}

	return res
}

func (c *Checker) check(ctx context.Context, runID string) (Result, error) {
	payments, err := c.Gateway.RecentPayments(ctx, c.limit())
	if err != nil {
		return Result{}, err
	}

	eligible := make([]*payment.Record, 0, len(payments))
	for i := range payments {
		if notification.IsNotifiable(&payments[i]) {
			eligible = append(eligible, &payments[i])
		}
	}

	c.Logger.Info("recent payments fetched", map[string]any{
		"run-id":   runID,
		"total":    len(payments),
		"eligible": len(eligible),
	})

	res := Result{Success: true, TotalPayments: len(payments)}

	for _, rec := range eligible {
		sent, err := c.process(ctx, rec)
		if err != nil {
			if !c.IsolateFailures {
				return Result{}, err
			}
			res.FailedPayments++
			c.Logger.Error("payment notification failed", map[string]any{
				"run-id":     runID,
				"payment-id": rec.ID.String(),
				"error":      err,
			})
			continue
		}
		if sent {
			res.NewPayments++
		}
	}

	c.Logger.Info("recent payments checked", map[string]any{
		"run-id": runID,
		"total":  res.TotalPayments,
		"new":    res.NewPayments,
		"failed": res.FailedPayments,
	})

	return res, nil
}

func (c *Checker) process(ctx context.Context, rec *payment.Record) (bool, error) {
	paymentID := rec.ID.String()

	exists, err := c.Markers.Exists(ctx, paymentID)
	if err != nil {
		return false, fmt.Errorf("check payment %s: %w", paymentID, err)
	}
	if exists {
		return false, nil
	}

	c.Logger.Info("new payment detected", map[string]any{"payment-id": paymentID})

	outcome, err := c.Notifier.Notify(ctx, rec, marker.SourcePoll)
	if err != nil {
		return false, fmt.Errorf("notify payment %s: %w", paymentID, err)
	}

	return outcome == notification.OutcomeSent, nil
}
