package contracts

import (
	"context"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/payment"
)

type PaymentGateway interface {
	GetPayment(ctx context.Context, id string) (*payment.Record, error)
	RecentPayments(ctx context.Context, limit int) ([]payment.Record, error)
}

type Receipt struct {
	MessageID int64
}

type NotificationChannel interface {
	Send(ctx context.Context, text string) (*Receipt, error)
}
