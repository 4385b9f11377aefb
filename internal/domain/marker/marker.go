package marker

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/payment"
)

type Source string

const (
	SourcePoll    Source = "poll"
	SourceWebhook Source = "webhook"
)

// Marker records that a notification for PaymentID has been claimed.
type Marker struct {
	PaymentID   string          `json:"-"`
	ProcessedAt time.Time       `json:"processedAt"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date"`
	Type        string          `json:"type"`
	Source      Source          `json:"source"`
}

func New(rec *payment.Record, source Source, now time.Time) *Marker {
	m := &Marker{
		PaymentID:   rec.ID.String(),
		ProcessedAt: now.UTC(),
		Date:        rec.DateCreated,
		Type:        string(rec.PaymentTypeID),
		Source:      source,
	}
	if rec.TransactionAmount != nil {
		m.Amount = *rec.TransactionAmount
	}
	return m
}
