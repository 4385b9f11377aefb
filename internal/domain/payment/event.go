package payment

const (
	EventTypePayment          = "payment"
	EventActionPaymentUpdated = "payment.updated"
)

type EventData struct {
	ID ID `json:"id"`
}

// Event is the body the processor posts to the webhook.
type Event struct {
	Type   string    `json:"type"`
	Action string    `json:"action"`
	Data   EventData `json:"data"`
}

// IsPaymentNotification reports whether the event announces a payment change.
func (e Event) IsPaymentNotification() bool {
	return e.Type == EventTypePayment || e.Action == EventActionPaymentUpdated
}
