package notification

import "github.com/rcarvalho-pb/payment_notifier-go/internal/domain/payment"

// Only transfer-like instruments are announced. Card payments are left out.
var allowedTypes = map[payment.TypeID]struct{}{
	payment.TypeBankTransfer: {},
	payment.TypeAccountMoney: {},
	payment.TypeTicket:       {},
}

type Decision int

const (
	DecisionNotify Decision = iota
	DecisionNotApproved
	DecisionTypeIgnored
)

func (d Decision) String() string {
	switch d {
	case DecisionNotify:
		return "notify"
	case DecisionNotApproved:
		return "not-approved"
	case DecisionTypeIgnored:
		return "type-ignored"
	}
	return "unknown"
}

func AllowedType(t payment.TypeID) bool {
	_, ok := allowedTypes[t]
	return ok
}

// Decide applies the status check before the type filter, so a pending card
// payment reports DecisionNotApproved.
func Decide(rec *payment.Record) Decision {
	if !rec.Approved() {
		return DecisionNotApproved
	}
	if !AllowedType(rec.PaymentTypeID) {
		return DecisionTypeIgnored
	}
	return DecisionNotify
}

func IsNotifiable(rec *payment.Record) bool {
	return Decide(rec) == DecisionNotify
}
