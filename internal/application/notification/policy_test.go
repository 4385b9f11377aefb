package notification_test

import (
	"testing"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/notification"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/payment"
)

func TestIsNotifiable(t *testing.T) {
	statuses := []payment.Status{
		payment.StatusPending,
		payment.StatusApproved,
		payment.StatusRejected,
		payment.StatusInProcess,
		payment.StatusCancelled,
		payment.StatusRefunded,
		"",
	}
	types := []payment.TypeID{
		payment.TypeCreditCard,
		payment.TypeDebitCard,
		payment.TypeBankTransfer,
		payment.TypeTicket,
		payment.TypeAccountMoney,
		payment.TypePrepaidCard,
		"crypto",
		"",
	}
	allowed := map[payment.TypeID]bool{
		payment.TypeBankTransfer: true,
		payment.TypeTicket:       true,
		payment.TypeAccountMoney: true,
	}

	for _, status := range statuses {
		for _, typ := range types {
			rec := &payment.Record{ID: "1", Status: status, PaymentTypeID: typ}

			want := status == payment.StatusApproved && allowed[typ]
			if got := notification.IsNotifiable(rec); got != want {
				t.Errorf("IsNotifiable(status=%q, type=%q) = %v, want %v", status, typ, got, want)
			}
		}
	}
}

func TestDecide_StatusIsCheckedBeforeType(t *testing.T) {
	rec := &payment.Record{Status: payment.StatusPending, PaymentTypeID: payment.TypeCreditCard}

	if got := notification.Decide(rec); got != notification.DecisionNotApproved {
		t.Fatalf("expected %s, got %s", notification.DecisionNotApproved, got)
	}

	rec.Status = payment.StatusApproved
	if got := notification.Decide(rec); got != notification.DecisionTypeIgnored {
		t.Fatalf("expected %s, got %s", notification.DecisionTypeIgnored, got)
	}
}
