package notification

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/payment"
)

const (
	DefaultTimezone = "America/Mexico_City"

	dateLayout   = "02/01/2006, 03:04:05"
	unknownDate  = "Fecha desconocida"
	notAvailable = "N/A"
)

var methodLabels = map[payment.TypeID]string{
	payment.TypeCreditCard:   "Tarjeta de Crédito",
	payment.TypeDebitCard:    "Tarjeta de Débito",
	payment.TypeBankTransfer: "Transferencia",
	payment.TypeTicket:       "Efectivo",
	payment.TypeAccountMoney: "Dinero en cuenta",
}

// Formatter renders payment confirmations in Telegram Markdown.
type Formatter struct {
	Location *time.Location
}

func NewFormatter(timezone string) (*Formatter, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("notification: load timezone %q: %w", timezone, err)
	}
	return &Formatter{Location: loc}, nil
}

func (f *Formatter) Render(rec *payment.Record) string {
	var b strings.Builder

	b.WriteString("💰 *PAGO CONFIRMADO*\n\n")
	fmt.Fprintf(&b, "Monto: $%s\n", formatAmount(rec))
	fmt.Fprintf(&b, "Fecha: %s\n", f.formatDate(rec.PaidAt()))

	// the line stays, empty, for every other payment
	if rec.PaymentTypeID == payment.TypeBankTransfer && rec.TransactionID() != "" {
		fmt.Fprintf(&b, "ID Transacción: `%s`", EscapeMarkdown(rec.TransactionID()))
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Método: %s\n", MethodLabel(rec.PaymentTypeID))
	fmt.Fprintf(&b, "Estado: %s", statusLabel(rec.StatusDetail))

	return b.String()
}

func (f *Formatter) formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return unknownDate
	}
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	period := "a.m."
	if local.Hour() >= 12 {
		period = "p.m."
	}
	return local.Format(dateLayout) + " " + period
}

func formatAmount(rec *payment.Record) string {
	if rec.TransactionAmount == nil || rec.TransactionAmount.IsZero() {
		return notAvailable
	}
	return rec.TransactionAmount.String()
}

func MethodLabel(t payment.TypeID) string {
	if label, ok := methodLabels[t]; ok {
		return label
	}
	if t == "" {
		return notAvailable
	}
	return string(t)
}

func statusLabel(detail string) string {
	if detail == payment.StatusDetailAccredited {
		return "Acreditado"
	}
	return detail
}

// EscapeMarkdown escapes underscores, which legacy Markdown reads as italics.
func EscapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "_", `\_`)
}
