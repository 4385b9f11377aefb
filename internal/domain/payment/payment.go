package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusAuthorized Status = "authorized"
	StatusInProcess  Status = "in_process"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

type TypeID string

const (
	TypeCreditCard    TypeID = "credit_card"
	TypeDebitCard     TypeID = "debit_card"
	TypeBankTransfer  TypeID = "bank_transfer"
	TypeTicket        TypeID = "ticket"
	TypeAccountMoney  TypeID = "account_money"
	TypePrepaidCard   TypeID = "prepaid_card"
	TypeDigitalWallet TypeID = "digital_wallet"
)

const StatusDetailAccredited = "accredited"

type TransactionDetails struct {
	TransactionID *string `json:"transaction_id"`
}

// Record is a payment as returned by the processor. It is fetched fresh for
// every lookup and never mutated afterwards.
type Record struct {
	ID                 ID                 `json:"id"`
	Status             Status             `json:"status"`
	StatusDetail       string             `json:"status_detail"`
	PaymentTypeID      TypeID             `json:"payment_type_id"`
	TransactionAmount  *decimal.Decimal   `json:"transaction_amount"`
	DateCreated        *time.Time         `json:"date_created"`
	DateApproved       *time.Time         `json:"date_approved"`
	TransactionDetails TransactionDetails `json:"transaction_details"`
}

func (r *Record) Approved() bool {
	return r.Status == StatusApproved
}

// PaidAt returns the creation date, falling back to the approval date.
func (r *Record) PaidAt() *time.Time {
	if r.DateCreated != nil {
		return r.DateCreated
	}
	return r.DateApproved
}

func (r *Record) TransactionID() string {
	if r.TransactionDetails.TransactionID == nil {
		return ""
	}
	return *r.TransactionDetails.TransactionID
}

type SearchResult struct {
	Results []Record `json:"results"`
}
