package models

import (
	"time"

	"github.com/mmynk/billwise/internal/money"
)

// Payment is an amount applied against a Bill.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	OwnerID string

	// BillID is the bill this payment was applied to.
	BillID string

	// Amount is always positive.
	Amount money.Money

	// PaidOn is the calendar date the payment was made.
	PaidOn time.Time

	// Method is free text such as "GCash" or "Bank Transfer".
	Method string

	// Reference is a confirmation or transaction number.
	Reference string

	Notes string

	// Status is the caller's own label for the payment ("Paid", "Pending",
	// "Overpayment", ...). It is stored as given and never interpreted.
	Status string

	// BillerName is filled in by list queries for display.
	BillerName string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}

// PaymentHistory is an immutable snapshot taken when a payment is applied.
// It survives deletion of the bill and biller it describes.
type PaymentHistory struct {
	ID string

	OwnerID string

	// BillID is a snapshot, not a reference. The bill may no longer exist.
	BillID string

	// BillerName is the biller's name at the time of payment, or "Unknown".
	BillerName string

	// Amount is the payment amount.
	Amount money.Money

	// Balance is the bill's balance immediately after this payment.
	Balance money.Money

	DueDate time.Time
	PaidOn  time.Time

	// Status is the bill status derived by the reconciliation engine.
	Status BillStatus

	Method    string
	Reference string

	// TransactionAt is a Unix microsecond timestamp, strictly increasing across
	// all history rows of a store. History is ordered by it.
	TransactionAt int64
}
