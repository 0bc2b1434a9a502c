package models

import (
	"time"

	"github.com/mmynk/billwise/internal/money"
)

// BillStatus is the settlement state of a Bill.
type BillStatus string

const (
	StatusUnpaid  BillStatus = "unpaid"
	StatusPartial BillStatus = "partial"
	StatusPaid    BillStatus = "paid"
)

// Valid reports whether s is one of the three known statuses.
func (s BillStatus) Valid() bool {
	switch s {
	case StatusUnpaid, StatusPartial, StatusPaid:
		return true
	}
	return false
}

// Bill is an amount owed to a Biller.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// OwnerID is the identity that owns this bill.
	OwnerID string

	// BillerID references the Biller this bill is owed to.
	BillerID string

	// Biller is attached by the store on every read.
	Biller *Biller

	// Amount is the total owed. Always positive.
	Amount money.Money

	// Balance is Amount minus the sum of all payments. It goes negative on overpayment.
	Balance money.Money

	// DueDate is a calendar date (UTC midnight).
	DueDate time.Time

	// PeriodMonth (1-12) and PeriodYear identify the billing period. Zero means unset.
	PeriodMonth int
	PeriodYear  int

	Status BillStatus

	Notes string

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64
}

// BillerName returns the attached biller's name, or "" when none is attached.
func (b *Bill) BillerName() string {
	if b.Biller == nil {
		return ""
	}
	return b.Biller.Name
}
