// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/money"
)

var (
	// ErrNotFound is returned when a record does not exist for the given owner.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write lost a race with a concurrent
	// transaction (lock timeout, serialization failure). The caller may retry.
	ErrConflict = errors.New("concurrent modification")
)

// Reader holds the read operations. Every method is scoped to ownerID and
// treats records of other owners as absent.
type Reader interface {
	// GetBiller returns ErrNotFound if the biller does not exist.
	GetBiller(ctx context.Context, ownerID, billerID string) (*models.Biller, error)

	// ListBillers returns billers ordered by name.
	ListBillers(ctx context.Context, ownerID string) ([]models.Biller, error)

	// GetBill returns the bill with its Biller attached, or ErrNotFound.
	GetBill(ctx context.Context, ownerID, billID string) (*models.Bill, error)

	// ListBills returns bills ordered by due date ascending, Biller attached.
	ListBills(ctx context.Context, ownerID string) ([]models.Bill, error)

	// ListUnpaidBills is ListBills restricted to status != paid.
	ListUnpaidBills(ctx context.Context, ownerID string) ([]models.Bill, error)

	// ListPayments returns payments ordered by paid-on date, newest first.
	ListPayments(ctx context.Context, ownerID string) ([]models.Payment, error)

	// SumPayments totals the payments applied to one bill.
	SumPayments(ctx context.Context, ownerID, billID string) (money.Money, error)

	// ListPaymentHistory returns history ordered by TransactionAt, newest first.
	ListPaymentHistory(ctx context.Context, ownerID string) ([]models.PaymentHistory, error)

	// ListOwners returns every owner that has at least one bill.
	ListOwners(ctx context.Context) ([]string, error)
}

// Tx is a unit of work. Writes are visible to reads made through the same
// Tx and become durable only if the function passed to WithTx returns nil.
type Tx interface {
	Reader

	// LockBill returns the bill with its Biller attached and holds a write
	// lock on it until the transaction ends.
	LockBill(ctx context.Context, ownerID, billID string) (*models.Bill, error)

	// CreateBiller assigns ID and CreatedAt when unset.
	CreateBiller(ctx context.Context, biller *models.Biller) error
	UpdateBiller(ctx context.Context, biller *models.Biller) error

	// DeleteBiller removes the biller, its bills and their payments.
	// Payment history is kept.
	DeleteBiller(ctx context.Context, ownerID, billerID string) error

	CreateBill(ctx context.Context, bill *models.Bill) error

	// UpdateBill overwrites every mutable column of the bill.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes the bill and its payments. Payment history is kept.
	DeleteBill(ctx context.Context, ownerID, billID string) error

	InsertPayment(ctx context.Context, payment *models.Payment) error

	// InsertHistory assigns ID and a TransactionAt strictly greater than
	// every existing history row.
	InsertHistory(ctx context.Context, history *models.PaymentHistory) error
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the ledger.
type Store interface {
	Reader

	// WithTx runs fn in a transaction, committing if it returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
