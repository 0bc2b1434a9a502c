package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/money"
	"github.com/mmynk/billwise/internal/reconcile"
	"github.com/mmynk/billwise/internal/storage"
)

// PaymentInput describes a payment to apply. A zero PaidOn means today.
// Status is the caller's own label and does not affect reconciliation.
type PaymentInput struct {
	BillID    string
	Amount    money.Money
	PaidOn    time.Time
	Method    string
	Reference string
	Notes     string
	Status    string
}

func (in PaymentInput) validate() error {
	if in.BillID == "" {
		return invalid("bill_id", "is required")
	}
	if !in.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	return nil
}

// AddPayment applies a payment to a bill. In one transaction it records the
// payment, recomputes the bill's balance and status from all of the bill's
// payments, and appends a history snapshot. Nothing is written if any step
// fails.
func (l *Ledger) AddPayment(ctx context.Context, owner string, in PaymentInput) (*models.Payment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	paidOn := in.PaidOn
	if paidOn.IsZero() {
		paidOn = l.today()
	}

	var (
		payment *models.Payment
		bill    *models.Bill
	)
	err := l.write(ctx, "add payment", func(tx storage.Tx) error {
		locked, err := tx.LockBill(ctx, owner, in.BillID)
		if err != nil {
			return err
		}

		p := &models.Payment{
			OwnerID:    owner,
			BillID:     locked.ID,
			Amount:     in.Amount,
			PaidOn:     paidOn,
			Method:     in.Method,
			Reference:  in.Reference,
			Notes:      in.Notes,
			Status:     in.Status,
			BillerName: locked.BillerName(),
		}
		if err := tx.InsertPayment(ctx, p); err != nil {
			return err
		}

		totalPaid, err := tx.SumPayments(ctx, owner, locked.ID)
		if err != nil {
			return err
		}
		reconcile.ReconcileTotal(locked, totalPaid).Apply(locked)
		if err := tx.UpdateBill(ctx, locked); err != nil {
			return err
		}

		if err := tx.InsertHistory(ctx, reconcile.Snapshot(locked, p)); err != nil {
			return err
		}

		payment, bill = p, locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.metrics.PaymentApplied(string(bill.Status))
	slog.Info("Payment applied",
		"owner_id", owner,
		"bill_id", bill.ID,
		"payment_id", payment.ID,
		"amount", payment.Amount.String(),
		"balance", bill.Balance.String(),
		"status", bill.Status,
	)
	return payment, nil
}

// ListPayments returns owner's payments, most recent paid-on date first.
func (l *Ledger) ListPayments(ctx context.Context, owner string) ([]models.Payment, error) {
	payments, err := l.store.ListPayments(ctx, owner)
	if err != nil {
		return nil, l.translate("list payments", err)
	}
	return payments, nil
}

// ListPaymentHistory returns owner's history snapshots, newest first.
func (l *Ledger) ListPaymentHistory(ctx context.Context, owner string) ([]models.PaymentHistory, error) {
	history, err := l.store.ListPaymentHistory(ctx, owner)
	if err != nil {
		return nil, l.translate("list payment history", err)
	}
	return history, nil
}
