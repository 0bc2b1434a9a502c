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

// BillInput holds the fields supplied when creating a bill.
type BillInput struct {
	BillerID    string
	Amount      money.Money
	DueDate     time.Time
	PeriodMonth int
	PeriodYear  int
	Notes       string
}

func (in BillInput) validate() error {
	if in.BillerID == "" {
		return invalid("biller_id", "is required")
	}
	if !in.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if in.DueDate.IsZero() {
		return invalid("due_date", "is required")
	}
	if in.PeriodMonth < 0 || in.PeriodMonth > 12 {
		return invalid("period_month", "must be between 1 and 12")
	}
	if in.PeriodYear < 0 {
		return invalid("period_year", "must not be negative")
	}
	return nil
}

// BillUpdate holds the fields of a bill edit. An empty Status keeps the
// stored status.
type BillUpdate struct {
	BillInput
	Status models.BillStatus
}

func (in BillUpdate) validate() error {
	if err := in.BillInput.validate(); err != nil {
		return err
	}
	if in.Status != "" && !in.Status.Valid() {
		return invalid("status", "must be unpaid, partial or paid")
	}
	return nil
}

// AddBill records a new unpaid bill whose balance equals its amount.
func (l *Ledger) AddBill(ctx context.Context, owner string, in BillInput) (*models.Bill, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	bill := &models.Bill{
		OwnerID:     owner,
		BillerID:    in.BillerID,
		Amount:      in.Amount,
		Balance:     in.Amount,
		DueDate:     in.DueDate,
		PeriodMonth: in.PeriodMonth,
		PeriodYear:  in.PeriodYear,
		Status:      models.StatusUnpaid,
		Notes:       in.Notes,
	}
	err := l.write(ctx, "add bill", func(tx storage.Tx) error {
		biller, err := tx.GetBiller(ctx, owner, in.BillerID)
		if err != nil {
			return err
		}
		bill.Biller = biller
		return tx.CreateBill(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Bill added", "owner_id", owner, "bill_id", bill.ID, "amount", bill.Amount.String())
	return bill, nil
}

// GetBill returns one bill with its biller.
func (l *Ledger) GetBill(ctx context.Context, owner, id string) (*models.Bill, error) {
	bill, err := l.store.GetBill(ctx, owner, id)
	if err != nil {
		return nil, l.translate("get bill", err)
	}
	return bill, nil
}

// ListBills returns every bill of owner, earliest due first.
func (l *Ledger) ListBills(ctx context.Context, owner string) ([]models.Bill, error) {
	bills, err := l.store.ListBills(ctx, owner)
	if err != nil {
		return nil, l.translate("list bills", err)
	}
	return bills, nil
}

// ListUnpaidBills returns bills not yet paid, earliest due first.
func (l *Ledger) ListUnpaidBills(ctx context.Context, owner string) ([]models.Bill, error) {
	bills, err := l.store.ListUnpaidBills(ctx, owner)
	if err != nil {
		return nil, l.translate("list unpaid bills", err)
	}
	return bills, nil
}

// UpdateBill overwrites a bill's fields and recomputes its balance against
// the payments already recorded. The status is only changed when the update
// names one; it is not re-derived from the payments.
func (l *Ledger) UpdateBill(ctx context.Context, owner, id string, in BillUpdate) (*models.Bill, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var bill *models.Bill
	err := l.write(ctx, "update bill", func(tx storage.Tx) error {
		existing, err := tx.LockBill(ctx, owner, id)
		if err != nil {
			return err
		}
		biller, err := tx.GetBiller(ctx, owner, in.BillerID)
		if err != nil {
			return err
		}
		totalPaid, err := tx.SumPayments(ctx, owner, id)
		if err != nil {
			return err
		}

		existing.BillerID = in.BillerID
		existing.Biller = biller
		existing.Amount = in.Amount
		existing.DueDate = in.DueDate
		existing.PeriodMonth = in.PeriodMonth
		existing.PeriodYear = in.PeriodYear
		existing.Notes = in.Notes
		reconcile.Rebalance(existing, totalPaid, in.Status)

		if err := tx.UpdateBill(ctx, existing); err != nil {
			return err
		}
		bill = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Bill updated", "owner_id", owner, "bill_id", id, "balance", bill.Balance.String(), "status", bill.Status)
	return bill, nil
}

// DeleteBill removes a bill and its payments. Payment history is kept.
func (l *Ledger) DeleteBill(ctx context.Context, owner, id string) error {
	err := l.write(ctx, "delete bill", func(tx storage.Tx) error {
		return tx.DeleteBill(ctx, owner, id)
	})
	if err != nil {
		return err
	}
	slog.Info("Bill deleted", "owner_id", owner, "bill_id", id)
	return nil
}
