package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/reconcile"
	"github.com/mmynk/billwise/internal/storage"
)

// CreateBiller persists a new biller.
func (t *sqliteTx) CreateBiller(ctx context.Context, biller *models.Biller) error {
	if biller.ID == "" {
		biller.ID = uuid.New().String()
	}
	if biller.CreatedAt == 0 {
		biller.CreatedAt = t.now().Unix()
	}

	_, err := t.q.ExecContext(ctx,
		"INSERT INTO billers (id, owner_id, name, category, account, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		biller.ID, biller.OwnerID, biller.Name, string(biller.Category), biller.Account, biller.Notes, biller.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert biller: %w", err)
	}
	return nil
}

// UpdateBiller overwrites a biller's editable fields.
func (t *sqliteTx) UpdateBiller(ctx context.Context, biller *models.Biller) error {
	res, err := t.q.ExecContext(ctx,
		"UPDATE billers SET name = ?, category = ?, account = ?, notes = ? WHERE id = ? AND owner_id = ?",
		biller.Name, string(biller.Category), biller.Account, biller.Notes, biller.ID, biller.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update biller: %w", err)
	}
	return requireAffected(res, "biller", biller.ID)
}

// DeleteBiller removes a biller together with its bills and their payments.
func (t *sqliteTx) DeleteBiller(ctx context.Context, ownerID, billerID string) error {
	if _, err := t.q.ExecContext(ctx,
		`DELETE FROM payments WHERE bill_id IN (SELECT id FROM bills WHERE biller_id = ? AND owner_id = ?)`,
		billerID, ownerID,
	); err != nil {
		return fmt.Errorf("failed to delete biller payments: %w", err)
	}
	if _, err := t.q.ExecContext(ctx,
		"DELETE FROM bills WHERE biller_id = ? AND owner_id = ?",
		billerID, ownerID,
	); err != nil {
		return fmt.Errorf("failed to delete biller bills: %w", err)
	}
	res, err := t.q.ExecContext(ctx, "DELETE FROM billers WHERE id = ? AND owner_id = ?", billerID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete biller: %w", err)
	}
	return requireAffected(res, "biller", billerID)
}

// CreateBill persists a new bill.
func (t *sqliteTx) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = t.now().Unix()
	}

	_, err := t.q.ExecContext(ctx,
		`INSERT INTO bills (id, owner_id, biller_id, amount, balance_amount, due_date, period_month, period_year, status, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.OwnerID, bill.BillerID, bill.Amount, bill.Balance, models.FormatDate(bill.DueDate),
		nullInt(bill.PeriodMonth), nullInt(bill.PeriodYear), string(bill.Status), bill.Notes, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// UpdateBill overwrites a bill's mutable columns, including the derived ones.
func (t *sqliteTx) UpdateBill(ctx context.Context, bill *models.Bill) error {
	res, err := t.q.ExecContext(ctx,
		`UPDATE bills SET biller_id = ?, amount = ?, balance_amount = ?, due_date = ?, period_month = ?,
		        period_year = ?, status = ?, notes = ?
		 WHERE id = ? AND owner_id = ?`,
		bill.BillerID, bill.Amount, bill.Balance, models.FormatDate(bill.DueDate), nullInt(bill.PeriodMonth),
		nullInt(bill.PeriodYear), string(bill.Status), bill.Notes, bill.ID, bill.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	return requireAffected(res, "bill", bill.ID)
}

// DeleteBill removes a bill and its payments.
func (t *sqliteTx) DeleteBill(ctx context.Context, ownerID, billID string) error {
	if _, err := t.q.ExecContext(ctx,
		"DELETE FROM payments WHERE bill_id = ? AND owner_id = ?",
		billID, ownerID,
	); err != nil {
		return fmt.Errorf("failed to delete bill payments: %w", err)
	}
	res, err := t.q.ExecContext(ctx, "DELETE FROM bills WHERE id = ? AND owner_id = ?", billID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return requireAffected(res, "bill", billID)
}

// InsertPayment persists a payment.
func (t *sqliteTx) InsertPayment(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = t.now().Unix()
	}

	_, err := t.q.ExecContext(ctx,
		`INSERT INTO payments (id, owner_id, bill_id, amount, paid_on, method, reference, notes, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.BillID, p.Amount, models.FormatDate(p.PaidOn), p.Method, p.Reference, p.Notes, p.Status, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// InsertHistory appends a history row with the next transaction timestamp.
func (t *sqliteTx) InsertHistory(ctx context.Context, h *models.PaymentHistory) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}

	var last int64
	if err := t.q.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(transaction_at), 0) FROM payment_history",
	).Scan(&last); err != nil {
		return fmt.Errorf("failed to read last history timestamp: %w", err)
	}
	h.TransactionAt = reconcile.NextTransactionAt(t.now(), last)

	_, err := t.q.ExecContext(ctx,
		`INSERT INTO payment_history (id, owner_id, bill_id, biller_name, amount, balance_amount, due_date, paid_on,
		                              status, method, reference, transaction_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.OwnerID, h.BillID, h.BillerName, h.Amount, h.Balance, models.FormatDate(h.DueDate),
		models.FormatDate(h.PaidOn), string(h.Status), h.Method, h.Reference, h.TransactionAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment history: %w", err)
	}
	return nil
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func requireAffected(res rowsAffecter, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check %s rows: %w", kind, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
