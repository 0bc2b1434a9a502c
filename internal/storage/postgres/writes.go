package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/reconcile"
	"github.com/mmynk/billwise/internal/storage"
)

// historyLockKey is the advisory lock held while assigning history timestamps.
const historyLockKey = 0x62696c6c

// LockBill reads the bill and holds its row lock until the transaction ends.
func (t *pgTx) LockBill(ctx context.Context, ownerID, billID string) (*models.Bill, error) {
	return t.getBill(ctx, " FOR UPDATE OF b", ownerID, billID)
}

func (t *pgTx) CreateBiller(ctx context.Context, biller *models.Biller) error {
	if biller.ID == "" {
		biller.ID = uuid.New().String()
	}
	if biller.CreatedAt == 0 {
		biller.CreatedAt = t.now().Unix()
	}
	_, err := t.q.Exec(ctx,
		"INSERT INTO billers (id, owner_id, name, category, account, notes, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		biller.ID, biller.OwnerID, biller.Name, string(biller.Category), biller.Account, biller.Notes, biller.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert biller: %w", err)
	}
	return nil
}

func (t *pgTx) UpdateBiller(ctx context.Context, biller *models.Biller) error {
	tag, err := t.q.Exec(ctx,
		"UPDATE billers SET name = $1, category = $2, account = $3, notes = $4 WHERE id = $5 AND owner_id = $6",
		biller.Name, string(biller.Category), biller.Account, biller.Notes, biller.ID, biller.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update biller: %w", err)
	}
	return requireAffected(tag, "biller", biller.ID)
}

func (t *pgTx) DeleteBiller(ctx context.Context, ownerID, billerID string) error {
	if _, err := t.q.Exec(ctx,
		"DELETE FROM payments WHERE bill_id IN (SELECT id FROM bills WHERE biller_id = $1 AND owner_id = $2)",
		billerID, ownerID,
	); err != nil {
		return fmt.Errorf("failed to delete biller payments: %w", err)
	}
	if _, err := t.q.Exec(ctx, "DELETE FROM bills WHERE biller_id = $1 AND owner_id = $2", billerID, ownerID); err != nil {
		return fmt.Errorf("failed to delete biller bills: %w", err)
	}
	tag, err := t.q.Exec(ctx, "DELETE FROM billers WHERE id = $1 AND owner_id = $2", billerID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete biller: %w", err)
	}
	return requireAffected(tag, "biller", billerID)
}

func (t *pgTx) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = t.now().Unix()
	}
	_, err := t.q.Exec(ctx,
		`INSERT INTO bills (id, owner_id, biller_id, amount, balance_amount, due_date, period_month, period_year, status, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		bill.ID, bill.OwnerID, bill.BillerID, bill.Amount.String(), bill.Balance.String(), bill.DueDate,
		nullInt(bill.PeriodMonth), nullInt(bill.PeriodYear), string(bill.Status), bill.Notes, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

func (t *pgTx) UpdateBill(ctx context.Context, bill *models.Bill) error {
	tag, err := t.q.Exec(ctx,
		`UPDATE bills SET biller_id = $1, amount = $2, balance_amount = $3, due_date = $4, period_month = $5,
		        period_year = $6, status = $7, notes = $8
		 WHERE id = $9 AND owner_id = $10`,
		bill.BillerID, bill.Amount.String(), bill.Balance.String(), bill.DueDate, nullInt(bill.PeriodMonth),
		nullInt(bill.PeriodYear), string(bill.Status), bill.Notes, bill.ID, bill.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	return requireAffected(tag, "bill", bill.ID)
}

func (t *pgTx) DeleteBill(ctx context.Context, ownerID, billID string) error {
	if _, err := t.q.Exec(ctx, "DELETE FROM payments WHERE bill_id = $1 AND owner_id = $2", billID, ownerID); err != nil {
		return fmt.Errorf("failed to delete bill payments: %w", err)
	}
	tag, err := t.q.Exec(ctx, "DELETE FROM bills WHERE id = $1 AND owner_id = $2", billID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return requireAffected(tag, "bill", billID)
}

func (t *pgTx) InsertPayment(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = t.now().Unix()
	}
	_, err := t.q.Exec(ctx,
		`INSERT INTO payments (id, owner_id, bill_id, amount, paid_on, method, reference, notes, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.OwnerID, p.BillID, p.Amount.String(), p.PaidOn, p.Method, p.Reference, p.Notes, p.Status, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// InsertHistory serializes timestamp assignment across transactions with an
// advisory lock so concurrent payments on different bills cannot collide.
func (t *pgTx) InsertHistory(ctx context.Context, h *models.PaymentHistory) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if _, err := t.q.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", int64(historyLockKey)); err != nil {
		return fmt.Errorf("failed to lock payment history: %w", err)
	}

	var last int64
	if err := t.q.QueryRow(ctx, "SELECT COALESCE(MAX(transaction_at), 0) FROM payment_history").Scan(&last); err != nil {
		return fmt.Errorf("failed to read last history timestamp: %w", err)
	}
	h.TransactionAt = reconcile.NextTransactionAt(t.now(), last)

	_, err := t.q.Exec(ctx,
		`INSERT INTO payment_history (id, owner_id, bill_id, biller_name, amount, balance_amount, due_date, paid_on,
		                              status, method, reference, transaction_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		h.ID, h.OwnerID, h.BillID, h.BillerName, h.Amount.String(), h.Balance.String(), h.DueDate,
		h.PaidOn, string(h.Status), h.Method, h.Reference, h.TransactionAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment history: %w", err)
	}
	return nil
}

func requireAffected(tag pgconn.CommandTag, kind, id string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
