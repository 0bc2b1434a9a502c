package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/money"
	"github.com/mmynk/billwise/internal/storage"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queries implements storage.Reader on top of a querier.
type queries struct {
	q   querier
	now func() time.Time
}

const billerColumns = "id, owner_id, name, category, account, notes, created_at"

func scanBiller(s scanner) (*models.Biller, error) {
	b := &models.Biller{}
	var category string
	if err := s.Scan(&b.ID, &b.OwnerID, &b.Name, &category, &b.Account, &b.Notes, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Category = models.Category(category)
	return b, nil
}

// GetBiller retrieves a biller by ID.
func (r *queries) GetBiller(ctx context.Context, ownerID, billerID string) (*models.Biller, error) {
	row := r.q.QueryRowContext(ctx,
		"SELECT "+billerColumns+" FROM billers WHERE id = ? AND owner_id = ?",
		billerID, ownerID,
	)
	b, err := scanBiller(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("biller %s: %w", billerID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get biller: %w", err)
	}
	return b, nil
}

// ListBillers retrieves all billers for an owner.
func (r *queries) ListBillers(ctx context.Context, ownerID string) ([]models.Biller, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT "+billerColumns+" FROM billers WHERE owner_id = ? ORDER BY name, created_at",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list billers: %w", err)
	}
	defer rows.Close()

	var billers []models.Biller
	for rows.Next() {
		b, err := scanBiller(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan biller: %w", err)
		}
		billers = append(billers, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate billers: %w", err)
	}
	return billers, nil
}

// billSelect joins the owning biller so every bill is returned with it attached.
const billSelect = `SELECT b.id, b.owner_id, b.biller_id, b.amount, b.balance_amount, b.due_date,
       b.period_month, b.period_year, b.status, b.notes, b.created_at,
       bl.id, bl.owner_id, bl.name, bl.category, bl.account, bl.notes, bl.created_at
FROM bills b
JOIN billers bl ON bl.id = b.biller_id`

func scanBill(s scanner) (*models.Bill, error) {
	b := &models.Bill{Biller: &models.Biller{}}
	var (
		dueDate, status, category string
		month, year               sql.NullInt64
	)
	err := s.Scan(&b.ID, &b.OwnerID, &b.BillerID, &b.Amount, &b.Balance, &dueDate,
		&month, &year, &status, &b.Notes, &b.CreatedAt,
		&b.Biller.ID, &b.Biller.OwnerID, &b.Biller.Name, &category, &b.Biller.Account, &b.Biller.Notes, &b.Biller.CreatedAt)
	if err != nil {
		return nil, err
	}
	if b.DueDate, err = models.ParseDate(dueDate); err != nil {
		return nil, fmt.Errorf("invalid due date %q: %w", dueDate, err)
	}
	b.PeriodMonth = int(month.Int64)
	b.PeriodYear = int(year.Int64)
	b.Status = models.BillStatus(status)
	b.Biller.Category = models.Category(category)
	return b, nil
}

func (r *queries) listBills(ctx context.Context, where string, args ...any) ([]models.Bill, error) {
	rows, err := r.q.QueryContext(ctx,
		billSelect+" WHERE "+where+" ORDER BY b.due_date ASC, b.created_at ASC, b.id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// GetBill retrieves a bill by ID with its biller.
func (r *queries) GetBill(ctx context.Context, ownerID, billID string) (*models.Bill, error) {
	row := r.q.QueryRowContext(ctx, billSelect+" WHERE b.id = ? AND b.owner_id = ?", billID, ownerID)
	b, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return b, nil
}

// ListBills retrieves all bills for an owner, earliest due first.
func (r *queries) ListBills(ctx context.Context, ownerID string) ([]models.Bill, error) {
	return r.listBills(ctx, "b.owner_id = ?", ownerID)
}

// ListUnpaidBills retrieves bills that are not fully paid, earliest due first.
func (r *queries) ListUnpaidBills(ctx context.Context, ownerID string) ([]models.Bill, error) {
	return r.listBills(ctx, "b.owner_id = ? AND b.status <> ?", ownerID, string(models.StatusPaid))
}

const paymentSelect = `SELECT p.id, p.owner_id, p.bill_id, p.amount, p.paid_on, p.method, p.reference,
       p.notes, p.status, p.created_at, bl.name
FROM payments p
JOIN bills b ON b.id = p.bill_id
JOIN billers bl ON bl.id = b.biller_id`

func scanPayment(s scanner) (*models.Payment, error) {
	p := &models.Payment{}
	var paidOn string
	err := s.Scan(&p.ID, &p.OwnerID, &p.BillID, &p.Amount, &paidOn, &p.Method, &p.Reference,
		&p.Notes, &p.Status, &p.CreatedAt, &p.BillerName)
	if err != nil {
		return nil, err
	}
	if p.PaidOn, err = models.ParseDate(paidOn); err != nil {
		return nil, fmt.Errorf("invalid paid_on %q: %w", paidOn, err)
	}
	return p, nil
}

func (r *queries) listPayments(ctx context.Context, where string, args ...any) ([]models.Payment, error) {
	rows, err := r.q.QueryContext(ctx,
		paymentSelect+" WHERE "+where+" ORDER BY p.paid_on DESC, p.created_at DESC, p.id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// ListPayments retrieves all payments for an owner, most recent first.
func (r *queries) ListPayments(ctx context.Context, ownerID string) ([]models.Payment, error) {
	return r.listPayments(ctx, "p.owner_id = ?", ownerID)
}

// SumPayments totals a bill's payments. Amounts are TEXT, so the sum is
// done in Go rather than with SQL SUM, which would coerce to REAL.
func (r *queries) SumPayments(ctx context.Context, ownerID, billID string) (money.Money, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT amount FROM payments WHERE owner_id = ? AND bill_id = ?",
		ownerID, billID,
	)
	if err != nil {
		return money.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}
	defer rows.Close()

	var amounts []money.Money
	for rows.Next() {
		var amount money.Money
		if err := rows.Scan(&amount); err != nil {
			return money.Zero, fmt.Errorf("failed to scan payment amount: %w", err)
		}
		amounts = append(amounts, amount)
	}
	if err := rows.Err(); err != nil {
		return money.Zero, fmt.Errorf("failed to iterate payment amounts: %w", err)
	}
	return money.Sum(amounts...), nil
}

// ListPaymentHistory retrieves history rows for an owner, newest first.
func (r *queries) ListPaymentHistory(ctx context.Context, ownerID string) ([]models.PaymentHistory, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, owner_id, bill_id, biller_name, amount, balance_amount, due_date, paid_on,
		        status, method, reference, transaction_at
		 FROM payment_history WHERE owner_id = ? ORDER BY transaction_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment history: %w", err)
	}
	defer rows.Close()

	var history []models.PaymentHistory
	for rows.Next() {
		var (
			h               models.PaymentHistory
			dueDate, paidOn string
			status          string
		)
		if err := rows.Scan(&h.ID, &h.OwnerID, &h.BillID, &h.BillerName, &h.Amount, &h.Balance,
			&dueDate, &paidOn, &status, &h.Method, &h.Reference, &h.TransactionAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment history: %w", err)
		}
		if h.DueDate, err = models.ParseDate(dueDate); err != nil {
			return nil, fmt.Errorf("invalid due date %q: %w", dueDate, err)
		}
		if h.PaidOn, err = models.ParseDate(paidOn); err != nil {
			return nil, fmt.Errorf("invalid paid_on %q: %w", paidOn, err)
		}
		h.Status = models.BillStatus(status)
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment history: %w", err)
	}
	return history, nil
}

// ListOwners returns the distinct owners that have bills.
func (r *queries) ListOwners(ctx context.Context) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT DISTINCT owner_id FROM bills ORDER BY owner_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("failed to scan owner: %w", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate owners: %w", err)
	}
	return owners, nil
}

// nullInt stores 0 as NULL.
func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}
