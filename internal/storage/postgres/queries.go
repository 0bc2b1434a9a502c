package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/money"
	"github.com/mmynk/billwise/internal/storage"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type queries struct {
	q   querier
	now func() time.Time
}

// moneyText holds a NUMERIC column selected as ::text.
type moneyText string

func (m moneyText) parse() (money.Money, error) {
	return money.Parse(string(m))
}

const billerColumns = "id, owner_id, name, category, account, notes, created_at"

func scanBiller(row pgx.Row) (*models.Biller, error) {
	b := &models.Biller{}
	var category string
	if err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &category, &b.Account, &b.Notes, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Category = models.Category(category)
	return b, nil
}

func (r *queries) GetBiller(ctx context.Context, ownerID, billerID string) (*models.Biller, error) {
	b, err := scanBiller(r.q.QueryRow(ctx,
		"SELECT "+billerColumns+" FROM billers WHERE id = $1 AND owner_id = $2",
		billerID, ownerID,
	))
	if isNoRows(err) {
		return nil, fmt.Errorf("biller %s: %w", billerID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get biller: %w", err)
	}
	return b, nil
}

func (r *queries) ListBillers(ctx context.Context, ownerID string) ([]models.Biller, error) {
	rows, err := r.q.Query(ctx,
		"SELECT "+billerColumns+" FROM billers WHERE owner_id = $1 ORDER BY name, created_at",
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

const billSelect = `SELECT b.id, b.owner_id, b.biller_id, b.amount::text, b.balance_amount::text, b.due_date,
       b.period_month, b.period_year, b.status, b.notes, b.created_at,
       bl.id, bl.owner_id, bl.name, bl.category, bl.account, bl.notes, bl.created_at
FROM bills b
JOIN billers bl ON bl.id = b.biller_id`

func scanBill(row pgx.Row) (*models.Bill, error) {
	b := &models.Bill{Biller: &models.Biller{}}
	var (
		amount, balance  moneyText
		status, category string
		month, year      *int32
	)
	err := row.Scan(&b.ID, &b.OwnerID, &b.BillerID, &amount, &balance, &b.DueDate,
		&month, &year, &status, &b.Notes, &b.CreatedAt,
		&b.Biller.ID, &b.Biller.OwnerID, &b.Biller.Name, &category, &b.Biller.Account, &b.Biller.Notes, &b.Biller.CreatedAt)
	if err != nil {
		return nil, err
	}
	if b.Amount, err = amount.parse(); err != nil {
		return nil, err
	}
	if b.Balance, err = balance.parse(); err != nil {
		return nil, err
	}
	if month != nil {
		b.PeriodMonth = int(*month)
	}
	if year != nil {
		b.PeriodYear = int(*year)
	}
	b.Status = models.BillStatus(status)
	b.Biller.Category = models.Category(category)
	return b, nil
}

func (r *queries) listBills(ctx context.Context, where string, args ...any) ([]models.Bill, error) {
	rows, err := r.q.Query(ctx,
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

func (r *queries) getBill(ctx context.Context, suffix, ownerID, billID string) (*models.Bill, error) {
	b, err := scanBill(r.q.QueryRow(ctx, billSelect+" WHERE b.id = $1 AND b.owner_id = $2"+suffix, billID, ownerID))
	if isNoRows(err) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return b, nil
}

func (r *queries) GetBill(ctx context.Context, ownerID, billID string) (*models.Bill, error) {
	return r.getBill(ctx, "", ownerID, billID)
}

func (r *queries) ListBills(ctx context.Context, ownerID string) ([]models.Bill, error) {
	return r.listBills(ctx, "b.owner_id = $1", ownerID)
}

func (r *queries) ListUnpaidBills(ctx context.Context, ownerID string) ([]models.Bill, error) {
	return r.listBills(ctx, "b.owner_id = $1 AND b.status <> $2", ownerID, string(models.StatusPaid))
}

const paymentSelect = `SELECT p.id, p.owner_id, p.bill_id, p.amount::text, p.paid_on, p.method, p.reference,
       p.notes, p.status, p.created_at, bl.name
FROM payments p
JOIN bills b ON b.id = p.bill_id
JOIN billers bl ON bl.id = b.biller_id`

func (r *queries) listPayments(ctx context.Context, where string, args ...any) ([]models.Payment, error) {
	rows, err := r.q.Query(ctx,
		paymentSelect+" WHERE "+where+" ORDER BY p.paid_on DESC, p.created_at DESC, p.id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var (
			p      models.Payment
			amount moneyText
		)
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.BillID, &amount, &p.PaidOn, &p.Method, &p.Reference,
			&p.Notes, &p.Status, &p.CreatedAt, &p.BillerName); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if p.Amount, err = amount.parse(); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

func (r *queries) ListPayments(ctx context.Context, ownerID string) ([]models.Payment, error) {
	return r.listPayments(ctx, "p.owner_id = $1", ownerID)
}

// SumPayments uses NUMERIC arithmetic, which is exact.
func (r *queries) SumPayments(ctx context.Context, ownerID, billID string) (money.Money, error) {
	var total moneyText
	err := r.q.QueryRow(ctx,
		"SELECT COALESCE(SUM(amount), 0)::numeric(12,2)::text FROM payments WHERE owner_id = $1 AND bill_id = $2",
		ownerID, billID,
	).Scan(&total)
	if err != nil {
		return money.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total.parse()
}

func (r *queries) ListPaymentHistory(ctx context.Context, ownerID string) ([]models.PaymentHistory, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, owner_id, bill_id, biller_name, amount::text, balance_amount::text, due_date, paid_on,
		        status, method, reference, transaction_at
		 FROM payment_history WHERE owner_id = $1 ORDER BY transaction_at DESC`,
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
			amount, balance moneyText
			status          string
		)
		if err := rows.Scan(&h.ID, &h.OwnerID, &h.BillID, &h.BillerName, &amount, &balance,
			&h.DueDate, &h.PaidOn, &status, &h.Method, &h.Reference, &h.TransactionAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment history: %w", err)
		}
		if h.Amount, err = amount.parse(); err != nil {
			return nil, err
		}
		if h.Balance, err = balance.parse(); err != nil {
			return nil, err
		}
		h.Status = models.BillStatus(status)
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment history: %w", err)
	}
	return history, nil
}

func (r *queries) ListOwners(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, "SELECT DISTINCT owner_id FROM bills ORDER BY owner_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	owners, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect owners: %w", err)
	}
	return owners, nil
}

// nullInt stores 0 as NULL.
func nullInt(v int) *int32 {
	if v == 0 {
		return nil
	}
	n := int32(v)
	return &n
}
