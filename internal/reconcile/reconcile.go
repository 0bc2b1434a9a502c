// Package reconcile holds the arithmetic that keeps a bill consistent with
// the payments applied to it. Everything here is pure: callers load rows,
// call these functions, and persist the results inside one transaction.
package reconcile

import (
	"time"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/money"
)

// UnknownBiller is the biller name recorded in history when a bill has no biller attached.
const UnknownBiller = "Unknown"

// Result is the derived state of a bill after its payments are summed.
type Result struct {
	TotalPaid money.Money
	Balance   money.Money
	Status    models.BillStatus
}

// TotalPaid sums the amounts of payments.
func TotalPaid(payments []models.Payment) money.Money {
	total := money.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// DeriveStatus maps the total paid against amount onto a bill status:
// paid once totalPaid reaches amount, partial for anything in between, and
// current otherwise.
func DeriveStatus(amount, totalPaid money.Money, current models.BillStatus) models.BillStatus {
	switch {
	case totalPaid.Cmp(amount) >= 0:
		return models.StatusPaid
	case totalPaid.IsPositive():
		return models.StatusPartial
	default:
		return current
	}
}

// Reconcile computes the balance and status of bill given every payment
// recorded against it, including any just inserted.
func Reconcile(bill *models.Bill, payments []models.Payment) Result {
	return ReconcileTotal(bill, TotalPaid(payments))
}

// ReconcileTotal is Reconcile for callers that already summed the payments.
func ReconcileTotal(bill *models.Bill, totalPaid money.Money) Result {
	return Result{
		TotalPaid: totalPaid,
		Balance:   bill.Amount.Sub(totalPaid),
		Status:    DeriveStatus(bill.Amount, totalPaid, bill.Status),
	}
}

// Apply writes r into bill.
func (r Result) Apply(bill *models.Bill) {
	bill.Balance = r.Balance
	bill.Status = r.Status
}

// Rebalance recomputes the balance after an edit changed bill.Amount. The
// status is left alone unless override is non-empty.
func Rebalance(bill *models.Bill, totalPaid money.Money, override models.BillStatus) {
	bill.Balance = bill.Amount.Sub(totalPaid)
	if override != "" {
		bill.Status = override
	}
}

// Snapshot builds the history row for payment p applied to bill, which must
// already carry its reconciled balance and status.
func Snapshot(bill *models.Bill, p *models.Payment) *models.PaymentHistory {
	billerName := bill.BillerName()
	if billerName == "" {
		billerName = UnknownBiller
	}
	return &models.PaymentHistory{
		OwnerID:    bill.OwnerID,
		BillID:     bill.ID,
		BillerName: billerName,
		Amount:     p.Amount,
		Balance:    bill.Balance,
		DueDate:    bill.DueDate,
		PaidOn:     p.PaidOn,
		Status:     bill.Status,
		Method:     p.Method,
		Reference:  p.Reference,
	}
}

// NextTransactionAt returns a history timestamp strictly greater than last,
// preferring now when the clock is ahead.
func NextTransactionAt(now time.Time, last int64) int64 {
	ts := now.UnixMicro()
	if ts <= last {
		return last + 1
	}
	return ts
}
