package ledger

import (
	"context"

	"github.com/mmynk/billwise/internal/money"
	"github.com/mmynk/billwise/internal/reconcile"
)

// Dashboard summarizes an owner's ledger.
type Dashboard struct {
	BillerCount         int
	PendingBills        int
	OutstandingTotal    money.Money
	TotalPaid           money.Money
	OutstandingByBiller []reconcile.BillerOutstanding
}

// OutstandingTotal sums the balances of every bill that is not paid. It is
// recomputed from the stored bills on each call.
func (l *Ledger) OutstandingTotal(ctx context.Context, owner string) (money.Money, error) {
	bills, err := l.store.ListUnpaidBills(ctx, owner)
	if err != nil {
		return money.Zero, l.translate("outstanding total", err)
	}
	return reconcile.OutstandingTotal(bills), nil
}

// Dashboard computes the summary shown on the home screen.
func (l *Ledger) Dashboard(ctx context.Context, owner string) (*Dashboard, error) {
	billers, err := l.store.ListBillers(ctx, owner)
	if err != nil {
		return nil, l.translate("dashboard", err)
	}
	bills, err := l.store.ListBills(ctx, owner)
	if err != nil {
		return nil, l.translate("dashboard", err)
	}
	payments, err := l.store.ListPayments(ctx, owner)
	if err != nil {
		return nil, l.translate("dashboard", err)
	}

	return &Dashboard{
		BillerCount:         len(billers),
		PendingBills:        reconcile.PendingCount(bills),
		OutstandingTotal:    reconcile.OutstandingTotal(bills),
		TotalPaid:           reconcile.TotalPaid(payments),
		OutstandingByBiller: reconcile.OutstandingByBiller(bills),
	}, nil
}
