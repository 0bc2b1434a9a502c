// Package statement renders an owner's payment history as a downloadable
// CSV or PDF statement.
package statement

import (
	"time"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/money"
)

// Statement is the payment history of one owner at a point in time.
type Statement struct {
	OwnerID     string
	GeneratedAt time.Time
	Entries     []models.PaymentHistory
	TotalPaid   money.Money
}

// New builds a statement from history, which is expected newest first.
func New(ownerID string, history []models.PaymentHistory, now time.Time) *Statement {
	total := money.Zero
	for _, h := range history {
		total = total.Add(h.Amount)
	}
	return &Statement{
		OwnerID:     ownerID,
		GeneratedAt: now.UTC(),
		Entries:     history,
		TotalPaid:   total,
	}
}
