package reconcile

import (
	"sort"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/money"
)

// BillerOutstanding is the unpaid balance owed to one biller.
type BillerOutstanding struct {
	BillerID   string
	BillerName string
	Amount     money.Money
	Bills      int
}

// Outstanding returns the amount still owed on bill. Paid bills owe nothing,
// even when overpaid.
func Outstanding(bill *models.Bill) money.Money {
	if bill.Status == models.StatusPaid {
		return money.Zero
	}
	return bill.Balance
}

// OutstandingTotal sums Outstanding over bills.
func OutstandingTotal(bills []models.Bill) money.Money {
	total := money.Zero
	for i := range bills {
		total = total.Add(Outstanding(&bills[i]))
	}
	return total
}

// PendingCount counts bills that are not paid.
func PendingCount(bills []models.Bill) int {
	n := 0
	for i := range bills {
		if bills[i].Status != models.StatusPaid {
			n++
		}
	}
	return n
}

// OutstandingByBiller groups the outstanding amount of non-paid bills by
// biller, largest amount first and then by name.
func OutstandingByBiller(bills []models.Bill) []BillerOutstanding {
	byBiller := make(map[string]*BillerOutstanding)
	for i := range bills {
		bill := &bills[i]
		if bill.Status == models.StatusPaid {
			continue
		}
		entry, exists := byBiller[bill.BillerID]
		if !exists {
			name := bill.BillerName()
			if name == "" {
				name = UnknownBiller
			}
			entry = &BillerOutstanding{BillerID: bill.BillerID, BillerName: name}
			byBiller[bill.BillerID] = entry
		}
		entry.Amount = entry.Amount.Add(Outstanding(bill))
		entry.Bills++
	}

	result := make([]BillerOutstanding, 0, len(byBiller))
	for _, entry := range byBiller {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Amount.Cmp(result[j].Amount); c != 0 {
			return c > 0
		}
		return result[i].BillerName < result[j].BillerName
	})
	return result
}
