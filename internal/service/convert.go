package service

import (
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/reconcile"
	"github.com/mmynk/billwise/pkg/api"
)

func billerToAPI(b *models.Biller) *api.Biller {
	if b == nil {
		return nil
	}
	return &api.Biller{
		ID:        b.ID,
		Name:      b.Name,
		Category:  string(b.Category),
		Account:   b.Account,
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
	}
}

func billToAPI(b *models.Bill) *api.Bill {
	return &api.Bill{
		ID:          b.ID,
		BillerID:    b.BillerID,
		Biller:      billerToAPI(b.Biller),
		Amount:      b.Amount,
		Balance:     b.Balance,
		DueDate:     models.FormatDate(b.DueDate),
		PeriodMonth: b.PeriodMonth,
		PeriodYear:  b.PeriodYear,
		Status:      string(b.Status),
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
	}
}

func billsToAPI(bills []models.Bill) []*api.Bill {
	out := make([]*api.Bill, len(bills))
	for i := range bills {
		out[i] = billToAPI(&bills[i])
	}
	return out
}

func paymentToAPI(p *models.Payment) *api.Payment {
	return &api.Payment{
		ID:         p.ID,
		BillID:     p.BillID,
		BillerName: p.BillerName,
		Amount:     p.Amount,
		PaidOn:     models.FormatDate(p.PaidOn),
		Method:     p.Method,
		Reference:  p.Reference,
		Notes:      p.Notes,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
}

func historyToAPI(h *models.PaymentHistory) *api.PaymentHistory {
	return &api.PaymentHistory{
		ID:            h.ID,
		BillID:        h.BillID,
		BillerName:    h.BillerName,
		Amount:        h.Amount,
		Balance:       h.Balance,
		DueDate:       models.FormatDate(h.DueDate),
		PaidOn:        models.FormatDate(h.PaidOn),
		Status:        string(h.Status),
		Method:        h.Method,
		Reference:     h.Reference,
		TransactionAt: h.TransactionAt,
	}
}

func outstandingToAPI(o reconcile.BillerOutstanding) *api.BillerOutstanding {
	return &api.BillerOutstanding{
		BillerID:   o.BillerID,
		BillerName: o.BillerName,
		Amount:     o.Amount,
		Bills:      o.Bills,
	}
}
