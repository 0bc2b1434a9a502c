// Package api defines the billwise RPC surface: procedure names, request and
// response messages, and a typed client. Messages are plain JSON structs;
// amounts are decimal strings and dates are YYYY-MM-DD.
package api

import (
	"github.com/mmynk/billwise/internal/money"
)

const (
	BillerServiceName    = "billwise.v1.BillerService"
	BillServiceName      = "billwise.v1.BillService"
	PaymentServiceName   = "billwise.v1.PaymentService"
	DashboardServiceName = "billwise.v1.DashboardService"
)

const (
	AddBillerProcedure          = "/" + BillerServiceName + "/AddBiller"
	ListBillersProcedure        = "/" + BillerServiceName + "/ListBillers"
	UpdateBillerProcedure       = "/" + BillerServiceName + "/UpdateBiller"
	DeleteBillerProcedure       = "/" + BillerServiceName + "/DeleteBiller"
	AddBillProcedure            = "/" + BillServiceName + "/AddBill"
	GetBillProcedure            = "/" + BillServiceName + "/GetBill"
	ListBillsProcedure          = "/" + BillServiceName + "/ListBills"
	ListUnpaidBillsProcedure    = "/" + BillServiceName + "/ListUnpaidBills"
	UpdateBillProcedure         = "/" + BillServiceName + "/UpdateBill"
	DeleteBillProcedure         = "/" + BillServiceName + "/DeleteBill"
	AddPaymentProcedure         = "/" + PaymentServiceName + "/AddPayment"
	ListPaymentsProcedure       = "/" + PaymentServiceName + "/ListPayments"
	ListPaymentHistoryProcedure = "/" + PaymentServiceName + "/ListPaymentHistory"
	GetDashboardProcedure       = "/" + DashboardServiceName + "/GetDashboard"
	GetOutstandingProcedure     = "/" + DashboardServiceName + "/GetOutstandingTotal"
)

// Biller is the wire form of a biller.
type Biller struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	Account   string `json:"account,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// Bill is the wire form of a bill, with its biller attached.
type Bill struct {
	ID          string      `json:"id"`
	BillerID    string      `json:"biller_id"`
	Biller      *Biller     `json:"biller,omitempty"`
	Amount      money.Money `json:"amount"`
	Balance     money.Money `json:"balance_amount"`
	DueDate     string      `json:"due_date"`
	PeriodMonth int         `json:"period_month,omitempty"`
	PeriodYear  int         `json:"period_year,omitempty"`
	Status      string      `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   int64       `json:"created_at"`
}

type Payment struct {
	ID         string      `json:"id"`
	BillID     string      `json:"bill_id"`
	BillerName string      `json:"biller_name,omitempty"`
	Amount     money.Money `json:"amount"`
	PaidOn     string      `json:"paid_on"`
	Method     string      `json:"method,omitempty"`
	Reference  string      `json:"reference,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	Status     string      `json:"status,omitempty"`
	CreatedAt  int64       `json:"created_at"`
}

type PaymentHistory struct {
	ID            string      `json:"id"`
	BillID        string      `json:"bill_id"`
	BillerName    string      `json:"biller_name"`
	Amount        money.Money `json:"amount"`
	Balance       money.Money `json:"balance_amount"`
	DueDate       string      `json:"due_date"`
	PaidOn        string      `json:"paid_on"`
	Status        string      `json:"status"`
	Method        string      `json:"method,omitempty"`
	Reference     string      `json:"reference,omitempty"`
	TransactionAt int64       `json:"transaction_timestamp"`
}

type BillerOutstanding struct {
	BillerID   string      `json:"biller_id"`
	BillerName string      `json:"biller_name"`
	Amount     money.Money `json:"amount"`
	Bills      int         `json:"bills"`
}

// Billers

type AddBillerRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Account  string `json:"account,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type AddBillerResponse struct {
	Biller *Biller `json:"biller"`
}

type ListBillersRequest struct{}

type ListBillersResponse struct {
	Billers []*Biller `json:"billers"`
}

type UpdateBillerRequest struct {
	ID string `json:"id"`
	AddBillerRequest
}

type UpdateBillerResponse struct {
	Biller *Biller `json:"biller"`
}

type DeleteBillerRequest struct {
	ID string `json:"id"`
}

type DeleteBillerResponse struct{}

// Bills

type AddBillRequest struct {
	BillerID    string      `json:"biller_id"`
	Amount      money.Money `json:"amount"`
	DueDate     string      `json:"due_date"`
	PeriodMonth int         `json:"period_month,omitempty"`
	PeriodYear  int         `json:"period_year,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

type AddBillResponse struct {
	Bill *Bill `json:"bill"`
}

type GetBillRequest struct {
	ID string `json:"id"`
}

type GetBillResponse struct {
	Bill *Bill `json:"bill"`
}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []*Bill `json:"bills"`
}

// UpdateBillRequest edits a bill. An empty Status keeps the stored status.
type UpdateBillRequest struct {
	ID string `json:"id"`
	AddBillRequest
	Status string `json:"status,omitempty"`
}

type UpdateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type DeleteBillRequest struct {
	ID string `json:"id"`
}

type DeleteBillResponse struct{}

// Payments

// AddPaymentRequest applies a payment. An empty PaidOn means today; Status
// is a free-text label stored as given.
type AddPaymentRequest struct {
	BillID    string      `json:"bill_id"`
	Amount    money.Money `json:"amount"`
	PaidOn    string      `json:"paid_on,omitempty"`
	Method    string      `json:"method,omitempty"`
	Reference string      `json:"reference,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	Status    string      `json:"status,omitempty"`
}

type AddPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsRequest struct{}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type ListPaymentHistoryRequest struct{}

type ListPaymentHistoryResponse struct {
	History []*PaymentHistory `json:"history"`
}

// Dashboard

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	BillerCount         int                  `json:"biller_count"`
	PendingBills        int                  `json:"pending_bills"`
	OutstandingTotal    money.Money          `json:"outstanding_total"`
	TotalPaid           money.Money          `json:"total_paid"`
	OutstandingByBiller []*BillerOutstanding `json:"outstanding_by_biller"`
}

type GetOutstandingTotalRequest struct{}

type GetOutstandingTotalResponse struct {
	OutstandingTotal money.Money `json:"outstanding_total"`
}
