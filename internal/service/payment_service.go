package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billwise/internal/ledger"
	"github.com/mmynk/billwise/pkg/api"
)

// PaymentService implements the billwise.v1.PaymentService procedures.
type PaymentService struct {
	ledger *ledger.Ledger
}

func NewPaymentService(l *ledger.Ledger) *PaymentService {
	return &PaymentService{ledger: l}
}

// AddPayment applies a payment and reconciles the bill it targets.
func (s *PaymentService) AddPayment(ctx context.Context, req *connect.Request[api.AddPaymentRequest]) (*connect.Response[api.AddPaymentResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddPayment request received", "owner_id", ownerID, "bill_id", req.Msg.BillID, "amount", req.Msg.Amount)

	paidOn, err := parseDate("paid_on", req.Msg.PaidOn)
	if err != nil {
		return nil, err
	}
	payment, err := s.ledger.AddPayment(ctx, ownerID, ledger.PaymentInput{
		BillID:    req.Msg.BillID,
		Amount:    req.Msg.Amount,
		PaidOn:    paidOn,
		Method:    req.Msg.Method,
		Reference: req.Msg.Reference,
		Notes:     req.Msg.Notes,
		Status:    req.Msg.Status,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddPaymentResponse{Payment: paymentToAPI(payment)}), nil
}

func (s *PaymentService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}

	payments, err := s.ledger.ListPayments(ctx, ownerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*api.Payment, len(payments))
	for i := range payments {
		out[i] = paymentToAPI(&payments[i])
	}
	return connect.NewResponse(&api.ListPaymentsResponse{Payments: out}), nil
}

// ListPaymentHistory returns every history snapshot, newest first. Snapshots
// survive deletion of the bill they describe.
func (s *PaymentService) ListPaymentHistory(ctx context.Context, req *connect.Request[api.ListPaymentHistoryRequest]) (*connect.Response[api.ListPaymentHistoryResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.ledger.ListPaymentHistory(ctx, ownerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*api.PaymentHistory, len(history))
	for i := range history {
		out[i] = historyToAPI(&history[i])
	}
	return connect.NewResponse(&api.ListPaymentHistoryResponse{History: out}), nil
}
