// Package service exposes the ledger over Connect RPC.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"

	"github.com/mmynk/billwise/internal/ledger"
	"github.com/mmynk/billwise/internal/middleware"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/pkg/api"
)

// Register mounts every billwise procedure on r. opts are applied to each
// handler in addition to the JSON codec.
func Register(r chi.Router, l *ledger.Ledger, opts ...connect.HandlerOption) {
	opts = append([]connect.HandlerOption{api.WithCodec()}, opts...)
	handle := func(procedure string, h http.Handler) {
		r.Handle(procedure, h)
	}

	billers := NewBillerService(l)
	handle(api.AddBillerProcedure, connect.NewUnaryHandler(api.AddBillerProcedure, billers.AddBiller, opts...))
	handle(api.ListBillersProcedure, connect.NewUnaryHandler(api.ListBillersProcedure, billers.ListBillers, opts...))
	handle(api.UpdateBillerProcedure, connect.NewUnaryHandler(api.UpdateBillerProcedure, billers.UpdateBiller, opts...))
	handle(api.DeleteBillerProcedure, connect.NewUnaryHandler(api.DeleteBillerProcedure, billers.DeleteBiller, opts...))

	bills := NewBillService(l)
	handle(api.AddBillProcedure, connect.NewUnaryHandler(api.AddBillProcedure, bills.AddBill, opts...))
	handle(api.GetBillProcedure, connect.NewUnaryHandler(api.GetBillProcedure, bills.GetBill, opts...))
	handle(api.ListBillsProcedure, connect.NewUnaryHandler(api.ListBillsProcedure, bills.ListBills, opts...))
	handle(api.ListUnpaidBillsProcedure, connect.NewUnaryHandler(api.ListUnpaidBillsProcedure, bills.ListUnpaidBills, opts...))
	handle(api.UpdateBillProcedure, connect.NewUnaryHandler(api.UpdateBillProcedure, bills.UpdateBill, opts...))
	handle(api.DeleteBillProcedure, connect.NewUnaryHandler(api.DeleteBillProcedure, bills.DeleteBill, opts...))

	payments := NewPaymentService(l)
	handle(api.AddPaymentProcedure, connect.NewUnaryHandler(api.AddPaymentProcedure, payments.AddPayment, opts...))
	handle(api.ListPaymentsProcedure, connect.NewUnaryHandler(api.ListPaymentsProcedure, payments.ListPayments, opts...))
	handle(api.ListPaymentHistoryProcedure, connect.NewUnaryHandler(api.ListPaymentHistoryProcedure, payments.ListPaymentHistory, opts...))

	dashboard := NewDashboardService(l)
	handle(api.GetDashboardProcedure, connect.NewUnaryHandler(api.GetDashboardProcedure, dashboard.GetDashboard, opts...))
	handle(api.GetOutstandingProcedure, connect.NewUnaryHandler(api.GetOutstandingProcedure, dashboard.GetOutstandingTotal, opts...))
}

// requireOwner returns the authenticated owner or an Unauthenticated error.
func requireOwner(ctx context.Context) (string, error) {
	ownerID := middleware.GetOwnerID(ctx)
	if ownerID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}
	return ownerID, nil
}

// toConnectError maps ledger error kinds onto Connect codes. Storage details
// are not sent to the client.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, ledger.ErrNotFound)
	case errors.Is(err, ledger.ErrConflict):
		return connect.NewError(connect.CodeAborted, ledger.ErrConflict)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}
}

// parseDate parses a YYYY-MM-DD field. An empty value yields the zero time.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, connect.NewError(connect.CodeInvalidArgument,
			&ledger.ValidationError{Field: field, Reason: "must be a YYYY-MM-DD date"})
	}
	return d, nil
}
