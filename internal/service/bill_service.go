package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billwise/internal/ledger"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/pkg/api"
)

// BillService implements the billwise.v1.BillService procedures.
type BillService struct {
	ledger *ledger.Ledger
}

func NewBillService(l *ledger.Ledger) *BillService {
	return &BillService{ledger: l}
}

func billInput(req *api.AddBillRequest) (ledger.BillInput, error) {
	due, err := parseDate("due_date", req.DueDate)
	if err != nil {
		return ledger.BillInput{}, err
	}
	return ledger.BillInput{
		BillerID:    req.BillerID,
		Amount:      req.Amount,
		DueDate:     due,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		Notes:       req.Notes,
	}, nil
}

func (s *BillService) AddBill(ctx context.Context, req *connect.Request[api.AddBillRequest]) (*connect.Response[api.AddBillResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddBill request received", "owner_id", ownerID, "biller_id", req.Msg.BillerID, "amount", req.Msg.Amount)

	in, err := billInput(req.Msg)
	if err != nil {
		return nil, err
	}
	bill, err := s.ledger.AddBill(ctx, ownerID, in)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddBillResponse{Bill: billToAPI(bill)}), nil
}

func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.ledger.GetBill(ctx, ownerID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: billToAPI(bill)}), nil
}

func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.ledger.ListBills(ctx, ownerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: billsToAPI(bills)}), nil
}

// ListUnpaidBills returns bills that are not fully paid, earliest due first.
func (s *BillService) ListUnpaidBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.ledger.ListUnpaidBills(ctx, ownerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: billsToAPI(bills)}), nil
}

func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateBill request received", "owner_id", ownerID, "bill_id", req.Msg.ID)

	in, err := billInput(&req.Msg.AddBillRequest)
	if err != nil {
		return nil, err
	}
	bill, err := s.ledger.UpdateBill(ctx, ownerID, req.Msg.ID, ledger.BillUpdate{
		BillInput: in,
		Status:    models.BillStatus(req.Msg.Status),
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateBillResponse{Bill: billToAPI(bill)}), nil
}

func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteBill request received", "owner_id", ownerID, "bill_id", req.Msg.ID)

	if err := s.ledger.DeleteBill(ctx, ownerID, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}
