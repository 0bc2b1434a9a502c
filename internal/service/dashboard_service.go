package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/billwise/internal/ledger"
	"github.com/mmynk/billwise/pkg/api"
)

// DashboardService implements the billwise.v1.DashboardService procedures.
type DashboardService struct {
	ledger *ledger.Ledger
}

func NewDashboardService(l *ledger.Ledger) *DashboardService {
	return &DashboardService{ledger: l}
}

func (s *DashboardService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}

	d, err := s.ledger.Dashboard(ctx, ownerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	byBiller := make([]*api.BillerOutstanding, len(d.OutstandingByBiller))
	for i, o := range d.OutstandingByBiller {
		byBiller[i] = outstandingToAPI(o)
	}
	return connect.NewResponse(&api.GetDashboardResponse{
		BillerCount:         d.BillerCount,
		PendingBills:        d.PendingBills,
		OutstandingTotal:    d.OutstandingTotal,
		TotalPaid:           d.TotalPaid,
		OutstandingByBiller: byBiller,
	}), nil
}

func (s *DashboardService) GetOutstandingTotal(ctx context.Context, req *connect.Request[api.GetOutstandingTotalRequest]) (*connect.Response[api.GetOutstandingTotalResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.ledger.OutstandingTotal(ctx, ownerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetOutstandingTotalResponse{OutstandingTotal: total}), nil
}
