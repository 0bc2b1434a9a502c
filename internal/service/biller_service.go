package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billwise/internal/ledger"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/pkg/api"
)

// BillerService implements the billwise.v1.BillerService procedures.
type BillerService struct {
	ledger *ledger.Ledger
}

func NewBillerService(l *ledger.Ledger) *BillerService {
	return &BillerService{ledger: l}
}

func billerInput(req *api.AddBillerRequest) ledger.BillerInput {
	return ledger.BillerInput{
		Name:     req.Name,
		Category: models.Category(req.Category),
		Account:  req.Account,
		Notes:    req.Notes,
	}
}

func (s *BillerService) AddBiller(ctx context.Context, req *connect.Request[api.AddBillerRequest]) (*connect.Response[api.AddBillerResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddBiller request received", "owner_id", ownerID, "name", req.Msg.Name)

	biller, err := s.ledger.AddBiller(ctx, ownerID, billerInput(req.Msg))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddBillerResponse{Biller: billerToAPI(biller)}), nil
}

func (s *BillerService) ListBillers(ctx context.Context, req *connect.Request[api.ListBillersRequest]) (*connect.Response[api.ListBillersResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}

	billers, err := s.ledger.ListBillers(ctx, ownerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*api.Biller, len(billers))
	for i := range billers {
		out[i] = billerToAPI(&billers[i])
	}
	return connect.NewResponse(&api.ListBillersResponse{Billers: out}), nil
}

func (s *BillerService) UpdateBiller(ctx context.Context, req *connect.Request[api.UpdateBillerRequest]) (*connect.Response[api.UpdateBillerResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateBiller request received", "owner_id", ownerID, "biller_id", req.Msg.ID)

	biller, err := s.ledger.UpdateBiller(ctx, ownerID, req.Msg.ID, billerInput(&req.Msg.AddBillerRequest))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateBillerResponse{Biller: billerToAPI(biller)}), nil
}

func (s *BillerService) DeleteBiller(ctx context.Context, req *connect.Request[api.DeleteBillerRequest]) (*connect.Response[api.DeleteBillerResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteBiller request received", "owner_id", ownerID, "biller_id", req.Msg.ID)

	if err := s.ledger.DeleteBiller(ctx, ownerID, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteBillerResponse{}), nil
}
