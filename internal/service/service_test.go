package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billwise/internal/auth"
	"github.com/mmynk/billwise/internal/ledger"
	"github.com/mmynk/billwise/internal/middleware"
	"github.com/mmynk/billwise/internal/money"
	"github.com/mmynk/billwise/internal/storage/sqlite"
	"github.com/mmynk/billwise/pkg/api"
)

type testServer struct {
	url        string
	jwtManager *auth.JWTManager
	srv        *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	l := ledger.New(store, ledger.WithClock(clock))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	r := chi.NewRouter()
	Register(r, l, connect.WithInterceptors(middleware.RequireAuth(jwtManager)))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{url: srv.URL, jwtManager: jwtManager, srv: srv}
}

func (s *testServer) client(t *testing.T, ownerID string) *api.Client {
	t.Helper()
	token, err := s.jwtManager.Generate(ownerID)
	require.NoError(t, err)
	return api.NewClient(s.srv.Client(), s.url, api.WithBearerToken(token))
}

func addBill(t *testing.T, c *api.Client, amount string) *api.Bill {
	t.Helper()
	ctx := context.Background()
	biller, err := c.AddBiller(ctx, connect.NewRequest(&api.AddBillerRequest{Name: "Meralco", Category: "Utility"}))
	require.NoError(t, err)

	bill, err := c.AddBill(ctx, connect.NewRequest(&api.AddBillRequest{
		BillerID: biller.Msg.Biller.ID,
		Amount:   money.MustParse(amount),
		DueDate:  "2026-03-15",
	}))
	require.NoError(t, err)
	return bill.Msg.Bill
}

func TestPaymentFlow(t *testing.T) {
	s := newTestServer(t)
	c := s.client(t, "alice")
	ctx := context.Background()

	bill := addBill(t, c, "100")
	assert.Equal(t, "unpaid", bill.Status)
	assert.Equal(t, "100.00", bill.Balance.String())
	assert.Equal(t, "Meralco", bill.Biller.Name)

	payment, err := c.AddPayment(ctx, connect.NewRequest(&api.AddPaymentRequest{
		BillID: bill.ID,
		Amount: money.MustParse("40"),
		Method: "GCash",
	}))
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", payment.Msg.Payment.PaidOn, "defaults to today")

	got, err := c.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{ID: bill.ID}))
	require.NoError(t, err)
	assert.Equal(t, "partial", got.Msg.Bill.Status)
	assert.Equal(t, "60.00", got.Msg.Bill.Balance.String())

	_, err = c.AddPayment(ctx, connect.NewRequest(&api.AddPaymentRequest{
		BillID: bill.ID,
		Amount: money.MustParse("60"),
		PaidOn: "2026-03-11",
	}))
	require.NoError(t, err)

	unpaid, err := c.ListUnpaidBills(ctx, connect.NewRequest(&api.ListBillsRequest{}))
	require.NoError(t, err)
	assert.Empty(t, unpaid.Msg.Bills)

	history, err := c.ListPaymentHistory(ctx, connect.NewRequest(&api.ListPaymentHistoryRequest{}))
	require.NoError(t, err)
	require.Len(t, history.Msg.History, 2)
	assert.Equal(t, "paid", history.Msg.History[0].Status)
	assert.Equal(t, "0.00", history.Msg.History[0].Balance.String())
	assert.Equal(t, "partial", history.Msg.History[1].Status)

	dash, err := c.GetDashboard(ctx, connect.NewRequest(&api.GetDashboardRequest{}))
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Msg.BillerCount)
	assert.Equal(t, 0, dash.Msg.PendingBills)
	assert.Equal(t, "100.00", dash.Msg.TotalPaid.String())
	assert.True(t, dash.Msg.OutstandingTotal.IsZero())
}

func TestErrorCodes(t *testing.T) {
	s := newTestServer(t)
	c := s.client(t, "alice")
	ctx := context.Background()
	bill := addBill(t, c, "50")

	t.Run("missing token", func(t *testing.T) {
		anon := api.NewClient(s.srv.Client(), s.url)
		_, err := anon.ListBills(ctx, connect.NewRequest(&api.ListBillsRequest{}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("unknown bill", func(t *testing.T) {
		_, err := c.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{ID: "does-not-exist"}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})

	t.Run("other owner's bill", func(t *testing.T) {
		mallory := s.client(t, "mallory")
		_, err := mallory.AddPayment(ctx, connect.NewRequest(&api.AddPaymentRequest{
			BillID: bill.ID,
			Amount: money.MustParse("50"),
		}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := c.AddBill(ctx, connect.NewRequest(&api.AddBillRequest{
			BillerID: bill.BillerID,
			Amount:   money.MustParse("10"),
			DueDate:  "03/15/2026",
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("exponent amount", func(t *testing.T) {
		token, err := s.jwtManager.Generate("alice")
		require.NoError(t, err)

		for _, amount := range []string{`"1e1000000000"`, `"1e400"`, `"12345678901.00"`} {
			body := `{"bill_id":"` + bill.ID + `","amount":` + amount + `}`
			req, err := http.NewRequest(http.MethodPost, s.url+api.AddPaymentProcedure, strings.NewReader(body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := s.srv.Client().Do(req)
			require.NoError(t, err)
			raw, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, amount)
			assert.Contains(t, string(raw), "invalid_argument", amount)
		}

		payments, err := c.ListPayments(ctx, connect.NewRequest(&api.ListPaymentsRequest{}))
		require.NoError(t, err)
		assert.Empty(t, payments.Msg.Payments)
	})

	t.Run("non-positive payment", func(t *testing.T) {
		_, err := c.AddPayment(ctx, connect.NewRequest(&api.AddPaymentRequest{BillID: bill.ID, Amount: money.Zero}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

		total, err := c.GetOutstandingTotal(ctx, connect.NewRequest(&api.GetOutstandingTotalRequest{}))
		require.NoError(t, err)
		assert.Equal(t, "50.00", total.Msg.OutstandingTotal.String())
	})
}

func TestDeleteBillerCascades(t *testing.T) {
	s := newTestServer(t)
	c := s.client(t, "alice")
	ctx := context.Background()
	bill := addBill(t, c, "80")

	_, err := c.AddPayment(ctx, connect.NewRequest(&api.AddPaymentRequest{BillID: bill.ID, Amount: money.MustParse("80")}))
	require.NoError(t, err)

	_, err = c.DeleteBiller(ctx, connect.NewRequest(&api.DeleteBillerRequest{ID: bill.BillerID}))
	require.NoError(t, err)

	bills, err := c.ListBills(ctx, connect.NewRequest(&api.ListBillsRequest{}))
	require.NoError(t, err)
	assert.Empty(t, bills.Msg.Bills)

	payments, err := c.ListPayments(ctx, connect.NewRequest(&api.ListPaymentsRequest{}))
	require.NoError(t, err)
	assert.Empty(t, payments.Msg.Payments)

	history, err := c.ListPaymentHistory(ctx, connect.NewRequest(&api.ListPaymentHistoryRequest{}))
	require.NoError(t, err)
	require.Len(t, history.Msg.History, 1)
	assert.Equal(t, "Meralco", history.Msg.History[0].BillerName)
}

func TestUpdateBillRebalances(t *testing.T) {
	s := newTestServer(t)
	c := s.client(t, "alice")
	ctx := context.Background()
	bill := addBill(t, c, "100")

	_, err := c.AddPayment(ctx, connect.NewRequest(&api.AddPaymentRequest{BillID: bill.ID, Amount: money.MustParse("30")}))
	require.NoError(t, err)

	updated, err := c.UpdateBill(ctx, connect.NewRequest(&api.UpdateBillRequest{
		ID: bill.ID,
		AddBillRequest: api.AddBillRequest{
			BillerID: bill.BillerID,
			Amount:   money.MustParse("120"),
			DueDate:  "2026-03-20",
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, "90.00", updated.Msg.Bill.Balance.String())
	assert.Equal(t, "2026-03-20", updated.Msg.Bill.DueDate)
}
