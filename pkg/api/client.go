package api

import (
	"context"

	"connectrpc.com/connect"
)

// Client calls every billwise procedure.
type Client struct {
	addBiller          *connect.Client[AddBillerRequest, AddBillerResponse]
	listBillers        *connect.Client[ListBillersRequest, ListBillersResponse]
	updateBiller       *connect.Client[UpdateBillerRequest, UpdateBillerResponse]
	deleteBiller       *connect.Client[DeleteBillerRequest, DeleteBillerResponse]
	addBill            *connect.Client[AddBillRequest, AddBillResponse]
	getBill            *connect.Client[GetBillRequest, GetBillResponse]
	listBills          *connect.Client[ListBillsRequest, ListBillsResponse]
	listUnpaidBills    *connect.Client[ListBillsRequest, ListBillsResponse]
	updateBill         *connect.Client[UpdateBillRequest, UpdateBillResponse]
	deleteBill         *connect.Client[DeleteBillRequest, DeleteBillResponse]
	addPayment         *connect.Client[AddPaymentRequest, AddPaymentResponse]
	listPayments       *connect.Client[ListPaymentsRequest, ListPaymentsResponse]
	listPaymentHistory *connect.Client[ListPaymentHistoryRequest, ListPaymentHistoryResponse]
	getDashboard       *connect.Client[GetDashboardRequest, GetDashboardResponse]
	getOutstanding     *connect.Client[GetOutstandingTotalRequest, GetOutstandingTotalResponse]
}

// NewClient builds a Client for the server at baseURL, e.g. "http://localhost:8080".
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	opts = append([]connect.ClientOption{WithCodec()}, opts...)
	return &Client{
		addBiller:          connect.NewClient[AddBillerRequest, AddBillerResponse](httpClient, baseURL+AddBillerProcedure, opts...),
		listBillers:        connect.NewClient[ListBillersRequest, ListBillersResponse](httpClient, baseURL+ListBillersProcedure, opts...),
		updateBiller:       connect.NewClient[UpdateBillerRequest, UpdateBillerResponse](httpClient, baseURL+UpdateBillerProcedure, opts...),
		deleteBiller:       connect.NewClient[DeleteBillerRequest, DeleteBillerResponse](httpClient, baseURL+DeleteBillerProcedure, opts...),
		addBill:            connect.NewClient[AddBillRequest, AddBillResponse](httpClient, baseURL+AddBillProcedure, opts...),
		getBill:            connect.NewClient[GetBillRequest, GetBillResponse](httpClient, baseURL+GetBillProcedure, opts...),
		listBills:          connect.NewClient[ListBillsRequest, ListBillsResponse](httpClient, baseURL+ListBillsProcedure, opts...),
		listUnpaidBills:    connect.NewClient[ListBillsRequest, ListBillsResponse](httpClient, baseURL+ListUnpaidBillsProcedure, opts...),
		updateBill:         connect.NewClient[UpdateBillRequest, UpdateBillResponse](httpClient, baseURL+UpdateBillProcedure, opts...),
		deleteBill:         connect.NewClient[DeleteBillRequest, DeleteBillResponse](httpClient, baseURL+DeleteBillProcedure, opts...),
		addPayment:         connect.NewClient[AddPaymentRequest, AddPaymentResponse](httpClient, baseURL+AddPaymentProcedure, opts...),
		listPayments:       connect.NewClient[ListPaymentsRequest, ListPaymentsResponse](httpClient, baseURL+ListPaymentsProcedure, opts...),
		listPaymentHistory: connect.NewClient[ListPaymentHistoryRequest, ListPaymentHistoryResponse](httpClient, baseURL+ListPaymentHistoryProcedure, opts...),
		getDashboard:       connect.NewClient[GetDashboardRequest, GetDashboardResponse](httpClient, baseURL+GetDashboardProcedure, opts...),
		getOutstanding:     connect.NewClient[GetOutstandingTotalRequest, GetOutstandingTotalResponse](httpClient, baseURL+GetOutstandingProcedure, opts...),
	}
}

// WithBearerToken returns a client option that sends token on every call.
func WithBearerToken(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}))
}

func (c *Client) AddBiller(ctx context.Context, req *connect.Request[AddBillerRequest]) (*connect.Response[AddBillerResponse], error) {
	return c.addBiller.CallUnary(ctx, req)
}

func (c *Client) ListBillers(ctx context.Context, req *connect.Request[ListBillersRequest]) (*connect.Response[ListBillersResponse], error) {
	return c.listBillers.CallUnary(ctx, req)
}

func (c *Client) UpdateBiller(ctx context.Context, req *connect.Request[UpdateBillerRequest]) (*connect.Response[UpdateBillerResponse], error) {
	return c.updateBiller.CallUnary(ctx, req)
}

func (c *Client) DeleteBiller(ctx context.Context, req *connect.Request[DeleteBillerRequest]) (*connect.Response[DeleteBillerResponse], error) {
	return c.deleteBiller.CallUnary(ctx, req)
}

func (c *Client) AddBill(ctx context.Context, req *connect.Request[AddBillRequest]) (*connect.Response[AddBillResponse], error) {
	return c.addBill.CallUnary(ctx, req)
}

func (c *Client) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *Client) ListBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *Client) ListUnpaidBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	return c.listUnpaidBills.CallUnary(ctx, req)
}

func (c *Client) UpdateBill(ctx context.Context, req *connect.Request[UpdateBillRequest]) (*connect.Response[UpdateBillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

func (c *Client) DeleteBill(ctx context.Context, req *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *Client) AddPayment(ctx context.Context, req *connect.Request[AddPaymentRequest]) (*connect.Response[AddPaymentResponse], error) {
	return c.addPayment.CallUnary(ctx, req)
}

func (c *Client) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *Client) ListPaymentHistory(ctx context.Context, req *connect.Request[ListPaymentHistoryRequest]) (*connect.Response[ListPaymentHistoryResponse], error) {
	return c.listPaymentHistory.CallUnary(ctx, req)
}

func (c *Client) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

func (c *Client) GetOutstandingTotal(ctx context.Context, req *connect.Request[GetOutstandingTotalRequest]) (*connect.Response[GetOutstandingTotalResponse], error) {
	return c.getOutstanding.CallUnary(ctx, req)
}
