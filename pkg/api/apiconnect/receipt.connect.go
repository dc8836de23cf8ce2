package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/pkg/api"
)

const (
	// ReceiptServiceName is the fully-qualified name of the ReceiptService service.
	ReceiptServiceName = "billsplit.v1.ReceiptService"

	ReceiptServiceCreateReceiptProcedure        = "/billsplit.v1.ReceiptService/CreateReceipt"
	ReceiptServiceGetReceiptProcedure           = "/billsplit.v1.ReceiptService/GetReceipt"
	ReceiptServiceUpdateReceiptProcedure        = "/billsplit.v1.ReceiptService/UpdateReceipt"
	ReceiptServiceDeleteReceiptProcedure        = "/billsplit.v1.ReceiptService/DeleteReceipt"
	ReceiptServiceListReceiptsProcedure         = "/billsplit.v1.ReceiptService/ListReceipts"
	ReceiptServiceCalculateAllocationsProcedure = "/billsplit.v1.ReceiptService/CalculateAllocations"
	ReceiptServicePreviewAllocationsProcedure   = "/billsplit.v1.ReceiptService/PreviewAllocations"
	ReceiptServiceRecordPaymentProcedure        = "/billsplit.v1.ReceiptService/RecordPayment"
	ReceiptServiceCalculateChangeProcedure      = "/billsplit.v1.ReceiptService/CalculateChange"
	ReceiptServiceListBalancesProcedure         = "/billsplit.v1.ReceiptService/ListBalances"
)

// ReceiptServiceHandler is implemented by the server.
type ReceiptServiceHandler interface {
	CreateReceipt(context.Context, *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
	UpdateReceipt(context.Context, *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error)
	DeleteReceipt(context.Context, *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error)
	CalculateAllocations(context.Context, *connect.Request[api.CalculateAllocationsRequest]) (*connect.Response[api.CalculateAllocationsResponse], error)
	PreviewAllocations(context.Context, *connect.Request[api.PreviewAllocationsRequest]) (*connect.Response[api.PreviewAllocationsResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	CalculateChange(context.Context, *connect.Request[api.CalculateChangeRequest]) (*connect.Response[api.CalculateChangeResponse], error)
	ListBalances(context.Context, *connect.Request[api.ListBalancesRequest]) (*connect.Response[api.ListBalancesResponse], error)
}

// NewReceiptServiceHandler builds an HTTP handler from the service implementation.
func NewReceiptServiceHandler(svc ReceiptServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ReceiptServiceName + "/", route(map[string]http.Handler{
		ReceiptServiceCreateReceiptProcedure:        connect.NewUnaryHandler(ReceiptServiceCreateReceiptProcedure, svc.CreateReceipt, opts...),
		ReceiptServiceGetReceiptProcedure:           connect.NewUnaryHandler(ReceiptServiceGetReceiptProcedure, svc.GetReceipt, opts...),
		ReceiptServiceUpdateReceiptProcedure:        connect.NewUnaryHandler(ReceiptServiceUpdateReceiptProcedure, svc.UpdateReceipt, opts...),
		ReceiptServiceDeleteReceiptProcedure:        connect.NewUnaryHandler(ReceiptServiceDeleteReceiptProcedure, svc.DeleteReceipt, opts...),
		ReceiptServiceListReceiptsProcedure:         connect.NewUnaryHandler(ReceiptServiceListReceiptsProcedure, svc.ListReceipts, opts...),
		ReceiptServiceCalculateAllocationsProcedure: connect.NewUnaryHandler(ReceiptServiceCalculateAllocationsProcedure, svc.CalculateAllocations, opts...),
		ReceiptServicePreviewAllocationsProcedure:   connect.NewUnaryHandler(ReceiptServicePreviewAllocationsProcedure, svc.PreviewAllocations, opts...),
		ReceiptServiceRecordPaymentProcedure:        connect.NewUnaryHandler(ReceiptServiceRecordPaymentProcedure, svc.RecordPayment, opts...),
		ReceiptServiceCalculateChangeProcedure:      connect.NewUnaryHandler(ReceiptServiceCalculateChangeProcedure, svc.CalculateChange, opts...),
		ReceiptServiceListBalancesProcedure:         connect.NewUnaryHandler(ReceiptServiceListBalancesProcedure, svc.ListBalances, opts...),
	})
}

// ReceiptServiceClient is a client for the billsplit.v1.ReceiptService service.
type ReceiptServiceClient interface {
	CreateReceipt(context.Context, *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
	UpdateReceipt(context.Context, *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error)
	DeleteReceipt(context.Context, *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error)
	CalculateAllocations(context.Context, *connect.Request[api.CalculateAllocationsRequest]) (*connect.Response[api.CalculateAllocationsResponse], error)
	PreviewAllocations(context.Context, *connect.Request[api.PreviewAllocationsRequest]) (*connect.Response[api.PreviewAllocationsResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	CalculateChange(context.Context, *connect.Request[api.CalculateChangeRequest]) (*connect.Response[api.CalculateChangeResponse], error)
	ListBalances(context.Context, *connect.Request[api.ListBalancesRequest]) (*connect.Response[api.ListBalancesResponse], error)
}

// NewReceiptServiceClient constructs a client for the billsplit.v1.ReceiptService service.
func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReceiptServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &receiptServiceClient{
		createReceipt:        connect.NewClient[api.CreateReceiptRequest, api.CreateReceiptResponse](httpClient, baseURL+ReceiptServiceCreateReceiptProcedure, opts...),
		getReceipt:           connect.NewClient[api.GetReceiptRequest, api.GetReceiptResponse](httpClient, baseURL+ReceiptServiceGetReceiptProcedure, opts...),
		updateReceipt:        connect.NewClient[api.UpdateReceiptRequest, api.UpdateReceiptResponse](httpClient, baseURL+ReceiptServiceUpdateReceiptProcedure, opts...),
		deleteReceipt:        connect.NewClient[api.DeleteReceiptRequest, api.DeleteReceiptResponse](httpClient, baseURL+ReceiptServiceDeleteReceiptProcedure, opts...),
		listReceipts:         connect.NewClient[api.ListReceiptsRequest, api.ListReceiptsResponse](httpClient, baseURL+ReceiptServiceListReceiptsProcedure, opts...),
		calculateAllocations: connect.NewClient[api.CalculateAllocationsRequest, api.CalculateAllocationsResponse](httpClient, baseURL+ReceiptServiceCalculateAllocationsProcedure, opts...),
		previewAllocations:   connect.NewClient[api.PreviewAllocationsRequest, api.PreviewAllocationsResponse](httpClient, baseURL+ReceiptServicePreviewAllocationsProcedure, opts...),
		recordPayment:        connect.NewClient[api.RecordPaymentRequest, api.RecordPaymentResponse](httpClient, baseURL+ReceiptServiceRecordPaymentProcedure, opts...),
		calculateChange:      connect.NewClient[api.CalculateChangeRequest, api.CalculateChangeResponse](httpClient, baseURL+ReceiptServiceCalculateChangeProcedure, opts...),
		listBalances:         connect.NewClient[api.ListBalancesRequest, api.ListBalancesResponse](httpClient, baseURL+ReceiptServiceListBalancesProcedure, opts...),
	}
}

type receiptServiceClient struct {
	createReceipt        *connect.Client[api.CreateReceiptRequest, api.CreateReceiptResponse]
	getReceipt           *connect.Client[api.GetReceiptRequest, api.GetReceiptResponse]
	updateReceipt        *connect.Client[api.UpdateReceiptRequest, api.UpdateReceiptResponse]
	deleteReceipt        *connect.Client[api.DeleteReceiptRequest, api.DeleteReceiptResponse]
	listReceipts         *connect.Client[api.ListReceiptsRequest, api.ListReceiptsResponse]
	calculateAllocations *connect.Client[api.CalculateAllocationsRequest, api.CalculateAllocationsResponse]
	previewAllocations   *connect.Client[api.PreviewAllocationsRequest, api.PreviewAllocationsResponse]
	recordPayment        *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
	calculateChange      *connect.Client[api.CalculateChangeRequest, api.CalculateChangeResponse]
	listBalances         *connect.Client[api.ListBalancesRequest, api.ListBalancesResponse]
}

func (c *receiptServiceClient) CreateReceipt(ctx context.Context, req *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error) {
	return c.createReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	return c.getReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) UpdateReceipt(ctx context.Context, req *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error) {
	return c.updateReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) DeleteReceipt(ctx context.Context, req *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	return c.deleteReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	return c.listReceipts.CallUnary(ctx, req)
}

func (c *receiptServiceClient) CalculateAllocations(ctx context.Context, req *connect.Request[api.CalculateAllocationsRequest]) (*connect.Response[api.CalculateAllocationsResponse], error) {
	return c.calculateAllocations.CallUnary(ctx, req)
}

func (c *receiptServiceClient) PreviewAllocations(ctx context.Context, req *connect.Request[api.PreviewAllocationsRequest]) (*connect.Response[api.PreviewAllocationsResponse], error) {
	return c.previewAllocations.CallUnary(ctx, req)
}

func (c *receiptServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *receiptServiceClient) CalculateChange(ctx context.Context, req *connect.Request[api.CalculateChangeRequest]) (*connect.Response[api.CalculateChangeResponse], error) {
	return c.calculateChange.CallUnary(ctx, req)
}

func (c *receiptServiceClient) ListBalances(ctx context.Context, req *connect.Request[api.ListBalancesRequest]) (*connect.Response[api.ListBalancesResponse], error) {
	return c.listBalances.CallUnary(ctx, req)
}
