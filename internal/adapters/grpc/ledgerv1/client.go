package ledgerv1

import (
	"context"

	"github.com/ogurasousui/shramik-hisab/internal/adapters/grpc/codec"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// LedgerServiceClient は LedgerService のクライアントです。JSON コーデックで呼び出します。
type LedgerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerServiceClient は LedgerServiceClient を生成します。
func NewLedgerServiceClient(cc grpc.ClientConnInterface) *LedgerServiceClient {
	return &LedgerServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LedgerServiceClient) AddWorker(ctx context.Context, in *AddWorkerRequest, opts ...grpc.CallOption) (*AddWorkerResponse, error) {
	return invoke[AddWorkerResponse](ctx, c.cc, "AddWorker", in, opts)
}

func (c *LedgerServiceClient) UpdateWorker(ctx context.Context, in *UpdateWorkerRequest, opts ...grpc.CallOption) (*UpdateWorkerResponse, error) {
	return invoke[UpdateWorkerResponse](ctx, c.cc, "UpdateWorker", in, opts)
}

func (c *LedgerServiceClient) DeleteWorker(ctx context.Context, in *DeleteWorkerRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, "DeleteWorker", in, opts)
}

func (c *LedgerServiceClient) ListWorkers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListWorkersResponse, error) {
	return invoke[ListWorkersResponse](ctx, c.cc, "ListWorkers", in, opts)
}

func (c *LedgerServiceClient) MarkAttendance(ctx context.Context, in *MarkAttendanceRequest, opts ...grpc.CallOption) (*MarkAttendanceResponse, error) {
	return invoke[MarkAttendanceResponse](ctx, c.cc, "MarkAttendance", in, opts)
}

func (c *LedgerServiceClient) CheckOut(ctx context.Context, in *CheckOutRequest, opts ...grpc.CallOption) (*CheckOutResponse, error) {
	return invoke[CheckOutResponse](ctx, c.cc, "CheckOut", in, opts)
}

func (c *LedgerServiceClient) ListAttendance(ctx context.Context, in *ListAttendanceRequest, opts ...grpc.CallOption) (*ListAttendanceResponse, error) {
	return invoke[ListAttendanceResponse](ctx, c.cc, "ListAttendance", in, opts)
}

func (c *LedgerServiceClient) RecordPayment(ctx context.Context, in *RecordPaymentRequest, opts ...grpc.CallOption) (*RecordPaymentResponse, error) {
	return invoke[RecordPaymentResponse](ctx, c.cc, "RecordPayment", in, opts)
}

func (c *LedgerServiceClient) UpdatePayment(ctx context.Context, in *UpdatePaymentRequest, opts ...grpc.CallOption) (*UpdatePaymentResponse, error) {
	return invoke[UpdatePaymentResponse](ctx, c.cc, "UpdatePayment", in, opts)
}

func (c *LedgerServiceClient) DeletePayment(ctx context.Context, in *DeletePaymentRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, "DeletePayment", in, opts)
}

func (c *LedgerServiceClient) ListPayments(ctx context.Context, in *ListPaymentsRequest, opts ...grpc.CallOption) (*ListPaymentsResponse, error) {
	return invoke[ListPaymentsResponse](ctx, c.cc, "ListPayments", in, opts)
}

func (c *LedgerServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	return invoke[GetBalanceResponse](ctx, c.cc, "GetBalance", in, opts)
}

func (c *LedgerServiceClient) ListWorkerSummaries(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListWorkerSummariesResponse, error) {
	return invoke[ListWorkerSummariesResponse](ctx, c.cc, "ListWorkerSummaries", in, opts)
}

func (c *LedgerServiceClient) GetDailyStats(ctx context.Context, in *GetDailyStatsRequest, opts ...grpc.CallOption) (*GetDailyStatsResponse, error) {
	return invoke[GetDailyStatsResponse](ctx, c.cc, "GetDailyStats", in, opts)
}

func (c *LedgerServiceClient) ExportSnapshot(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ExportSnapshotResponse, error) {
	return invoke[ExportSnapshotResponse](ctx, c.cc, "ExportSnapshot", in, opts)
}

func (c *LedgerServiceClient) ImportSnapshot(ctx context.Context, in *ImportSnapshotRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, "ImportSnapshot", in, opts)
}

func (c *LedgerServiceClient) ResetAll(ctx context.Context, in *ResetAllRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, "ResetAll", in, opts)
}
