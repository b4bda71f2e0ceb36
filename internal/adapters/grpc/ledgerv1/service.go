package ledgerv1

import (
	"context"

	_ "github.com/ogurasousui/shramik-hisab/internal/adapters/grpc/codec"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ServiceName は gRPC のサービス名です。
const ServiceName = "shramik.ledger.v1.LedgerService"

// LedgerServiceServer は LedgerService のサーバー側インターフェースです。
type LedgerServiceServer interface {
	AddWorker(context.Context, *AddWorkerRequest) (*AddWorkerResponse, error)
	UpdateWorker(context.Context, *UpdateWorkerRequest) (*UpdateWorkerResponse, error)
	DeleteWorker(context.Context, *DeleteWorkerRequest) (*emptypb.Empty, error)
	ListWorkers(context.Context, *emptypb.Empty) (*ListWorkersResponse, error)
	MarkAttendance(context.Context, *MarkAttendanceRequest) (*MarkAttendanceResponse, error)
	CheckOut(context.Context, *CheckOutRequest) (*CheckOutResponse, error)
	ListAttendance(context.Context, *ListAttendanceRequest) (*ListAttendanceResponse, error)
	RecordPayment(context.Context, *RecordPaymentRequest) (*RecordPaymentResponse, error)
	UpdatePayment(context.Context, *UpdatePaymentRequest) (*UpdatePaymentResponse, error)
	DeletePayment(context.Context, *DeletePaymentRequest) (*emptypb.Empty, error)
	ListPayments(context.Context, *ListPaymentsRequest) (*ListPaymentsResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	ListWorkerSummaries(context.Context, *emptypb.Empty) (*ListWorkerSummariesResponse, error)
	GetDailyStats(context.Context, *GetDailyStatsRequest) (*GetDailyStatsResponse, error)
	ExportSnapshot(context.Context, *emptypb.Empty) (*ExportSnapshotResponse, error)
	ImportSnapshot(context.Context, *ImportSnapshotRequest) (*emptypb.Empty, error)
	ResetAll(context.Context, *ResetAllRequest) (*emptypb.Empty, error)
}

// UnimplementedLedgerServiceServer は全メソッドで Unimplemented を返します。埋め込んで使います。
type UnimplementedLedgerServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedLedgerServiceServer) AddWorker(context.Context, *AddWorkerRequest) (*AddWorkerResponse, error) {
	return nil, unimplemented("AddWorker")
}
func (UnimplementedLedgerServiceServer) UpdateWorker(context.Context, *UpdateWorkerRequest) (*UpdateWorkerResponse, error) {
	return nil, unimplemented("UpdateWorker")
}
func (UnimplementedLedgerServiceServer) DeleteWorker(context.Context, *DeleteWorkerRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("DeleteWorker")
}
func (UnimplementedLedgerServiceServer) ListWorkers(context.Context, *emptypb.Empty) (*ListWorkersResponse, error) {
	return nil, unimplemented("ListWorkers")
}
func (UnimplementedLedgerServiceServer) MarkAttendance(context.Context, *MarkAttendanceRequest) (*MarkAttendanceResponse, error) {
	return nil, unimplemented("MarkAttendance")
}
func (UnimplementedLedgerServiceServer) CheckOut(context.Context, *CheckOutRequest) (*CheckOutResponse, error) {
	return nil, unimplemented("CheckOut")
}
func (UnimplementedLedgerServiceServer) ListAttendance(context.Context, *ListAttendanceRequest) (*ListAttendanceResponse, error) {
	return nil, unimplemented("ListAttendance")
}
func (UnimplementedLedgerServiceServer) RecordPayment(context.Context, *RecordPaymentRequest) (*RecordPaymentResponse, error) {
	return nil, unimplemented("RecordPayment")
}
func (UnimplementedLedgerServiceServer) UpdatePayment(context.Context, *UpdatePaymentRequest) (*UpdatePaymentResponse, error) {
	return nil, unimplemented("UpdatePayment")
}
func (UnimplementedLedgerServiceServer) DeletePayment(context.Context, *DeletePaymentRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("DeletePayment")
}
func (UnimplementedLedgerServiceServer) ListPayments(context.Context, *ListPaymentsRequest) (*ListPaymentsResponse, error) {
	return nil, unimplemented("ListPayments")
}
func (UnimplementedLedgerServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, unimplemented("GetBalance")
}
func (UnimplementedLedgerServiceServer) ListWorkerSummaries(context.Context, *emptypb.Empty) (*ListWorkerSummariesResponse, error) {
	return nil, unimplemented("ListWorkerSummaries")
}
func (UnimplementedLedgerServiceServer) GetDailyStats(context.Context, *GetDailyStatsRequest) (*GetDailyStatsResponse, error) {
	return nil, unimplemented("GetDailyStats")
}
func (UnimplementedLedgerServiceServer) ExportSnapshot(context.Context, *emptypb.Empty) (*ExportSnapshotResponse, error) {
	return nil, unimplemented("ExportSnapshot")
}
func (UnimplementedLedgerServiceServer) ImportSnapshot(context.Context, *ImportSnapshotRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("ImportSnapshot")
}
func (UnimplementedLedgerServiceServer) ResetAll(context.Context, *ResetAllRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("ResetAll")
}

// unaryMethod はリクエストの復号とインターセプタ呼び出しを共通化した MethodDesc を返します。
func unaryMethod[Req, Resp any](name string, call func(LedgerServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LedgerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LedgerServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// LedgerService_ServiceDesc は LedgerService の grpc.ServiceDesc です。
var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("AddWorker", LedgerServiceServer.AddWorker),
		unaryMethod("UpdateWorker", LedgerServiceServer.UpdateWorker),
		unaryMethod("DeleteWorker", LedgerServiceServer.DeleteWorker),
		unaryMethod("ListWorkers", LedgerServiceServer.ListWorkers),
		unaryMethod("MarkAttendance", LedgerServiceServer.MarkAttendance),
		unaryMethod("CheckOut", LedgerServiceServer.CheckOut),
		unaryMethod("ListAttendance", LedgerServiceServer.ListAttendance),
		unaryMethod("RecordPayment", LedgerServiceServer.RecordPayment),
		unaryMethod("UpdatePayment", LedgerServiceServer.UpdatePayment),
		unaryMethod("DeletePayment", LedgerServiceServer.DeletePayment),
		unaryMethod("ListPayments", LedgerServiceServer.ListPayments),
		unaryMethod("GetBalance", LedgerServiceServer.GetBalance),
		unaryMethod("ListWorkerSummaries", LedgerServiceServer.ListWorkerSummaries),
		unaryMethod("GetDailyStats", LedgerServiceServer.GetDailyStats),
		unaryMethod("ExportSnapshot", LedgerServiceServer.ExportSnapshot),
		unaryMethod("ImportSnapshot", LedgerServiceServer.ImportSnapshot),
		unaryMethod("ResetAll", LedgerServiceServer.ResetAll),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shramik/ledger/v1/ledger.proto",
}

// RegisterLedgerServiceServer は LedgerService をサーバーに登録します。
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}
