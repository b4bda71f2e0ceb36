package handler

import (
	"context"
	"strings"
	"time"

	ledgerv1 "github.com/ogurasousui/shramik-hisab/internal/adapters/grpc/ledgerv1"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var errRequestRequired = status.Error(codes.InvalidArgument, "request is required")

// LedgerGrpcHandler は LedgerService の gRPC 実装です。
type LedgerGrpcHandler struct {
	svc ledger.UseCase
	ledgerv1.UnimplementedLedgerServiceServer
}

var _ ledgerv1.LedgerServiceServer = (*LedgerGrpcHandler)(nil)

// NewLedgerGrpcHandler は LedgerGrpcHandler を生成します。
func NewLedgerGrpcHandler(svc ledger.UseCase) *LedgerGrpcHandler {
	return &LedgerGrpcHandler{svc: svc}
}

// AddWorker は作業員を登録します。
func (h *LedgerGrpcHandler) AddWorker(ctx context.Context, req *ledgerv1.AddWorkerRequest) (*ledgerv1.AddWorkerResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	created, err := h.svc.AddWorker(ctx, ledger.AddWorkerInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		DailyWage:   req.DailyWage,
		PhotoURL:    req.PhotoUrl,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ledgerv1.AddWorkerResponse{Worker: toProtoWorker(created)}, nil
}

// UpdateWorker は作業員情報を部分更新します。
func (h *LedgerGrpcHandler) UpdateWorker(ctx context.Context, req *ledgerv1.UpdateWorkerRequest) (*ledgerv1.UpdateWorkerResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	if strings.TrimSpace(req.Id) == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	updated, err := h.svc.UpdateWorker(ctx, ledger.UpdateWorkerInput{
		ID:          req.Id,
		Name:        stringValue(req.Name),
		PhoneNumber: stringValue(req.PhoneNumber),
		DailyWage:   doubleValue(req.DailyWage),
		PhotoURL:    stringValue(req.PhotoUrl),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ledgerv1.UpdateWorkerResponse{Worker: toProtoWorker(updated)}, nil
}

// DeleteWorker は勤怠記録のない作業員を削除します。
func (h *LedgerGrpcHandler) DeleteWorker(ctx context.Context, req *ledgerv1.DeleteWorkerRequest) (*emptypb.Empty, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	if err := h.svc.DeleteWorker(ctx, req.Id); err != nil {
		return nil, toStatusError(err)
	}
	return &emptypb.Empty{}, nil
}

// ListWorkers は登録順の作業員一覧を返します。
func (h *LedgerGrpcHandler) ListWorkers(ctx context.Context, _ *emptypb.Empty) (*ledgerv1.ListWorkersResponse, error) {
	workers, err := h.svc.ListWorkers(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp := &ledgerv1.ListWorkersResponse{Workers: make([]*ledgerv1.Worker, 0, len(workers))}
	for i := range workers {
		resp.Workers = append(resp.Workers, toProtoWorker(&workers[i]))
	}
	return resp, nil
}

// MarkAttendance は勤怠を記録し、自動支払を再計算します。
func (h *LedgerGrpcHandler) MarkAttendance(ctx context.Context, req *ledgerv1.MarkAttendanceRequest) (*ledgerv1.MarkAttendanceResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	att, err := h.svc.MarkAttendance(ctx, ledger.MarkAttendanceInput{
		WorkerID: req.WorkerId,
		Date:     req.Date,
		Status:   ledger.Status(req.Status),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ledgerv1.MarkAttendanceResponse{Attendance: toProtoAttendance(att)}, nil
}

// CheckOut は退勤時刻を記録します。
func (h *LedgerGrpcHandler) CheckOut(ctx context.Context, req *ledgerv1.CheckOutRequest) (*ledgerv1.CheckOutResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	att, err := h.svc.CheckOut(ctx, req.WorkerId, req.Date)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ledgerv1.CheckOutResponse{Attendance: toProtoAttendance(att)}, nil
}

// ListAttendance は作業員の履歴、または指定日の出勤簿を返します。
func (h *LedgerGrpcHandler) ListAttendance(ctx context.Context, req *ledgerv1.ListAttendanceRequest) (*ledgerv1.ListAttendanceResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	var (
		records []ledger.Attendance
		err     error
	)
	if req.WorkerId != "" {
		records, err = h.svc.WorkerAttendance(ctx, req.WorkerId)
	} else {
		records, err = h.svc.AttendanceOn(ctx, req.Date)
	}
	if err != nil {
		return nil, toStatusError(err)
	}

	resp := &ledgerv1.ListAttendanceResponse{Attendance: make([]*ledgerv1.Attendance, 0, len(records))}
	for i := range records {
		resp.Attendance = append(resp.Attendance, toProtoAttendance(&records[i]))
	}
	return resp, nil
}

// RecordPayment は手動の支払を登録します。
func (h *LedgerGrpcHandler) RecordPayment(ctx context.Context, req *ledgerv1.RecordPaymentRequest) (*ledgerv1.RecordPaymentResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	p, err := h.svc.RecordPayment(ctx, ledger.RecordPaymentInput{
		WorkerID: req.WorkerId,
		Amount:   req.Amount,
		Date:     req.Date,
		Note:     req.Note,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ledgerv1.RecordPaymentResponse{Payment: toProtoPayment(p)}, nil
}

// UpdatePayment は支払の金額・日付・メモを更新します。
func (h *LedgerGrpcHandler) UpdatePayment(ctx context.Context, req *ledgerv1.UpdatePaymentRequest) (*ledgerv1.UpdatePaymentResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	if strings.TrimSpace(req.Id) == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	p, err := h.svc.UpdatePayment(ctx, ledger.UpdatePaymentInput{
		ID:     req.Id,
		Amount: doubleValue(req.Amount),
		Date:   stringValue(req.Date),
		Note:   stringValue(req.Note),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ledgerv1.UpdatePaymentResponse{Payment: toProtoPayment(p)}, nil
}

// DeletePayment は支払を削除します。
func (h *LedgerGrpcHandler) DeletePayment(ctx context.Context, req *ledgerv1.DeletePaymentRequest) (*emptypb.Empty, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	if err := h.svc.DeletePayment(ctx, req.Id); err != nil {
		return nil, toStatusError(err)
	}
	return &emptypb.Empty{}, nil
}

// ListPayments は新しい順の支払一覧を返します。
func (h *LedgerGrpcHandler) ListPayments(ctx context.Context, req *ledgerv1.ListPaymentsRequest) (*ledgerv1.ListPaymentsResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	payments, err := h.svc.ListPayments(ctx, ledger.PaymentFilter{WorkerID: req.WorkerId})
	if err != nil {
		return nil, toStatusError(err)
	}

	resp := &ledgerv1.ListPaymentsResponse{Payments: make([]*ledgerv1.Payment, 0, len(payments))}
	for i := range payments {
		resp.Payments = append(resp.Payments, toProtoPayment(&payments[i]))
	}
	return resp, nil
}

// GetBalance は作業員の賃金・支払・残高を返します。ThroughDate は賃金の集計範囲のみに効きます。
func (h *LedgerGrpcHandler) GetBalance(ctx context.Context, req *ledgerv1.GetBalanceRequest) (*ledgerv1.GetBalanceResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	owed, err := h.svc.WageOwed(ctx, req.WorkerId, req.ThroughDate)
	if err != nil {
		return nil, toStatusError(err)
	}
	paid, err := h.svc.TotalPaid(ctx, req.WorkerId)
	if err != nil {
		return nil, toStatusError(err)
	}
	balance, err := h.svc.Balance(ctx, req.WorkerId)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ledgerv1.GetBalanceResponse{
		WorkerId:  req.WorkerId,
		WageOwed:  owed,
		TotalPaid: paid,
		Balance:   balance,
		State:     string(ledger.StateOf(balance)),
		Label:     ledger.FormatBalance(balance),
	}, nil
}

// ListWorkerSummaries は作業員ごとの集計を返します。
func (h *LedgerGrpcHandler) ListWorkerSummaries(ctx context.Context, _ *emptypb.Empty) (*ledgerv1.ListWorkerSummariesResponse, error) {
	summaries, err := h.svc.ListWorkerSummaries(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp := &ledgerv1.ListWorkerSummariesResponse{Summaries: make([]*ledgerv1.WorkerSummary, 0, len(summaries))}
	for i := range summaries {
		resp.Summaries = append(resp.Summaries, toProtoSummary(&summaries[i]))
	}
	return resp, nil
}

// GetDailyStats は指定日 (省略時は当日) の集計を返します。
func (h *LedgerGrpcHandler) GetDailyStats(ctx context.Context, req *ledgerv1.GetDailyStatsRequest) (*ledgerv1.GetDailyStatsResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	stats, err := h.svc.TodayStats(ctx, req.Date)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ledgerv1.GetDailyStatsResponse{Stats: &ledgerv1.DailyStats{
		Date:         stats.Date,
		EarnedToday:  stats.EarnedToday,
		PaidToday:    stats.PaidToday,
		OverallDue:   stats.OverallDue,
		PresentCount: int32(stats.PresentCount),
		HalfDayCount: int32(stats.HalfDayCount),
		AbsentCount:  int32(stats.AbsentCount),
	}}, nil
}

// ExportSnapshot は全データをエクスポート形式の JSON で返します。
func (h *LedgerGrpcHandler) ExportSnapshot(ctx context.Context, _ *emptypb.Empty) (*ledgerv1.ExportSnapshotResponse, error) {
	snap, err := h.svc.ExportSnapshot(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	blob, err := ledger.MarshalSnapshot(snap)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &ledgerv1.ExportSnapshotResponse{Snapshot: blob}, nil
}

// ImportSnapshot は全データを置き換えます。confirm が必要です。
func (h *LedgerGrpcHandler) ImportSnapshot(ctx context.Context, req *ledgerv1.ImportSnapshotRequest) (*emptypb.Empty, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	if !req.Confirm {
		return nil, status.Error(codes.FailedPrecondition, "import replaces all data; set confirm to true")
	}
	if err := h.svc.ImportSnapshot(ctx, req.Snapshot); err != nil {
		return nil, toStatusError(err)
	}
	return &emptypb.Empty{}, nil
}

// ResetAll は全データを削除します。confirm が必要です。
func (h *LedgerGrpcHandler) ResetAll(ctx context.Context, req *ledgerv1.ResetAllRequest) (*emptypb.Empty, error) {
	if req == nil {
		return nil, errRequestRequired
	}
	if !req.Confirm {
		return nil, status.Error(codes.FailedPrecondition, "reset deletes all data; set confirm to true")
	}
	if err := h.svc.ResetAll(ctx); err != nil {
		return nil, toStatusError(err)
	}
	return &emptypb.Empty{}, nil
}

func toProtoWorker(w *ledger.Worker) *ledgerv1.Worker {
	if w == nil {
		return nil
	}
	return &ledgerv1.Worker{
		Id:          w.ID,
		Name:        w.Name,
		PhoneNumber: w.PhoneNumber,
		DailyWage:   w.DailyWage,
		PhotoUrl:    w.PhotoURL,
		CreatedAt:   formatTime(&w.CreatedAt),
	}
}

func toProtoAttendance(a *ledger.Attendance) *ledgerv1.Attendance {
	if a == nil {
		return nil
	}
	return &ledgerv1.Attendance{
		Id:       a.ID,
		WorkerId: a.WorkerID,
		Date:     a.Date,
		Status:   string(a.Status),
		CheckIn:  formatTime(a.CheckIn),
		CheckOut: formatTime(a.CheckOut),
	}
}

func toProtoPayment(p *ledger.Payment) *ledgerv1.Payment {
	if p == nil {
		return nil
	}
	return &ledgerv1.Payment{
		Id:       p.ID,
		WorkerId: p.WorkerID,
		Date:     p.Date,
		Amount:   p.Amount,
		Note:     p.Note,
		Auto:     p.IsAuto(),
	}
}

func toProtoSummary(s *ledger.WorkerSummary) *ledgerv1.WorkerSummary {
	return &ledgerv1.WorkerSummary{
		Worker:       toProtoWorker(&s.Worker),
		PresentDays:  int32(s.PresentDays),
		HalfDays:     int32(s.HalfDays),
		AbsentDays:   int32(s.AbsentDays),
		TotalEarned:  s.TotalEarned,
		TotalPaid:    s.TotalPaid,
		Balance:      s.Balance,
		State:        string(s.State),
		BalanceLabel: s.BalanceLabel,
	}
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func stringValue(v *wrapperspb.StringValue) *string {
	if v == nil {
		return nil
	}
	value := v.GetValue()
	return &value
}

func doubleValue(v *wrapperspb.DoubleValue) *float64 {
	if v == nil {
		return nil
	}
	value := v.GetValue()
	return &value
}
