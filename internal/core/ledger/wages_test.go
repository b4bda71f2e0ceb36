package ledger

import (
	"context"
	"errors"
	"testing"
)

func TestBalance_Scenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	engine, _ := newTestEngine(t)
	w := mustAddWorker(t, engine, "Worker A", 600)
	mustMark(t, engine, w.ID, "2023-10-01", StatusPresent)
	mustMark(t, engine, w.ID, "2023-10-02", StatusHalfDay)
	if _, err := engine.RecordPayment(ctx, RecordPaymentInput{WorkerID: w.ID, Amount: 500, Date: "2023-10-03"}); err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}

	owed, err := engine.WageOwed(ctx, w.ID, "")
	if err != nil {
		t.Fatalf("WageOwed returned error: %v", err)
	}
	paid, err := engine.TotalPaid(ctx, w.ID)
	if err != nil {
		t.Fatalf("TotalPaid returned error: %v", err)
	}
	balance, err := engine.Balance(ctx, w.ID)
	if err != nil {
		t.Fatalf("Balance returned error: %v", err)
	}

	if owed != 900 || paid != 1400 || balance != 500 {
		t.Fatalf("expected owed=900 paid=1400 balance=500, got %v %v %v", owed, paid, balance)
	}

	through, err := engine.WageOwed(ctx, w.ID, "2023-10-01")
	if err != nil {
		t.Fatalf("WageOwed returned error: %v", err)
	}
	if through != 600 {
		t.Fatalf("expected wage through 2023-10-01 to be 600, got %v", through)
	}
}

func TestBalance_DueWhenUnderpaid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	engine, _ := newTestEngine(t)
	w := mustAddWorker(t, engine, "Worker B", 500)
	mustMark(t, engine, w.ID, "2023-10-01", StatusPresent)
	mustMark(t, engine, w.ID, "2023-10-02", StatusPresent)
	// 自動支払を削除して未払を作る
	if err := engine.DeletePayment(ctx, AutoPaymentID("2023-10-02", w.ID)); err != nil {
		t.Fatalf("DeletePayment returned error: %v", err)
	}
	if err := engine.DeletePayment(ctx, AutoPaymentID("2023-10-01", w.ID)); err != nil {
		t.Fatalf("DeletePayment returned error: %v", err)
	}
	if _, err := engine.RecordPayment(ctx, RecordPaymentInput{WorkerID: w.ID, Amount: 600}); err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}

	summary, err := engine.WorkerSummary(ctx, w.ID)
	if err != nil {
		t.Fatalf("WorkerSummary returned error: %v", err)
	}
	if summary.Balance != -400 || summary.State != BalanceDue {
		t.Fatalf("expected due balance of -400, got %+v", summary)
	}
	if summary.BalanceLabel != "Due ₹400" {
		t.Fatalf("unexpected label: %q", summary.BalanceLabel)
	}
}

func TestFormatBalance(t *testing.T) {
	t.Parallel()

	cases := []struct {
		balance float64
		want    string
	}{
		{-400, "Due ₹400"},
		{200, "Advance ₹200"},
		{0, "Paid"},
		{-1250.5, "Due ₹1,250.5"},
	}
	for _, tc := range cases {
		if got := FormatBalance(tc.balance); got != tc.want {
			t.Errorf("FormatBalance(%v) = %q, want %q", tc.balance, got, tc.want)
		}
	}
}

func TestTodayStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	engine, _ := newTestEngine(t)
	a := mustAddWorker(t, engine, "Worker A", 600)
	b := mustAddWorker(t, engine, "Worker B", 400)
	c := mustAddWorker(t, engine, "Worker C", 500)
	mustMark(t, engine, a.ID, "2023-10-05", StatusPresent)
	mustMark(t, engine, b.ID, "2023-10-05", StatusHalfDay)
	mustMark(t, engine, c.ID, "2023-10-05", StatusAbsent)
	mustMark(t, engine, c.ID, "2023-10-04", StatusPresent)
	if err := engine.DeletePayment(ctx, AutoPaymentID("2023-10-04", c.ID)); err != nil {
		t.Fatalf("DeletePayment returned error: %v", err)
	}

	stats, err := engine.TodayStats(ctx, "")
	if err != nil {
		t.Fatalf("TodayStats returned error: %v", err)
	}
	if stats.Date != "2023-10-05" {
		t.Fatalf("expected today's stats, got %s", stats.Date)
	}
	if stats.EarnedToday != 800 || stats.PaidToday != 800 {
		t.Fatalf("expected earned=800 paid=800, got %+v", stats)
	}
	if stats.OverallDue != -500 {
		t.Fatalf("expected overall due -500, got %v", stats.OverallDue)
	}
	if stats.PresentCount != 1 || stats.HalfDayCount != 1 || stats.AbsentCount != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
}

func TestWageOwed_Errors(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	if _, err := engine.WageOwed(context.Background(), "ghost", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	w := mustAddWorker(t, engine, "Worker A", 600)
	if _, err := engine.WageOwed(context.Background(), w.ID, "Oct 1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
