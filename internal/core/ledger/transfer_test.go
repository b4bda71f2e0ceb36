package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source, _ := newTestEngine(t)
	a := mustAddWorker(t, source, "Worker A", 600)
	b := mustAddWorker(t, source, "Worker B", 500)
	mustMark(t, source, a.ID, "2023-10-01", StatusPresent)
	mustMark(t, source, b.ID, "2023-10-01", StatusHalfDay)
	if _, err := source.CheckOut(ctx, a.ID, "2023-10-01"); err != nil {
		t.Fatalf("CheckOut returned error: %v", err)
	}
	if _, err := source.RecordPayment(ctx, RecordPaymentInput{WorkerID: b.ID, Amount: 75, Note: "tea"}); err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}

	exported, err := source.ExportSnapshot(ctx)
	if err != nil {
		t.Fatalf("ExportSnapshot returned error: %v", err)
	}
	blob, err := MarshalSnapshot(exported)
	if err != nil {
		t.Fatalf("MarshalSnapshot returned error: %v", err)
	}

	target, store := newTestEngine(t)
	if err := target.ImportSnapshot(ctx, blob); err != nil {
		t.Fatalf("ImportSnapshot returned error: %v", err)
	}
	imported, _ := target.ExportSnapshot(ctx)
	if !reflect.DeepEqual(normalizeSnapshot(t, exported), normalizeSnapshot(t, imported)) {
		t.Fatalf("round trip mismatch:\nexported=%+v\nimported=%+v", exported, imported)
	}
	for _, key := range []string{KeyWorkers, KeyAttendance, KeyPayments} {
		if _, ok := store.value(key); !ok {
			t.Fatalf("expected %s to be persisted after import", key)
		}
	}
}

// normalizeSnapshot は時刻のモノトニック成分などを除くため JSON を経由して比較用に整えます。
func normalizeSnapshot(t *testing.T, s Snapshot) map[string]any {
	t.Helper()
	blob, err := MarshalSnapshot(s)
	if err != nil {
		t.Fatalf("MarshalSnapshot returned error: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(blob, &out); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	return out
}

func TestImportSnapshot_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		blob string
		want error
	}{
		{"not json", `workers=1`, ErrNotJSON},
		{"json array", `[]`, ErrNotJSON},
		{"missing payments", `{"workers":[],"allAttendance":{}}`, ErrMissingSnapshotKey},
		{"bad worker", `{"workers":[{"id":"w1","name":"A","phoneNumber":"1","dailyWage":0,"photoUrl":""}],"allAttendance":{},"payments":[]}`, ErrImportFormat},
		{"bad status", `{"workers":[],"allAttendance":{"2023-10-01":{"w1":{"status":"late"}}},"payments":[]}`, ErrImportFormat},
		{"checkout without checkin", `{"workers":[],"allAttendance":{"2023-10-01":{"w1":{"status":"present","checkOut":"2023-10-01T18:00:00Z"}}},"payments":[]}`, ErrImportFormat},
		{"bad payment", `{"workers":[],"allAttendance":{},"payments":[{"id":"p1","workerId":"w1","date":"2023-10-01","amount":-3}]}`, ErrImportFormat},
		{"duplicate payment", `{"workers":[],"allAttendance":{},"payments":[{"id":"p1","workerId":"w1","date":"2023-10-01","amount":3},{"id":"p1","workerId":"w1","date":"2023-10-01","amount":3}]}`, ErrImportFormat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			engine, _ := newTestEngine(t)
			w := mustAddWorker(t, engine, "Existing Worker", 600)

			err := engine.ImportSnapshot(ctx, []byte(tc.blob))
			if !errors.Is(err, tc.want) || !errors.Is(err, ErrImportFormat) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if _, err := engine.GetWorker(ctx, w.ID); err != nil {
				t.Fatalf("rejected import must not mutate state, got %v", err)
			}
		})
	}
}

func TestImportSnapshot_ErrorNamesRecord(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	blob := `{"workers":[],"allAttendance":{},"payments":[{"id":"p1","workerId":"w1","date":"2023-10-01","amount":3},{"id":"p2","workerId":"w1","date":"bad","amount":3}]}`
	err := engine.ImportSnapshot(context.Background(), []byte(blob))
	if err == nil || !strings.Contains(err.Error(), "payments[1]") {
		t.Fatalf("expected error naming payments[1], got %v", err)
	}
}

func TestResetAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	engine, store := newTestEngine(t)
	w := mustAddWorker(t, engine, "Worker A", 600)
	mustMark(t, engine, w.ID, "2023-10-01", StatusPresent)

	hookCalls := 0
	engine.AddResetHook(func(context.Context) error {
		hookCalls++
		return nil
	})
	engine.AddResetHook(func(context.Context) error {
		return errors.New("cache unavailable")
	})

	if err := engine.ResetAll(ctx); err != nil {
		t.Fatalf("ResetAll returned error: %v", err)
	}

	snap, _ := engine.ExportSnapshot(ctx)
	if len(snap.Workers) != 0 || len(snap.AllAttendance) != 0 || len(snap.Payments) != 0 {
		t.Fatalf("expected empty state, got %+v", snap)
	}
	for _, key := range []string{KeyWorkers, KeyAttendance, KeyPayments} {
		if _, ok := store.value(key); ok {
			t.Fatalf("expected %s to be removed", key)
		}
	}
	if hookCalls != 1 {
		t.Fatalf("expected reset hook to run once, got %d", hookCalls)
	}
}

func TestImportSnapshot_MissingKeyIsValidationError(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	err := engine.ImportSnapshot(context.Background(), []byte(`{"workers":[],"payments":[]}`))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !errors.Is(err, ErrImportFormat) {
		t.Fatalf("expected ErrImportFormat, got %v", err)
	}
}
