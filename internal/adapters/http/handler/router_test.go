package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/middleware"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/repository/memory"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
	"github.com/ogurasousui/shramik-hisab/internal/core/localization"
)

var testNow = time.Date(2023, 10, 3, 10, 0, 0, 0, time.UTC)

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time {
	return c.now
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
	RequestID string `json:"requestId"`
}

type failingStore struct {
	*memory.KVStore
	fail bool
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.KVStore.Set(ctx, key, value)
}

type testServer struct {
	handler http.Handler
	engine  *ledger.Engine
	store   *failingStore
}

func newTestServer(t *testing.T, ready func(context.Context) error) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := &failingStore{KVStore: memory.NewKVStore()}
	engine := ledger.NewEngine(store, ledger.Options{Clock: stubClock{now: testNow}, Logger: logger})
	loc, err := localization.NewService(memory.NewKVStore(), nil, localization.Options{Languages: []string{"en", "hi"}, Logger: logger})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	return &testServer{
		handler: NewRouter(engine, RouterOptions{
			Localizer:    loc,
			Logger:       logger,
			MaxBodyBytes: 1 << 16,
			Now:          func() time.Time { return testNow },
			Ready:        ready,
		}),
		engine: engine,
		store:  store,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, dst any) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %q: %v", rec.Body.String(), err)
	}
	if dst != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}

func (s *testServer) addWorker(t *testing.T, name string, wage float64) ledger.Worker {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/v1/workers", map[string]any{
		"name":        name,
		"phoneNumber": "9876543210",
		"dailyWage":   wage,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add worker: unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var w ledger.Worker
	decodeEnvelope(t, rec, &w)
	return w
}

func TestRouter_WorkerLifecycle(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	worker := srv.addWorker(t, "Suresh Kumar", 600)
	if worker.ID == "" || worker.PhotoURL == "" {
		t.Fatalf("unexpected worker: %+v", worker)
	}

	rec := srv.do(t, http.MethodPatch, "/api/v1/workers/"+worker.ID, map[string]any{"dailyWage": 650})
	if rec.Code != http.StatusOK {
		t.Fatalf("update worker: unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var updated ledger.Worker
	decodeEnvelope(t, rec, &updated)
	if updated.DailyWage != 650 || updated.Name != "Suresh Kumar" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/workers", nil)
	var workers []ledger.Worker
	decodeEnvelope(t, rec, &workers)
	if len(workers) != 1 {
		t.Fatalf("expected one worker, got %d", len(workers))
	}

	rec = srv.do(t, http.MethodDelete, "/api/v1/workers/"+worker.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete worker: unexpected status %d", rec.Code)
	}
	rec = srv.do(t, http.MethodGet, "/api/v1/workers/"+worker.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestRouter_ValidationError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	rec := srv.do(t, http.MethodPost, "/api/v1/workers", map[string]any{"name": "A", "phoneNumber": "12", "dailyWage": 0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec, nil)
	if env.Success || env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	fields, _ := env.Error.Details["fields"].([]any)
	if len(fields) != 3 {
		t.Fatalf("expected three field issues, got %v", env.Error.Details)
	}

	rec = srv.do(t, http.MethodPost, "/api/v1/workers", `{"name":`)
	if env := decodeEnvelope(t, rec, nil); rec.Code != http.StatusBadRequest || env.Error.Code != "invalid_json" {
		t.Fatalf("expected invalid_json, got %d %+v", rec.Code, env.Error)
	}
}

func TestRouter_AttendanceAndBalance(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	worker := srv.addWorker(t, "Suresh Kumar", 600)

	rec := srv.do(t, http.MethodPut, "/api/v1/attendance/2023-10-01/"+worker.ID, map[string]any{"status": "present"})
	if rec.Code != http.StatusOK {
		t.Fatalf("mark attendance: unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	srv.do(t, http.MethodPut, "/api/v1/attendance/2023-10-02/"+worker.ID, map[string]any{"status": "half-day"})
	srv.do(t, http.MethodPost, "/api/v1/payments", map[string]any{"workerId": worker.ID, "amount": 500, "note": "advance"})

	rec = srv.do(t, http.MethodGet, "/api/v1/workers/"+worker.ID+"/balance", nil)
	var balance balanceView
	decodeEnvelope(t, rec, &balance)
	if balance.WageOwed != 900 || balance.TotalPaid != 1400 || balance.Balance != 500 || balance.Label != "Advance ₹500" {
		t.Fatalf("unexpected balance: %+v", balance)
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/workers/"+worker.ID+"/balance?through=2023-10-01", nil)
	decodeEnvelope(t, rec, &balance)
	if balance.WageOwed != 600 {
		t.Fatalf("expected wage through 2023-10-01 to be 600, got %v", balance.WageOwed)
	}

	rec = srv.do(t, http.MethodPost, "/api/v1/attendance/2023-10-05/"+worker.ID+"/checkout", nil)
	if env := decodeEnvelope(t, rec, nil); rec.Code != http.StatusConflict || env.Error.Code != "invalid_state" {
		t.Fatalf("expected invalid_state for checkout without attendance, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/api/v1/attendance/2023-10-01/"+worker.ID+"/checkout", nil)
	var att ledger.Attendance
	decodeEnvelope(t, rec, &att)
	if rec.Code != http.StatusOK || att.CheckOut == nil {
		t.Fatalf("expected checkout to succeed, got %d %+v", rec.Code, att)
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/attendance?date=2023-10-02", nil)
	var sheet []ledger.Attendance
	decodeEnvelope(t, rec, &sheet)
	if len(sheet) != 1 || sheet[0].Status != ledger.StatusHalfDay {
		t.Fatalf("unexpected sheet: %+v", sheet)
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/stats?date=2023-10-01", nil)
	var stats ledger.DailyStats
	decodeEnvelope(t, rec, &stats)
	if stats.EarnedToday != 600 || stats.PresentCount != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	rec = srv.do(t, http.MethodDelete, "/api/v1/workers/"+worker.ID, nil)
	if env := decodeEnvelope(t, rec, nil); rec.Code != http.StatusConflict || env.Error.Code != "conflict" {
		t.Fatalf("expected conflict deleting worker with attendance, got %d", rec.Code)
	}
}

func TestRouter_Payments(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	worker := srv.addWorker(t, "Meena Devi", 550)

	rec := srv.do(t, http.MethodPost, "/api/v1/payments", map[string]any{"workerId": worker.ID, "amount": 200, "date": "2023-10-02"})
	var p ledger.Payment
	decodeEnvelope(t, rec, &p)
	if rec.Code != http.StatusCreated || p.Amount != 200 {
		t.Fatalf("unexpected payment: %d %+v", rec.Code, p)
	}

	rec = srv.do(t, http.MethodPatch, "/api/v1/payments/"+p.ID, map[string]any{"amount": 250})
	decodeEnvelope(t, rec, &p)
	if p.Amount != 250 || p.Date != "2023-10-02" {
		t.Fatalf("unexpected updated payment: %+v", p)
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/payments?workerId="+worker.ID, nil)
	var payments []ledger.Payment
	decodeEnvelope(t, rec, &payments)
	if len(payments) != 1 {
		t.Fatalf("expected one payment, got %d", len(payments))
	}

	if rec := srv.do(t, http.MethodDelete, "/api/v1/payments/"+p.ID, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete payment: unexpected status %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodDelete, "/api/v1/payments/"+p.ID, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing payment, got %d", rec.Code)
	}
}

func TestRouter_SnapshotAndReset(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	worker := srv.addWorker(t, "Rajesh Singh", 650)
	srv.do(t, http.MethodPut, "/api/v1/attendance/2023-10-01/"+worker.ID, map[string]any{"status": "present"})

	rec := srv.do(t, http.MethodGet, "/api/v1/snapshot", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Header().Get("Content-Disposition"), "shramik-hisab-2023-10-03.json") {
		t.Fatalf("unexpected export response: %d %v", rec.Code, rec.Header())
	}
	exported := rec.Body.String()

	if rec := srv.do(t, http.MethodPost, "/api/v1/reset", nil); rec.Code != http.StatusPreconditionRequired {
		t.Fatalf("expected reset without confirm to be refused, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodPost, "/api/v1/reset?confirm=true", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("reset: unexpected status %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/api/v1/snapshot?confirm=true", `{"workers":[]}`)
	if env := decodeEnvelope(t, rec, nil); rec.Code != http.StatusBadRequest || env.Error.Code != "invalid_import" {
		t.Fatalf("expected invalid_import, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/api/v1/snapshot?confirm=true", exported)
	var counts map[string]int
	decodeEnvelope(t, rec, &counts)
	if rec.Code != http.StatusOK || counts["workers"] != 1 || counts["payments"] != 1 {
		t.Fatalf("unexpected import response: %d %v", rec.Code, counts)
	}
}

func TestRouter_Reports(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	worker := srv.addWorker(t, "Anita Sharma", 550)
	srv.do(t, http.MethodPut, "/api/v1/attendance/2023-10-01/"+worker.ID, map[string]any{"status": "present"})

	rec := srv.do(t, http.MethodGet, "/api/v1/workers/"+worker.ID+"/statement.pdf", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/pdf" || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("unexpected statement response: %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/summary.xlsx", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("unexpected summary sheet response: %d", rec.Code)
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/workers/"+worker.ID+"/badge.png", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("unexpected badge response: %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/api/v1/workers/missing/badge.png", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown worker badge, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/summary", nil)
	var summaries []ledger.WorkerSummary
	decodeEnvelope(t, rec, &summaries)
	if len(summaries) != 1 || summaries[0].PresentDays != 1 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestRouter_PersistenceWarning(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	srv.store.fail = true

	rec := srv.do(t, http.MethodPost, "/api/v1/workers", map[string]any{"name": "Suresh Kumar", "phoneNumber": "9876543210", "dailyWage": 600})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected mutation to succeed in memory, got %d", rec.Code)
	}
	if rec.Header().Get("Warning") != middleware.PersistenceWarningValue {
		t.Fatalf("expected persistence warning header, got %q", rec.Header().Get("Warning"))
	}
}

func TestRouter_I18n(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	rec := srv.do(t, http.MethodGet, "/api/v1/i18n", nil)
	var view i18nView
	decodeEnvelope(t, rec, &view)
	if view.Language != "en" || view.Translations["nav.dashboard"] != "Dashboard" {
		t.Fatalf("unexpected i18n view: %+v", view.Language)
	}

	rec = srv.do(t, http.MethodPut, "/api/v1/i18n/language", map[string]string{"language": "fr"})
	if env := decodeEnvelope(t, rec, nil); rec.Code != http.StatusBadRequest || env.Error.Code != "unsupported_language" {
		t.Fatalf("expected unsupported_language, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPut, "/api/v1/i18n/language", map[string]string{"language": "hi"})
	decodeEnvelope(t, rec, &view)
	if rec.Code != http.StatusOK || view.Language != "hi" {
		t.Fatalf("unexpected language switch: %d %s", rec.Code, view.Language)
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(context.Context) error { return errors.New("db down") })
	if rec := srv.do(t, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz: unexpected status %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/readyz", nil); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz: expected 503, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/nope", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rec.Code)
	}
}
