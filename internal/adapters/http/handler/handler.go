package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/api"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/middleware"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
)

// Localizer は UI 文言の API が必要とする操作です。
type Localizer interface {
	SetLanguage(ctx context.Context, lang string) error
	Language() string
	Languages() []string
	Loading() bool
	Translations() map[string]string
}

// Handler は台帳の JSON API です。
type Handler struct {
	ledger    ledger.UseCase
	localizer Localizer
	logger    *slog.Logger
	now       func() time.Time
}

// NewHandler は Handler を生成します。localizer が nil の場合 /i18n は登録しません。
func NewHandler(svc ledger.UseCase, localizer Localizer, logger *slog.Logger, now func() time.Time) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{ledger: svc, localizer: localizer, logger: logger, now: now}
}

// RegisterRoutes は /api/v1 配下のルートを登録します。
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/workers", func(r chi.Router) {
		r.Get("/", h.handleListWorkers)
		r.Post("/", h.handleAddWorker)
		r.Get("/{workerID}", h.handleGetWorker)
		r.Patch("/{workerID}", h.handleUpdateWorker)
		r.Delete("/{workerID}", h.handleDeleteWorker)
		r.Get("/{workerID}/attendance", h.handleWorkerAttendance)
		r.Get("/{workerID}/balance", h.handleBalance)
		r.Get("/{workerID}/statement.pdf", h.handleStatement)
		r.Get("/{workerID}/badge.png", h.handleBadge)
	})

	r.Get("/attendance", h.handleAttendanceOn)
	r.Put("/attendance/{date}/{workerID}", h.handleMarkAttendance)
	r.Post("/attendance/{date}/{workerID}/checkout", h.handleCheckOut)

	r.Get("/payments", h.handleListPayments)
	r.Post("/payments", h.handleRecordPayment)
	r.Patch("/payments/{paymentID}", h.handleUpdatePayment)
	r.Delete("/payments/{paymentID}", h.handleDeletePayment)

	r.Get("/summary", h.handleSummary)
	r.Get("/summary.xlsx", h.handleSummarySheet)
	r.Get("/stats", h.handleStats)

	r.Get("/snapshot", h.handleExport)
	r.Post("/snapshot", h.handleImport)
	r.Post("/reset", h.handleReset)

	if h.localizer != nil {
		r.Get("/i18n", h.handleI18n)
		r.Put("/i18n/language", h.handleSetLanguage)
	}
}

// errMalformedBody は JSON ボディが読めなかったことを表します。
var errMalformedBody = errors.New("request body must be valid JSON")

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data", errMalformedBody)
	}
	return nil
}

func requestID(r *http.Request) string {
	return middleware.GetRequestID(r.Context())
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

func (h *Handler) failConfirmation(w http.ResponseWriter, r *http.Request, action string) {
	api.Fail(w, http.StatusPreconditionRequired, "confirmation_required", action+" requires ?confirm=true", requestID(r))
}
