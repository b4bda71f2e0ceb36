package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/api"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/report"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.ledger.ListWorkerSummaries(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []ledger.WorkerSummary{}
	}
	api.Success(w, summaries, requestID(r))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ledger.TodayStats(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, stats, requestID(r))
}

func (h *Handler) handleSummarySheet(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.ledger.ListWorkerSummaries(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteSummary(&buf, summaries); err != nil {
		h.fail(w, r, err)
		return
	}
	name := fmt.Sprintf("worker-summary-%s.xlsx", h.now().Format(ledger.DateLayout))
	writeFile(w, xlsxContentType, name, buf.Bytes())
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workerID := chi.URLParam(r, "workerID")

	summary, err := h.ledger.WorkerSummary(ctx, workerID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	history, err := h.ledger.WorkerAttendance(ctx, workerID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	payments, err := h.ledger.ListPayments(ctx, ledger.PaymentFilter{WorkerID: workerID})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteStatement(&buf, report.Statement{
		Summary:     *summary,
		Attendance:  history,
		Payments:    payments,
		GeneratedAt: h.now(),
	}); err != nil {
		h.fail(w, r, err)
		return
	}
	writeFile(w, "application/pdf", "statement-"+workerID+".pdf", buf.Bytes())
}

func (h *Handler) handleBadge(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	if _, err := h.ledger.GetWorker(r.Context(), workerID); err != nil {
		h.fail(w, r, err)
		return
	}

	png, err := report.Badge(workerID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func writeFile(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
