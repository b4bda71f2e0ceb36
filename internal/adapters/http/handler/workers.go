package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/api"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
)

type addWorkerPayload struct {
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phoneNumber"`
	DailyWage   float64 `json:"dailyWage"`
	PhotoURL    string  `json:"photoUrl"`
}

type updateWorkerPayload struct {
	Name        *string  `json:"name"`
	PhoneNumber *string  `json:"phoneNumber"`
	DailyWage   *float64 `json:"dailyWage"`
	PhotoURL    *string  `json:"photoUrl"`
}

type balanceView struct {
	WorkerID  string              `json:"workerId"`
	WageOwed  float64             `json:"wageOwed"`
	TotalPaid float64             `json:"totalPaid"`
	Balance   float64             `json:"balance"`
	State     ledger.BalanceState `json:"state"`
	Label     string              `json:"label"`
}

func (h *Handler) handleListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.ledger.ListWorkers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if workers == nil {
		workers = []ledger.Worker{}
	}
	api.Success(w, workers, requestID(r))
}

func (h *Handler) handleAddWorker(w http.ResponseWriter, r *http.Request) {
	var payload addWorkerPayload
	if err := decodeJSON(r, &payload); err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.ledger.AddWorker(r.Context(), ledger.AddWorkerInput{
		Name:        payload.Name,
		PhoneNumber: payload.PhoneNumber,
		DailyWage:   payload.DailyWage,
		PhotoURL:    payload.PhotoURL,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, created, requestID(r))
}

// handleGetWorker は作業員と集計をまとめて返します。
func (h *Handler) handleGetWorker(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledger.WorkerSummary(r.Context(), chi.URLParam(r, "workerID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, summary, requestID(r))
}

func (h *Handler) handleUpdateWorker(w http.ResponseWriter, r *http.Request) {
	var payload updateWorkerPayload
	if err := decodeJSON(r, &payload); err != nil {
		h.fail(w, r, err)
		return
	}

	updated, err := h.ledger.UpdateWorker(r.Context(), ledger.UpdateWorkerInput{
		ID:          chi.URLParam(r, "workerID"),
		Name:        payload.Name,
		PhoneNumber: payload.PhoneNumber,
		DailyWage:   payload.DailyWage,
		PhotoURL:    payload.PhotoURL,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, updated, requestID(r))
}

func (h *Handler) handleDeleteWorker(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeleteWorker(r.Context(), chi.URLParam(r, "workerID")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleWorkerAttendance(w http.ResponseWriter, r *http.Request) {
	history, err := h.ledger.WorkerAttendance(r.Context(), chi.URLParam(r, "workerID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if history == nil {
		history = []ledger.Attendance{}
	}
	api.Success(w, history, requestID(r))
}

// handleBalance は ?through=YYYY-MM-DD で賃金の集計範囲を絞れます。残高は常に全期間です。
func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workerID := chi.URLParam(r, "workerID")

	owed, err := h.ledger.WageOwed(ctx, workerID, r.URL.Query().Get("through"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	paid, err := h.ledger.TotalPaid(ctx, workerID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	balance, err := h.ledger.Balance(ctx, workerID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	api.Success(w, balanceView{
		WorkerID:  workerID,
		WageOwed:  owed,
		TotalPaid: paid,
		Balance:   balance,
		State:     ledger.StateOf(balance),
		Label:     ledger.FormatBalance(balance),
	}, requestID(r))
}
