package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/api"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
)

type markAttendancePayload struct {
	Status ledger.Status `json:"status"`
}

func (h *Handler) handleAttendanceOn(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.ledger.AttendanceOn(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if sheet == nil {
		sheet = []ledger.Attendance{}
	}
	api.Success(w, sheet, requestID(r))
}

func (h *Handler) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var payload markAttendancePayload
	if err := decodeJSON(r, &payload); err != nil {
		h.fail(w, r, err)
		return
	}

	att, err := h.ledger.MarkAttendance(r.Context(), ledger.MarkAttendanceInput{
		WorkerID: chi.URLParam(r, "workerID"),
		Date:     chi.URLParam(r, "date"),
		Status:   payload.Status,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, att, requestID(r))
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	att, err := h.ledger.CheckOut(r.Context(), chi.URLParam(r, "workerID"), chi.URLParam(r, "date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, att, requestID(r))
}
