package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/api"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
)

type recordPaymentPayload struct {
	WorkerID string  `json:"workerId"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Note     string  `json:"note"`
}

type updatePaymentPayload struct {
	Amount *float64 `json:"amount"`
	Date   *string  `json:"date"`
	Note   *string  `json:"note"`
}

func (h *Handler) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.ledger.ListPayments(r.Context(), ledger.PaymentFilter{WorkerID: r.URL.Query().Get("workerId")})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if payments == nil {
		payments = []ledger.Payment{}
	}
	api.Success(w, payments, requestID(r))
}

func (h *Handler) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var payload recordPaymentPayload
	if err := decodeJSON(r, &payload); err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.ledger.RecordPayment(r.Context(), ledger.RecordPaymentInput{
		WorkerID: payload.WorkerID,
		Amount:   payload.Amount,
		Date:     payload.Date,
		Note:     payload.Note,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, p, requestID(r))
}

func (h *Handler) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	var payload updatePaymentPayload
	if err := decodeJSON(r, &payload); err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.ledger.UpdatePayment(r.Context(), ledger.UpdatePaymentInput{
		ID:     chi.URLParam(r, "paymentID"),
		Amount: payload.Amount,
		Date:   payload.Date,
		Note:   payload.Note,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, p, requestID(r))
}

func (h *Handler) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeletePayment(r.Context(), chi.URLParam(r, "paymentID")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
