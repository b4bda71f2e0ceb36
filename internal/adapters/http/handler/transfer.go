package handler

import (
	"io"
	"net/http"

	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/api"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
)

// handleExport はエクスポートファイルをダウンロード形式で返します。
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := h.ledger.ExportSnapshot(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	blob, err := ledger.MarshalSnapshot(snap)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeFile(w, "application/json", "shramik-hisab-"+h.now().Format(ledger.DateLayout)+".json", blob)
}

// handleImport はボディのエクスポートファイルで全データを置き換えます。
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		h.failConfirmation(w, r, "import")
		return
	}

	blob, err := io.ReadAll(r.Body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.ledger.ImportSnapshot(r.Context(), blob); err != nil {
		h.fail(w, r, err)
		return
	}

	snap, err := h.ledger.ExportSnapshot(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]int{
		"workers":        len(snap.Workers),
		"attendanceDays": len(snap.AllAttendance),
		"payments":       len(snap.Payments),
	}, requestID(r))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		h.failConfirmation(w, r, "reset")
		return
	}
	if err := h.ledger.ResetAll(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
