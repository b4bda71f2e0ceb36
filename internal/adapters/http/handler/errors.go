package handler

import (
	"errors"
	"net/http"

	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/api"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
	"github.com/ogurasousui/shramik-hisab/internal/core/localization"
)

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestID(r)

	var validationErr *ledger.ValidationError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &validationErr):
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": validationErr.Issues}, reqID)
	case errors.As(err, &maxErr):
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body is too large", reqID)
	case errors.Is(err, errMalformedBody):
		api.Fail(w, http.StatusBadRequest, "invalid_json", err.Error(), reqID)
	case errors.Is(err, ledger.ErrImportFormat):
		api.Fail(w, http.StatusBadRequest, "invalid_import", err.Error(), reqID)
	case errors.Is(err, localization.ErrUnsupportedLanguage):
		api.Fail(w, http.StatusBadRequest, "unsupported_language", err.Error(), reqID)
	case errors.Is(err, ledger.ErrValidation):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
	case errors.Is(err, ledger.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
	case errors.Is(err, ledger.ErrConflict):
		api.Fail(w, http.StatusConflict, "conflict", err.Error(), reqID)
	case errors.Is(err, ledger.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), reqID)
	default:
		h.logger.Error("request failed", "path", r.URL.Path, "requestId", reqID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "internal error", reqID)
	}
}
