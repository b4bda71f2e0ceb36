package handler

import (
	"net/http"

	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/api"
)

type i18nView struct {
	Language     string            `json:"language"`
	Languages    []string          `json:"languages"`
	Loading      bool              `json:"loading"`
	Translations map[string]string `json:"translations"`
}

type setLanguagePayload struct {
	Language string `json:"language"`
}

func (h *Handler) i18nState() i18nView {
	return i18nView{
		Language:     h.localizer.Language(),
		Languages:    h.localizer.Languages(),
		Loading:      h.localizer.Loading(),
		Translations: h.localizer.Translations(),
	}
}

func (h *Handler) handleI18n(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.i18nState(), requestID(r))
}

// handleSetLanguage は翻訳の準備が終わるまで応答を返しません。
func (h *Handler) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var payload setLanguagePayload
	if err := decodeJSON(r, &payload); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.localizer.SetLanguage(r.Context(), payload.Language); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, h.i18nState(), requestID(r))
}
