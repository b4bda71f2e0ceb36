package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/api"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/http/middleware"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
)

// RouterOptions は NewRouter の設定です。
type RouterOptions struct {
	Localizer    Localizer
	Logger       *slog.Logger
	MaxBodyBytes int64
	Now          func() time.Time
	// Ready は /readyz で呼ばれます。nil の場合は常に準備完了です。
	Ready func(ctx context.Context) error
}

// NewRouter は JSON API 全体の http.Handler を構築します。
func NewRouter(svc ledger.UseCase, opts RouterOptions) http.Handler {
	h := NewHandler(svc, opts.Localizer, opts.Logger, opts.Now)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.BodyLimit(opts.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := opts.Ready(ctx); err != nil {
				http.Error(w, "storage not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PersistenceWarning(func() int { return svc.PersistenceStatus().Failures }))
		h.RegisterRoutes(r)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})

	return router
}
