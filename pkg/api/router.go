package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/attendance-report/pkg/binder"
	"github.com/dmitrymomot/attendance-report/pkg/handler"
	"github.com/dmitrymomot/attendance-report/pkg/logger"
	"github.com/dmitrymomot/attendance-report/pkg/requestid"
	"github.com/dmitrymomot/attendance-report/svc/reporting"
)

// NewRouter mounts every route on a chi router.
func NewRouter(svc *reporting.Service, log *slog.Logger) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &handlers{svc: svc}

	jsonBody := handler.WithBinders(binder.JSON())
	pathParams := handler.WithBinders(binder.Path(chi.URLParam))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(log))

	r.Get("/healthz", handler.Wrap(h.health))
	r.Get("/reasons", handler.Wrap(h.reasons))
	r.Get("/snapshot", handler.Wrap(h.snapshot))

	r.Route("/people", func(r chi.Router) {
		r.Get("/", handler.Wrap(h.listPeople))
		r.Post("/", handler.Wrap(h.addPerson, jsonBody))
		r.Delete("/reasons", handler.Wrap(h.clearReasons))
		r.Delete("/{chinese_name}", handler.Wrap(h.removePerson, pathParams))
		r.Put("/{chinese_name}/reasons/{reason}", handler.Wrap(h.setReason(true), pathParams))
		r.Delete("/{chinese_name}/reasons/{reason}", handler.Wrap(h.setReason(false), pathParams))
	})

	r.Route("/recipients", func(r chi.Router) {
		r.Get("/", handler.Wrap(h.listRecipients))
		r.Post("/", handler.Wrap(h.addRecipient, jsonBody))
		r.Delete("/{address}", handler.Wrap(h.removeRecipient, pathParams))
	})

	r.Get("/profile", handler.Wrap(h.getProfile))
	r.Put("/profile", handler.Wrap(h.updateProfile, jsonBody))

	r.Route("/report", func(r chi.Router) {
		r.Get("/", handler.Wrap(h.getReport))
		r.Post("/", handler.Wrap(h.generateReport))
		r.Put("/", handler.Wrap(h.editReport, jsonBody))
		r.Post("/send", handler.Wrap(h.sendReport))
	})

	r.Post("/settings/save", handler.Wrap(h.saveSettings))

	return r
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "http request",
				logger.Component("api"),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
