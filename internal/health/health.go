// Package health exposes the liveness and readiness HTTP surface.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vtask/internal/service"
)

// readyTimeout bounds the readiness probe's backend check.
const readyTimeout = 3 * time.Second

// NewServer returns the health router. /health reports process liveness;
// /ready additionally checks that the task API answers.
func NewServer(svc service.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/ready", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), readyTimeout)
		defer cancel()
		if _, err := svc.ListTasks(ctx, service.Query{}); err != nil {
			http.Error(w, "task api unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	return r
}
