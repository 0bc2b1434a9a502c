// Package server assembles the HTTP surface: Connect services, statement
// downloads, metrics and health endpoints.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/billwise/internal/auth"
	"github.com/mmynk/billwise/internal/ledger"
	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/middleware"
	"github.com/mmynk/billwise/internal/service"
	"github.com/mmynk/billwise/internal/statement"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the router is built from.
type Deps struct {
	Ledger     *ledger.Ledger
	JWTManager *auth.JWTManager
	Metrics    *metrics.Metrics
	Health     Pinger
}

// NewRouter builds the chi router serving every endpoint.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORS)

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(d.Metrics),
		middleware.RequireAuth(d.JWTManager),
		middleware.LoggingInterceptor(),
	)
	service.Register(r, d.Ledger, interceptors)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuthHTTP(d.JWTManager))
		statement.NewHandler(d.Ledger).Routes(r)
	})

	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	r.Get("/healthz", healthz(d.Health))
	return r
}

func healthz(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if p != nil {
			if err := p.Ping(ctx); err != nil {
				slog.Warn("Health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]any{"ok": false})
				return
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

// NewHTTPServer wraps h with h2c so Connect clients can use HTTP/2 without
// TLS.
func NewHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(h, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
