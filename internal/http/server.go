// Package http serves the JSON API for spending records and their derived
// analytics.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"spendwise/internal/middleware/trace"
	"spendwise/internal/services"
)

type Server struct {
	http.Server
	records   *services.RecordService
	analytics *services.AnalyticsService

	rateLimiter *rateLimiter
	metrics     *securityMetrics
	tracer      *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, records *services.RecordService, analytics *services.AnalyticsService) *Server {
	s := &Server{
		records:     records,
		analytics:   analytics,
		rateLimiter: newRateLimiter(),
		metrics:     &securityMetrics{},
		tracer:      trace.NewMiddleware(extractClientIP),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("GET /api/budgets/{id}", s.handleGetBudget)
	mux.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)

	mux.HandleFunc("GET /api/analytics/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/analytics/performance", s.handlePerformance)
	mux.HandleFunc("GET /api/analytics/comparison", s.handleComparison)
	mux.HandleFunc("GET /api/analytics/status", s.handleStatus)
	mux.HandleFunc("GET /api/analytics/insights", s.handleInsights)
	mux.HandleFunc("GET /api/analytics/monthly", s.handleMonthlySeries)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Middleware(s.withSecurity(mux)),
	}

	return s
}

// withSecurity applies security headers and rate limits mutating requests.
func (s *Server) withSecurity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := extractClientIP(r)

		if detectSuspiciousRequest(r, s.metrics) {
			slog.WarnContext(r.Context(), "Suspicious request",
				"client_ip", clientIP,
				"method", r.Method,
				"path", r.URL.Path)
		}

		setSecurityHeaders(w)

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP, s.metrics) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", clientIP,
				"method", r.Method,
				"path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// Shutdown stops background goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
