// Package http exposes the JSON API: account registration and login,
// transaction capture, month summaries, daily history, categories, advice
// and report export.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"finpro/internal/auth"
	applog "finpro/internal/log"
	"finpro/internal/services"
)

type Server struct {
	http.Server
	finance  *services.FinanceService
	identity *auth.Service
	tokens   *auth.TokenIssuer

	limiter   *clientLimiter
	summaries *summaryCache

	now func() time.Time

	shutdownOnce sync.Once
}

// Options tunes the request-level behavior of the server.
type Options struct {
	SummaryCacheTTL time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
}

func defaultOptions() Options {
	return Options{
		SummaryCacheTTL: time.Minute,
		RateLimitRPS:    10,
		RateLimitBurst:  20,
	}
}

// NewServer configures the routes and returns a ready-to-run http.Server.
func NewServer(addr string, finance *services.FinanceService, identity *auth.Service, tokens *auth.TokenIssuer, opts Options) *Server {
	if opts.SummaryCacheTTL <= 0 {
		opts.SummaryCacheTTL = defaultOptions().SummaryCacheTTL
	}
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = defaultOptions().RateLimitRPS
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = defaultOptions().RateLimitBurst
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		finance:   finance,
		identity:  identity,
		tokens:    tokens,
		limiter:   newClientLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		summaries: newSummaryCache(opts.SummaryCacheTTL),
		now:       time.Now,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/auth/register", s.withRequestLogging(s.handleRegister))
	mux.HandleFunc("POST /api/auth/login", s.withRequestLogging(s.handleLogin))

	mux.HandleFunc("GET /api/summary", s.withRequestLogging(s.requireAuth(s.handleSummary)))
	mux.HandleFunc("GET /api/transactions", s.withRequestLogging(s.requireAuth(s.handleListTransactions)))
	mux.HandleFunc("POST /api/transactions", s.withRequestLogging(s.requireAuth(s.handleCreateTransaction)))
	mux.HandleFunc("GET /api/categories", s.withRequestLogging(s.requireAuth(s.handleCategories)))
	mux.HandleFunc("GET /api/advice", s.withRequestLogging(s.requireAuth(s.handleAdvice)))
	mux.HandleFunc("GET /api/reports/export", s.withRequestLogging(s.requireAuth(s.handleExportReport)))
	mux.HandleFunc("POST /api/reports/archive", s.withRequestLogging(s.requireAuth(s.handleArchiveReport)))

	// Every request carries a request-scoped logger with its request id.
	httpLogger := applog.New(applog.Config{
		Component: applog.ComponentHTTP,
		Handler:   slog.Default().Handler(),
	})
	s.Server.Handler = applog.Middleware(httpLogger)(
		applog.RequestIDMiddleware(func(*http.Request) string { return generateRequestID() })(mux))

	return s
}

// withRequestLogging adds security headers, rate limiting and request
// logging to responses.
func (s *Server) withRequestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := clientIPFromRequest(r)

		ctx := r.Context()
		logs := applog.NewStructuredLogger(applog.FromContext(ctx))
		logs.LogHTTPStart(ctx, r, clientIP)

		if !s.limiter.allow(clientIP) {
			applog.FromContext(ctx).WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		logs.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.stop()
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
