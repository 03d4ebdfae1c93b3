package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"saldo/internal/log"
	"saldo/internal/middleware/ratelimit"
	"saldo/internal/middleware/security"
	"saldo/internal/middleware/trace"
)

// Options tunes the server; the zero value gives the defaults.
type Options struct {
	Logger *log.Logger
	// RateLimitPerMinute caps POST requests per client IP.
	RateLimitPerMinute int
	Headers            *security.HeadersConfig
}

type Server struct {
	http.Server
	svc         TransactionService
	logger      *log.Logger
	rateLimiter *ratelimit.Limiter
	detector    *security.Detector
	tracer      *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc TransactionService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	headers := security.DefaultHeadersConfig()
	if opts.Headers != nil {
		headers = *opts.Headers
	}

	s := &Server{
		svc:         svc,
		logger:      logger.WithComponent(log.ComponentHTTP),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector:    security.NewDetector(),
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	mux := http.NewServeMux()
	mux.HandleFunc("/transactions", s.handleListTransactions)
	mux.HandleFunc("/transaction", s.handleCreateTransaction)
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/summary", s.handleSummary)
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/", notFound)

	onLimit := func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldClientIP, s.detector.ExtractClientIP(r),
			log.FieldPath, r.URL.Path)
		TooManyRequestsError().Write(w)
	}

	s.Server = http.Server{
		Addr: addr,
		Handler: chain(mux,
			s.tracer.Middleware,
			security.NewHeadersMiddleware(headers).Middleware,
			s.detector.Middleware,
			s.rateLimiter.Middleware(s.detector.ExtractClientIP, onLimit, http.MethodPost),
		),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// RunBackground runs the server's housekeeping until ctx is done.
func (s *Server) RunBackground(ctx context.Context) error {
	return s.rateLimiter.Run(ctx)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		m := s.tracer.GetMetrics()
		s.logger.InfoContext(ctx, "HTTP server shutting down",
			"total_requests", m.TotalRequests,
			"server_errors", m.ServerErrors,
			"rate_limit_hits", s.rateLimiter.GetMetrics().TotalHits,
			"suspicious_requests", s.detector.GetMetrics().SuspiciousRequests)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
