// Package gateway exposes the swap pipeline over HTTP: token listings, quote
// requests, swap execution, and status queries, plus Prometheus metrics.
package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
	"github.com/tarun-khatri/profitpath-smart-swap/intent"
	"github.com/tarun-khatri/profitpath-smart-swap/observability"
	"github.com/tarun-khatri/profitpath-smart-swap/pipeline"
	"github.com/tarun-khatri/profitpath-smart-swap/registry"
)

const (
	requestTimeout    = 150 * time.Second
	rateLimitRequests = 60
	rateLimitWindow   = time.Minute
)

// StatusSource answers transaction status queries.
type StatusSource interface {
	TransactionStatus(ctx context.Context, handle *types.TxHandle) (types.TxStatus, error)
}

// Server is the HTTP gateway over the swap pipeline.
type Server struct {
	registry *registry.Registry
	resolver *intent.Resolver
	pipeline *pipeline.Pipeline
	statuses StatusSource
	wallets  *types.WalletSet
	metrics  *observability.Metrics
	logger   *logrus.Logger
}

// Config carries the gateway's collaborators. Wallets may be nil, in which
// case swap execution is disabled and only quoting endpoints serve.
type Config struct {
	Registry *registry.Registry
	Resolver *intent.Resolver
	Pipeline *pipeline.Pipeline
	Statuses StatusSource
	Wallets  *types.WalletSet
	Metrics  *observability.Metrics
}

// NewServer creates the gateway.
func NewServer(cfg Config, logger *logrus.Logger) *Server {
	return &Server{
		registry: cfg.Registry,
		resolver: cfg.Resolver,
		pipeline: cfg.Pipeline,
		statuses: cfg.Statuses,
		wallets:  cfg.Wallets,
		metrics:  cfg.Metrics,
		logger:   logger,
	}
}

// Router builds the HTTP handler with rate limiting, CORS, and metrics.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(httprate.LimitByIP(rateLimitRequests, rateLimitWindow))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/tokens/chains", s.handleChains)
		r.Get("/tokens", s.handleTokens)
		r.Post("/intent", s.handleIntent)
		r.Post("/quote", s.handleQuote)
		r.Post("/swap", s.handleSwap)
		r.Get("/status", s.handleStatus)
	})

	r.Handle("/metrics", promhttp.Handler())

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}

// logRequests logs one line per request with latency.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  ww.Status(),
			"elapsed": time.Since(start).String(),
		}).Info("Request handled")
	})
}
