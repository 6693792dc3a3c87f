package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hongminglow/bookstore-be/internal/auth"
	"github.com/hongminglow/bookstore-be/internal/books"
	"github.com/hongminglow/bookstore-be/internal/config"
	"github.com/hongminglow/bookstore-be/internal/http/handlers"
	"github.com/hongminglow/bookstore-be/internal/http/respond"
	"github.com/hongminglow/bookstore-be/internal/middleware"
	"github.com/hongminglow/bookstore-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up services, middleware and routes, and returns a ready server.
func New(cfg config.Config, log *slog.Logger, users storage.UserStore, bookStore storage.BookStore) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, log, users, bookStore),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewHandler builds the full HTTP handler tree.
func NewHandler(cfg config.Config, log *slog.Logger, users storage.UserStore, bookStore storage.BookStore) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authSvc := auth.NewService(users, tokens)
	bookSvc := books.NewService(bookStore)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	r := mux.NewRouter()
	r.Use(metrics.Middleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	handlers.NewHealthHandler(time.Now()).Register(r)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.Use(middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst).Middleware)
	handlers.NewAuthHandler(authSvc, log).Register(authRouter)

	handlers.NewBookHandler(bookSvc, log).Register(r, middleware.RequireAuth(authSvc, log))

	return middleware.CORS(cfg.CORSOrigins)(middleware.Logging(log)(r))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
