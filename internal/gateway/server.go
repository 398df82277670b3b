// Package gateway provides the HTTP gateway server.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"

	"posterbot/internal/config"
	"posterbot/internal/dispatch"
	"posterbot/internal/gateway/handlers"
	"posterbot/internal/gateway/middleware"
	"posterbot/internal/signature"
	"posterbot/pkg/logger"
)

// Server represents the HTTP gateway server.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	config     *config.Config
	dispatcher *dispatch.Dispatcher
	version    string
	started    atomic.Int64 // unix nanos, set by Serve
}

// NewServer creates a new gateway server. Routes are registered immediately.
func NewServer(cfg *config.Config, d *dispatch.Dispatcher, version string) *Server {
	router := mux.NewRouter()

	// Apply middleware chain: Recovery -> RequestID -> Logging
	handler := middleware.Recovery(
		middleware.RequestID(
			middleware.Logging(router),
		),
	)

	readTimeout := cfg.Gateway.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:              cfg.Gateway.Addr(),
			Handler:           handler,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readTimeout,
			WriteTimeout:      readTimeout,
			IdleTimeout:       120 * time.Second,
		},
		router:     router,
		config:     cfg,
		dispatcher: d,
		version:    version,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the server routes.
func (s *Server) setupRoutes() {
	webhook := handlers.NewWebhookHandler(handlers.WebhookConfig{
		VerifyToken:      s.config.Messenger.VerifyToken,
		Verifier:         signature.NewVerifier(s.config.Messenger.AppSecret),
		RequireSignature: s.config.Messenger.RequireSignature,
		MaxBodyBytes:     s.config.Gateway.MaxBodyBytes,
	}, s.dispatcher)

	s.router.HandleFunc("/webhook", webhook.Verify).Methods(http.MethodGet)
	s.router.HandleFunc("/webhook", webhook.Receive).Methods(http.MethodPost)
	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.SendError(w, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.SendError(w, http.StatusMethodNotAllowed, handlers.ErrCodeInvalidRequest, "method not allowed")
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.started.Store(time.Now().UnixNano())

	logger.Info().
		Str("addr", ln.Addr().String()).
		Msg("Starting gateway server")

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	handlers.HealthHandler(s.version, s.StartedAt())(w, r)
}

// StartedAt returns when Serve began accepting connections, or the zero time.
func (s *Server) StartedAt() time.Time {
	if ns := s.started.Load(); ns != 0 {
		return time.Unix(0, ns)
	}
	return time.Time{}
}

// Shutdown stops accepting requests, then waits for in-flight replies.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info().Msg("Shutting down gateway server")

	timeout := s.config.Gateway.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.Wait(shutdownCtx); err != nil {
			return fmt.Errorf("drain replies: %w", err)
		}
	}

	return nil
}

// Handler returns the full middleware-wrapped handler for testing.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Router returns the underlying router for testing.
func (s *Server) Router() *mux.Router {
	return s.router
}
