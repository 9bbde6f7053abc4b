package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"smart-home-mock/internal/domain"
)

// Dispatcher handles one Smart Home request.
type Dispatcher interface {
	Handle(ctx context.Context, req *domain.Request) (*domain.Response, error)
}

type ApplianceLister interface {
	Discover() []domain.Appliance
	Find(id string) (domain.Appliance, bool)
}

// InvocationLister returns recent invocations, newest first.
type InvocationLister interface {
	List(ctx context.Context, limit int) ([]domain.Invocation, error)
}

type Config struct {
	Addr          string
	RateLimit     int
	RateWindow    time.Duration
	ShutdownGrace time.Duration
}

type Server struct {
	cfg         Config
	dispatcher  Dispatcher
	appliances  ApplianceLister
	history     InvocationLister
	logger      *slog.Logger
	rateLimiter *RateLimiter
	router      chi.Router
	server      *http.Server
	mu          sync.Mutex
	running     bool
}

// NewServer builds the router. history may be nil when the audit log is disabled.
func NewServer(cfg Config, dispatcher Dispatcher, appliances ApplianceLister, history InvocationLister, logger *slog.Logger) *Server {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 30
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = 10 * time.Second
	}

	s := &Server{
		cfg:         cfg,
		dispatcher:  dispatcher,
		appliances:  appliances,
		history:     history,
		logger:      logger,
		rateLimiter: NewRateLimiter(cfg.RateLimit, cfg.RateWindow),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimiter.Middleware)
		r.Post("/alexa/smarthome", s.handleSmartHome)
		r.Get("/alexa/ws", s.handleWebSocket)
	})

	r.Route("/appliances", func(r chi.Router) {
		r.Get("/", s.handleListAppliances)
		r.Get("/{id}", s.handleGetAppliance)
	})

	r.Get("/invocations", s.handleListInvocations)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	return r
}

func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	s.server = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		s.logger.Info("HTTP server starting", "addr", s.cfg.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	s.running = true
	return nil
}

func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Warn("graceful shutdown failed, forcing close", "error", err)
			if err := s.server.Close(); err != nil {
				return fmt.Errorf("closing server: %w", err)
			}
		}
	}

	s.running = false
	return nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
