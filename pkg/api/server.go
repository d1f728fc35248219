package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/attendance-report/pkg/logger"
)

// StopHook runs after the server has stopped accepting requests.
type StopHook func(ctx context.Context) error

// Server wraps http.Server with graceful shutdown and stop hooks.
type Server struct {
	cfg       Config
	log       *slog.Logger
	stopHooks []StopHook
	listener  net.Listener

	mu   sync.Mutex
	srv  *http.Server
	once sync.Once
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the logger.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStopHook registers a hook run once during shutdown, after in-flight
// requests have finished. Hook errors are logged.
func WithStopHook(h StopHook) ServerOption {
	return func(s *Server) {
		if h != nil {
			s.stopHooks = append(s.stopHooks, h)
		}
	}
}

// WithListener serves on an existing listener instead of Config.Addr.
func WithListener(l net.Listener) ServerOption {
	return func(s *Server) { s.listener = l }
}

// NewServer returns a configured Server.
func NewServer(cfg Config, opts ...ServerOption) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	s := &Server{cfg: cfg, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves handler and blocks until ctx is cancelled or the server fails.
// Cancellation triggers a graceful shutdown; Run then returns nil.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.log.Handler(), slog.LevelError),
	}
	s.srv = srv
	s.mu.Unlock()

	ln := s.listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", srv.Addr); err != nil {
			return errors.Join(ErrStart, err)
		}
	}

	s.log.InfoContext(ctx, "http server started", logger.Component("api"), slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	var runErr error
	select {
	case <-ctx.Done():
		_ = s.Shutdown(context.WithoutCancel(ctx))
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// Shutdown stops the server gracefully and runs the stop hooks. Repeated
// calls are no-ops.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	var err error
	s.once.Do(func() {
		shutdownCtx, cancel := s.withTimeout(ctx)
		defer cancel()
		err = srv.Shutdown(shutdownCtx)

		// stop hooks get a fresh timeout of their own
		hookCtx, cancelHooks := s.withTimeout(context.WithoutCancel(ctx))
		defer cancelHooks()
		for _, h := range s.stopHooks {
			if herr := h(hookCtx); herr != nil {
				s.log.ErrorContext(ctx, "stop hook failed", logger.Component("api"), logger.Error(herr))
			}
		}
		s.log.InfoContext(ctx, "http server stopped", logger.Component("api"))
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}

func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.ShutdownTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	}
	return context.WithCancel(ctx)
}
