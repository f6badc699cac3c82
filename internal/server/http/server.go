// Package http exposes the calculator API over HTTP: registration and login,
// bearer-protected arithmetic endpoints, history, health and Prometheus
// metrics.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/calcapi/internal/logging"
	"github.com/dmitrijs2005/calcapi/internal/server/auth"
	"github.com/dmitrijs2005/calcapi/internal/server/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// UserService registers users and logs them in.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// IdentityResolver turns a bearer token into the calling user.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Identity, error)
}

// OperationService performs arithmetic and keeps per-user history.
type OperationService interface {
	Add(ctx context.Context, userID string, num1, num2 float64) (*models.Operation, error)
	Subtract(ctx context.Context, userID string, num1, num2 float64) (*models.Operation, error)
	Multiply(ctx context.Context, userID string, num1, num2 float64) (*models.Operation, error)
	Root(ctx context.Context, userID string, number float64) (*models.Operation, error)
	History(ctx context.Context, userID string) ([]*models.Operation, error)
}

type HTTPServer struct {
	address  string
	users    UserService
	resolver IdentityResolver
	ops      OperationService
	logger   logging.Logger
	registry *prometheus.Registry
	metrics  *Metrics
}

func NewHTTPServer(a string, l logging.Logger, us UserService, r IdentityResolver, op OperationService) (*HTTPServer, error) {
	if us == nil || r == nil || op == nil {
		return nil, errors.New("http server: user service, resolver and operation service are required")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		users:    us,
		resolver: r,
		ops:      op,
		registry: registry,
		metrics:  NewMetrics(registry),
	}, nil
}

// Handler returns the fully wired router.
func (s *HTTPServer) Handler() http.Handler {
	return s.buildRouter()
}

// Run listens on the configured address until ctx is cancelled, then drains
// in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}
