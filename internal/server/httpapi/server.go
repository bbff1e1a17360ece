// Package httpapi exposes the todo service over HTTP/JSON using echo.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, req services.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req services.SigninRequest) (string, error)
}

type TodoService interface {
	List(ctx context.Context, userID string) ([]*models.Todo, error)
	Create(ctx context.Context, userID string, req services.CreateTodoRequest) (*models.Todo, error)
	Update(ctx context.Context, userID, todoID string, req services.UpdateTodoRequest) (*models.Todo, error)
}

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Pinger reports database reachability for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address         string
	shutdownTimeout time.Duration
	logger          logging.Logger
	echo            *echo.Echo
}

type Deps struct {
	Users  UserService
	Todos  TodoService
	Tokens TokenVerifier
	DB     Pinger
}

func NewServer(address string, shutdownTimeout time.Duration, l logging.Logger, d Deps) *Server {
	logger := l.With("module", "http_server")
	return &Server{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
		echo:            newRouter(logger, d, newMetrics()),
	}
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
