package ws

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/config"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	gamePath   = "/game"
	healthPath = "/health"
)

type server struct {
	srv      *http.Server
	hub      domain.HubUseCase
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func New(hub domain.HubUseCase, cfg config.ServerConfig, logger *zap.Logger) *server {
	s := &server{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
	s.srv = &http.Server{
		Addr:              cfg.Port,
		Handler:           s.routes(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	return s
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(healthPath, s.healthCheck)
	r.HandleFunc(gamePath, s.serveWs)
	return r
}

// ListenAndServe blocks until the server stops. A regular Shutdown is not
// reported as an error.
func (s *server) ListenAndServe() error {
	s.logger.Info("starting listening address: " + s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithMessage(err, "listen and serve")
	}
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *server) Handler() http.Handler {
	return s.srv.Handler
}
