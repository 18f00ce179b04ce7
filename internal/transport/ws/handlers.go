package ws

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"go.uber.org/zap"
)

func (s *server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(err.Error())
		return
	}
	clientUuid := strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))
	s.logger.Info("new connection", zap.String("client uuid", clientUuid), zap.String("remote", r.RemoteAddr))
	client := newClient(conn, clientUuid)
	defer client.Close()
	if err := s.hub.Handle(r.Context(), client); err != nil {
		s.logger.Error(err.Error())
	}
}

func (s *server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	resp := domain.HealthCheckResponse{
		Status:         "ok",
		ActiveSessions: s.hub.ActiveSessions(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := jsoniter.NewEncoder(w).Encode(resp); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Warn(err.Error())
	}
}
