package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/config"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// echoHub greets the client, then echoes every message back until the
// client closes the connection.
type echoHub struct {
	uuids chan string
}

func (h *echoHub) Handle(_ context.Context, client domain.Client) error {
	h.uuids <- client.Uuid()
	if err := client.WriteMessage(domain.Message{Type: domain.RequestDifficulty}); err != nil {
		return err
	}
	for {
		msg, err := client.ReadMessage()
		if err != nil {
			return nil
		}
		if err := client.WriteMessage(msg); err != nil {
			return err
		}
	}
}

func (h *echoHub) ActiveSessions() int64 {
	return 3
}

func newTestServer(t *testing.T) (*httptest.Server, *echoHub) {
	t.Helper()
	hub := &echoHub{uuids: make(chan string, 1)}
	s := New(hub, config.ServerConfig{Port: ":0"}, zap.NewNop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, hub
}

func TestServer_HealthCheck(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + healthPath)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body domain.HealthCheckResponse
	require.NoError(t, jsoniter.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, int64(3), body.ActiveSessions)
}

func TestServer_Game(t *testing.T) {
	ts, hub := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + gamePath
	header := http.Header{}
	header.Set(domain.ClientUuidHeader, "  client-42 ")

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	assert.Equal(t, "client-42", <-hub.uuids)

	var greeting domain.Message
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, domain.RequestDifficulty, greeting.Type)

	require.NoError(t, conn.WriteJSON(domain.Message{
		Type:    domain.SelectDifficulty,
		Payload: domain.SelectDifficultyPayload{Difficulty: domain.Hard},
	}))
	var echoed domain.Message
	require.NoError(t, conn.ReadJSON(&echoed))
	assert.Equal(t, domain.SelectDifficulty, echoed.Type)
	assert.Equal(t, map[string]any{"Difficulty": "hard"}, echoed.Payload)
}

func TestServer_UnknownRoute(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
