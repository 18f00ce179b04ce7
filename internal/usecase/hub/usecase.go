package hub

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var ErrSessionAlreadyActive = errors.New("session with this client key is already active")

type identifiedClient struct {
	domain.Client
	uuid string
}

func (c identifiedClient) Uuid() string {
	return c.uuid
}

type useCase struct {
	game     domain.GameUseCase
	sessions map[string]time.Time
	active   *atomic.Int64
	mu       *sync.RWMutex
	logger   *zap.Logger
}

func New(game domain.GameUseCase, logger *zap.Logger) *useCase {
	return &useCase{
		game:     game,
		sessions: make(map[string]time.Time),
		active:   atomic.NewInt64(0),
		mu:       &sync.RWMutex{},
		logger:   logger,
	}
}

// Handle runs one session per connected client until the client leaves.
func (u *useCase) Handle(ctx context.Context, client domain.Client) error {
	if client.Uuid() == "" {
		client = identifiedClient{Client: client, uuid: uuid.NewString()}
	}
	clientUuid := client.Uuid()
	if err := u.register(clientUuid); err != nil {
		return err
	}
	defer u.unregister(clientUuid)
	if err := u.game.Play(ctx, client); err != nil {
		return errors.WithMessage(err, "play game")
	}
	return nil
}

func (u *useCase) register(clientUuid string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.sessions[clientUuid]; ok {
		return errors.WithMessagef(ErrSessionAlreadyActive, "'%s'", clientUuid)
	}
	u.sessions[clientUuid] = time.Now()
	u.active.Inc()
	u.logger.Info("session opened", zap.String("session", clientUuid), zap.Int64("active", u.active.Load()))
	return nil
}

func (u *useCase) unregister(clientUuid string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	startedAt, ok := u.sessions[clientUuid]
	if !ok {
		return
	}
	delete(u.sessions, clientUuid)
	u.active.Dec()
	u.logger.Info("session closed",
		zap.String("session", clientUuid),
		zap.Duration("duration", time.Since(startedAt)),
		zap.Int64("active", u.active.Load()),
	)
}

func (u *useCase) ActiveSessions() int64 {
	return u.active.Load()
}
