package game

import (
	"context"
	"time"

	"github.com/kiryu-dev/tic-tac-toe-bot/internal/config"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/kiryu-dev/tic-tac-toe-bot/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type useCase struct {
	bot    domain.BotUseCase
	cfg    config.GameConfig
	logger *zap.Logger
}

func New(bot domain.BotUseCase, cfg config.GameConfig, logger *zap.Logger) useCase {
	return useCase{
		bot:    bot,
		cfg:    cfg,
		logger: logger,
	}
}

type eventKind byte

const (
	opponentMoveEvent = eventKind(iota)
	autoResetEvent
)

// event is produced by a timer. It is applied only while the session still
// has the generation the timer was armed for.
type event struct {
	kind       eventKind
	generation uint64
	position   byte
	err        error
}

type match struct {
	client     domain.Client
	session    domain.Session
	generation *atomic.Uint64
	events     chan event
	timer      *time.Timer
	done       chan struct{}
	logger     *zap.Logger
}

func (u useCase) Play(ctx context.Context, client domain.Client) error {
	m := &match{
		client:     client,
		session:    domain.NewSession(client.Uuid()),
		generation: atomic.NewUint64(0),
		events:     make(chan event),
		done:       make(chan struct{}),
		logger:     u.logger.With(zap.String("session", client.Uuid())),
	}
	defer m.close()
	messages, readErr := m.readMessages()
	if err := m.send(domain.Message{Type: domain.RequestDifficulty}); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if errors.Is(err, domain.ErrConnectionClosed) {
				m.logger.Info("client disconnected")
				return nil
			}
			return errors.WithMessage(err, "read message from client")
		case msg := <-messages:
			if err := u.handleMessage(m, msg); err != nil {
				return errors.WithMessage(err, "handle client message")
			}
		case ev := <-m.events:
			if ev.generation != m.session.Generation {
				m.logger.Debug("discard stale event", zap.Uint64("generation", ev.generation))
				continue
			}
			if err := u.handleEvent(m, ev); err != nil {
				return errors.WithMessage(err, "handle scheduled event")
			}
		}
	}
}

func (m *match) readMessages() (<-chan domain.Message, <-chan error) {
	messages := make(chan domain.Message)
	errChan := make(chan error, 1)
	go func() {
		for {
			msg, err := m.client.ReadMessage()
			if err != nil {
				errChan <- err
				return
			}
			select {
			case messages <- msg:
			case <-m.done:
				return
			}
		}
	}()
	return messages, errChan
}

func (u useCase) handleMessage(m *match, msg domain.Message) error {
	switch msg.Type {
	case domain.SelectDifficulty:
		return u.selectDifficulty(m, msg.Payload)
	case domain.PlayerMove:
		return u.playerMove(m, msg.Payload)
	case domain.ResetGame:
		session, err := m.session.Reset()
		if err != nil {
			m.logger.Info("reset before difficulty selection", zap.Error(err))
			return m.send(domain.Message{Type: domain.RequestDifficulty})
		}
		m.setSession(session)
		return u.startGame(m)
	case domain.BackToStart:
		m.setSession(m.session.BackToStart())
		return m.send(domain.Message{Type: domain.RequestDifficulty})
	default:
		return errors.WithMessagef(errUnexpectedMessageType, "'%d'", msg.Type)
	}
}

func (u useCase) selectDifficulty(m *match, payload any) error {
	v, err := utils.UnmarshalJson[domain.SelectDifficultyPayload](payload)
	if err != nil {
		m.logger.Warn("bad difficulty payload", zap.Error(err))
		return m.send(domain.Message{Type: domain.RequestDifficulty})
	}
	session, err := m.session.Start(v.Difficulty)
	if err != nil {
		m.logger.Warn("failed to start game", zap.Error(err))
		return m.send(domain.Message{Type: domain.RequestDifficulty})
	}
	m.setSession(session)
	return u.startGame(m)
}

func (u useCase) startGame(m *match) error {
	m.logger.Info("game started",
		zap.String("difficulty", string(m.session.Difficulty)),
		zap.Uint64("generation", m.session.Generation),
	)
	err := m.send(domain.Message{
		Type: domain.StartGame,
		Payload: domain.StartGamePayload{
			CellType:     domain.PlayerMark,
			Board:        m.session.Board,
			Difficulty:   m.session.Difficulty,
			OpponentName: domain.OpponentName(m.session.Difficulty),
		},
	})
	if err != nil {
		return err
	}
	return m.send(domain.Message{Type: domain.RequestMove})
}

func (u useCase) playerMove(m *match, payload any) error {
	move, err := utils.UnmarshalJson[domain.PlayerMovePayload](payload)
	if err != nil {
		m.logger.Warn("bad move payload", zap.Error(err))
		return m.send(domain.Message{Type: domain.RequestMove})
	}
	session, err := m.session.ApplyMove(domain.PlayerMark, move.Position)
	switch {
	case errors.Is(err, domain.ErrInvalidPosition), errors.Is(err, domain.ErrCellOccupied):
		m.logger.Info("invalid move", zap.Error(err))
		return m.send(domain.Message{Type: domain.RequestMove})
	case errors.Is(err, domain.ErrNotYourTurn), errors.Is(err, domain.ErrGameNotInProgress):
		/* the client is ahead of the server, the move is dropped */
		m.logger.Info("move out of turn", zap.Error(err))
		return nil
	case err != nil:
		return errors.WithMessage(err, "apply player's move")
	}
	m.setSession(session)
	m.logger.Debug("player moved", zap.Uint8("position", move.Position), zap.Stringer("board", m.session.Board))
	if m.session.Status == domain.Finished {
		return u.finishGame(m, domain.PlayerMark, move.Position)
	}
	if err := sendMoveMessage(m, domain.PlayerMark, move.Position); err != nil {
		return err
	}
	u.scheduleOpponentMove(m)
	return nil
}

func (u useCase) scheduleOpponentMove(m *match) {
	if !m.session.IsOpponentTurn() {
		m.logger.Warn("opponent move requested out of turn", zap.Stringer("status", m.session.Status))
		return
	}
	var (
		generation = m.session.Generation
		board      = m.session.Board
		difficulty = m.session.Difficulty
	)
	m.schedule(u.cfg.OpponentDelay, func() (event, bool) {
		if m.generation.Load() != generation {
			return event{}, false
		}
		pos, err := u.bot.SelectMove(board, difficulty)
		return event{
			kind:       opponentMoveEvent,
			generation: generation,
			position:   pos,
			err:        err,
		}, true
	})
}

func (u useCase) handleEvent(m *match, ev event) error {
	switch ev.kind {
	case opponentMoveEvent:
		if ev.err != nil {
			return errors.WithMessage(ev.err, "select opponent move")
		}
		session, err := m.session.ApplyMove(domain.OpponentMark, ev.position)
		if err != nil {
			return errors.WithMessage(err, "apply opponent's move")
		}
		m.setSession(session)
		m.logger.Debug("opponent moved", zap.Uint8("position", ev.position), zap.Stringer("board", m.session.Board))
		if m.session.Status == domain.Finished {
			return u.finishGame(m, domain.OpponentMark, ev.position)
		}
		return sendMoveMessage(m, domain.OpponentMark, ev.position, domain.RequestMoveBack())
	case autoResetEvent:
		session, err := m.session.Reset()
		if err != nil {
			return errors.WithMessage(err, "reset session")
		}
		m.setSession(session)
		return u.startGame(m)
	default:
		return errors.Errorf("unexpected event kind '%d'", ev.kind)
	}
}

func (u useCase) finishGame(m *match, mark domain.Cell, position byte) error {
	outcome := m.session.Outcome()
	gameResult, err := toGameResult(outcome, m.session.Difficulty)
	if err != nil {
		return errors.WithMessage(err, "to game result")
	}
	opts := []domain.PlayerMovePayloadOption{domain.WithGameResult(gameResult)}
	if line, ok := domain.WinningLine(m.session.Board); ok {
		opts = append(opts, domain.WithWinningLine(line))
	}
	autoReset := u.autoReset(outcome)
	if autoReset {
		opts = append(opts, domain.WithAutoReset())
	}
	if err := sendMoveMessage(m, mark, position, opts...); err != nil {
		return err
	}
	m.logger.Info("game finished",
		zap.Stringer("outcome", outcome),
		zap.Uint8("moves", m.session.Round),
		zap.Bool("auto reset", autoReset),
	)
	if autoReset {
		generation := m.session.Generation
		m.schedule(u.cfg.ResetDelay, func() (event, bool) {
			return event{kind: autoResetEvent, generation: generation}, true
		})
	}
	return nil
}

// autoReset applies the end-of-game policy: by default a draw restarts by
// itself while a win waits for the user.
func (u useCase) autoReset(outcome domain.Outcome) bool {
	switch outcome {
	case domain.Draw:
		return u.cfg.DrawAutoReset
	case domain.PlayerWins, domain.OpponentWins:
		return u.cfg.WinAutoReset
	default:
		return false
	}
}

func sendMoveMessage(m *match, mark domain.Cell, position byte, opts ...domain.PlayerMovePayloadOption) error {
	payload := &domain.PlayerMovePayload{
		CellType: mark,
		Position: position,
	}
	for _, opt := range opts {
		opt(payload)
	}
	return m.send(domain.Message{
		Type:    domain.PlayerMove,
		Payload: payload,
	})
}

// schedule arms a single timer; arming a new one cancels the previous.
func (m *match) schedule(delay time.Duration, produce func() (event, bool)) {
	m.stopTimer()
	m.timer = time.AfterFunc(delay, func() {
		ev, ok := produce()
		if !ok {
			return
		}
		select {
		case m.events <- ev:
		case <-m.done:
		}
	})
}

func (m *match) setSession(session domain.Session) {
	if session.Generation != m.session.Generation {
		m.stopTimer()
		m.generation.Store(session.Generation)
	}
	m.session = session
}

func (m *match) send(msg domain.Message) error {
	if err := m.client.WriteMessage(msg); err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}

func (m *match) stopTimer() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *match) close() {
	m.stopTimer()
	close(m.done)
}

const (
	WinGameResult  = "YOU WON!"
	DrawGameResult = "IT'S A DRAW!"
)

func toGameResult(outcome domain.Outcome, difficulty domain.Difficulty) (string, error) {
	switch outcome {
	case domain.PlayerWins:
		return WinGameResult, nil
	case domain.OpponentWins:
		return domain.OpponentName(difficulty) + " WON!", nil
	case domain.Draw:
		return DrawGameResult, nil
	default:
		return "", errUnexpectedOutcome
	}
}
