package bot

import (
	"math/rand/v2"
	"sync"

	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type useCase struct {
	intn   func(n int) int
	logger *zap.Logger
}

type Option func(u *useCase)

// WithRand makes random choices reproducible. The generator is guarded
// because one bot serves every session.
func WithRand(r *rand.Rand) Option {
	mu := &sync.Mutex{}
	return func(u *useCase) {
		u.intn = func(n int) int {
			mu.Lock()
			defer mu.Unlock()
			return r.IntN(n)
		}
	}
}

func New(logger *zap.Logger, opts ...Option) useCase {
	u := useCase{
		intn:   rand.IntN,
		logger: logger,
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// SelectMove picks the computer's next cell. The computer always plays
// domain.OpponentMark.
func (u useCase) SelectMove(board domain.Board, difficulty domain.Difficulty) (byte, error) {
	return u.SelectMoveAs(board, difficulty, domain.OpponentMark)
}

func (u useCase) SelectMoveAs(board domain.Board, difficulty domain.Difficulty, me domain.Cell) (byte, error) {
	if domain.IsFull(board) {
		return 0, ErrNoEmptyCells
	}
	var pos byte
	switch difficulty {
	case domain.Easy:
		pos = u.randomMove(board)
	case domain.Medium:
		pos = u.heuristicMove(board, me)
	case domain.Hard:
		pos = bestMove(board, me)
	default:
		return 0, errors.WithMessagef(domain.ErrUnknownDifficulty, "'%s'", difficulty)
	}
	u.logger.Debug("move selected",
		zap.String("difficulty", string(difficulty)),
		zap.String("mark", string(rune(me))),
		zap.Uint8("position", pos),
	)
	return pos, nil
}
