package domain

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

type Cell byte

const (
	None = Cell(' ')
	X    = Cell('X')
	O    = Cell('O')
)

// PlayerMark is placed by the human, OpponentMark by the computer.
const (
	PlayerMark   = X
	OpponentMark = O
)

func (c Cell) Opposite() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return None
	}
}

type Outcome byte

const (
	InProgress = Outcome(iota)
	PlayerWins
	OpponentWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case PlayerWins:
		return "player wins"
	case OpponentWins:
		return "opponent wins"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

type Difficulty string

const (
	Easy   = Difficulty("easy")
	Medium = Difficulty("medium")
	Hard   = Difficulty("hard")
)

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", errors.WithMessagef(ErrUnknownDifficulty, "'%s'", s)
	}
	return d, nil
}

func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	default:
		return false
	}
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

type GameUseCase interface {
	Play(ctx context.Context, client Client) error
}

type BotUseCase interface {
	SelectMove(board Board, difficulty Difficulty) (byte, error)
}
