package domain

import (
	"github.com/pkg/errors"
)

type status byte

const (
	ReadyToStart = status(iota)
	Running
	Finished
)

func (s status) String() string {
	switch s {
	case ReadyToStart:
		return "ready to start"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Session is the state of one single-player game. Transitions never mutate
// the receiver; they return the next state.
type Session struct {
	Uuid        string
	Board       Board
	Difficulty  Difficulty
	CurrentMove Cell
	Status      status
	Round       uint8
	// Generation changes on every reset so that work scheduled against an
	// older board can be recognised and dropped.
	Generation uint64
}

func NewSession(uuid string) Session {
	return Session{
		Uuid:        uuid,
		Board:       NewBoard(),
		CurrentMove: PlayerMark,
		Status:      ReadyToStart,
	}
}

func (s Session) Start(difficulty Difficulty) (Session, error) {
	if !difficulty.Valid() {
		return s, errors.WithMessagef(ErrUnknownDifficulty, "'%s'", difficulty)
	}
	s.Difficulty = difficulty
	return s.restart(), nil
}

func (s Session) Reset() (Session, error) {
	if s.Status == ReadyToStart {
		return s, ErrDifficultyNotSelected
	}
	return s.restart(), nil
}

func (s Session) BackToStart() Session {
	s.Board = NewBoard()
	s.CurrentMove = PlayerMark
	s.Status = ReadyToStart
	s.Round = 0
	s.Generation++
	return s
}

func (s Session) restart() Session {
	s.Board = NewBoard()
	s.CurrentMove = PlayerMark
	s.Status = Running
	s.Round = 0
	s.Generation++
	return s
}

func (s Session) ApplyMove(mark Cell, pos byte) (Session, error) {
	if s.Status != Running {
		return s, ErrGameNotInProgress
	}
	if mark != s.CurrentMove {
		return s, ErrNotYourTurn
	}
	if int(pos) >= BoardSize {
		return s, errors.WithMessagef(ErrInvalidPosition, "position '%d' is out of board", pos)
	}
	if s.Board[pos] != None {
		return s, errors.WithMessagef(ErrCellOccupied, "cell in position '%d' is already selected", pos)
	}
	s.Board[pos] = mark
	s.Round++
	if IsTerminal(s.Board) {
		s.Status = Finished
		s.CurrentMove = None
		return s, nil
	}
	s.CurrentMove = mark.Opposite()
	return s, nil
}

func (s Session) Outcome() Outcome {
	return EvaluateOutcome(s.Board)
}

func (s Session) IsOpponentTurn() bool {
	return s.Status == Running && s.CurrentMove == OpponentMark
}

// OpponentName is the display name of the computer at the given difficulty.
func OpponentName(difficulty Difficulty) string {
	switch difficulty {
	case Easy:
		return "BUN"
	case Medium:
		return "SHADOW"
	case Hard:
		return "FLAP"
	default:
		return ""
	}
}
