package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrUnknownDifficulty     = errors.New("unknown difficulty")
	ErrDifficultyNotSelected = errors.New("difficulty is not selected")
	ErrGameNotInProgress     = errors.New("game is not in progress")
	ErrNotYourTurn           = errors.New("it's not your turn")
	ErrInvalidPosition       = errors.New("invalid cell position")
	ErrCellOccupied          = errors.New("cell is already occupied")
)
