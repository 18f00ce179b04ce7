package bot

import (
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
)

func (u useCase) randomMove(board domain.Board) byte {
	cells := domain.EmptyCells(board)
	return cells[u.intn(len(cells))]
}
