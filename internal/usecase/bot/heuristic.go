package bot

import (
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
)

// heuristicMove completes its own line if it can, otherwise blocks the
// other side's line, otherwise plays at random.
func (u useCase) heuristicMove(board domain.Board, me domain.Cell) byte {
	if pos, ok := findWinningMove(board, me); ok {
		return pos
	}
	if pos, ok := findWinningMove(board, me.Opposite()); ok {
		return pos
	}
	return u.randomMove(board)
}

// findWinningMove returns the empty cell of the first line in which mark
// already holds the other two cells.
func findWinningMove(board domain.Board, mark domain.Cell) (byte, bool) {
	for _, line := range domain.Lines {
		var (
			owned int
			empty = -1
		)
		for _, pos := range line {
			switch board[pos] {
			case mark:
				owned++
			case domain.None:
				empty = int(pos)
			}
		}
		if owned == 2 && empty >= 0 {
			return byte(empty), true
		}
	}
	return 0, false
}
