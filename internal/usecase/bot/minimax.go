package bot

import (
	"math"

	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
)

const winScore = 10

// bestMove searches the whole remaining game tree. Ties go to the lowest
// position.
func bestMove(board domain.Board, me domain.Cell) byte {
	var (
		best      byte
		bestValue = math.MinInt
	)
	for _, pos := range domain.EmptyCells(board) {
		next := board
		next[pos] = me
		if v := minimax(next, me, 0, false); v > bestValue {
			bestValue = v
			best = pos
		}
	}
	return best
}

// minimax scores board from me's point of view. Boards are passed by value,
// so every recursive call works on its own copy and nothing has to be undone.
// depth prefers quicker wins and slower losses.
func minimax(board domain.Board, me domain.Cell, depth int, maximizing bool) int {
	if winner, ok := domain.Winner(board); ok {
		if winner == me {
			return winScore - depth
		}
		return depth - winScore
	}
	if domain.IsFull(board) {
		return 0
	}
	mark := me.Opposite()
	best := math.MaxInt
	if maximizing {
		mark = me
		best = math.MinInt
	}
	for _, pos := range domain.EmptyCells(board) {
		next := board
		next[pos] = mark
		v := minimax(next, me, depth+1, !maximizing)
		if maximizing {
			best = max(best, v)
		} else {
			best = min(best, v)
		}
	}
	return best
}
