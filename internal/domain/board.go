package domain

import (
	"strings"
)

const BoardSize = 9

type Board [BoardSize]Cell

// Line is a triple of board positions whose uniform occupation ends the game.
type Line [3]byte

// Lines is enumerated rows first, then columns, then the two diagonals.
// Winner and the heuristic bot both rely on this order for tie-breaking.
var Lines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func NewBoard() Board {
	var board Board
	for i := range board {
		board[i] = None
	}
	return board
}

// Winner returns the mark of the first complete line, if any.
func Winner(board Board) (Cell, bool) {
	line, ok := WinningLine(board)
	if !ok {
		return None, false
	}
	return board[line[0]], true
}

func WinningLine(board Board) (Line, bool) {
	for _, line := range Lines {
		cell := board[line[0]]
		if cell == None {
			continue
		}
		if board[line[1]] == cell && board[line[2]] == cell {
			return line, true
		}
	}
	return Line{}, false
}

func IsFull(board Board) bool {
	for _, cell := range board {
		if cell == None {
			return false
		}
	}
	return true
}

func IsTerminal(board Board) bool {
	if _, ok := Winner(board); ok {
		return true
	}
	return IsFull(board)
}

func EvaluateOutcome(board Board) Outcome {
	winner, ok := Winner(board)
	switch {
	case ok && winner == PlayerMark:
		return PlayerWins
	case ok && winner == OpponentMark:
		return OpponentWins
	case IsFull(board):
		return Draw
	default:
		return InProgress
	}
}

// EmptyCells lists free positions in ascending order.
func EmptyCells(board Board) []byte {
	cells := make([]byte, 0, BoardSize)
	for i, cell := range board {
		if cell == None {
			cells = append(cells, byte(i))
		}
	}
	return cells
}

func (b Board) String() string {
	var sb strings.Builder
	for i, cell := range b {
		sb.WriteByte(byte(cell))
		switch {
		case i == BoardSize-1:
		case (i+1)%3 == 0:
			sb.WriteByte('\n')
		default:
			sb.WriteByte('|')
		}
	}
	return sb.String()
}
