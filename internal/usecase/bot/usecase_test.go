package bot

import (
	"math/rand/v2"
	"testing"

	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBot(seed uint64) useCase {
	return New(zap.NewNop(), WithRand(rand.New(rand.NewPCG(seed, seed+1))))
}

func boardOf(s string) domain.Board {
	var b domain.Board
	for i := range b {
		switch s[i] {
		case 'X':
			b[i] = domain.X
		case 'O':
			b[i] = domain.O
		default:
			b[i] = domain.None
		}
	}
	return b
}

func TestSelectMove_ContractViolations(t *testing.T) {
	u := newTestBot(1)

	t.Run("full board", func(t *testing.T) {
		for _, d := range []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard} {
			_, err := u.SelectMove(boardOf("XOXXOOOXX"), d)
			assert.ErrorIs(t, err, ErrNoEmptyCells)
		}
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		_, err := u.SelectMove(domain.NewBoard(), domain.Difficulty("nightmare"))
		assert.ErrorIs(t, err, domain.ErrUnknownDifficulty)
	})
}

func TestSelectMove_Easy(t *testing.T) {
	t.Run("always picks an empty cell", func(t *testing.T) {
		u := newTestBot(2)
		board := boardOf("XO..X.O..")
		for range 500 {
			pos, err := u.SelectMove(board, domain.Easy)
			require.NoError(t, err)
			require.Equal(t, domain.None, board[pos])
		}
	})

	t.Run("is roughly uniform", func(t *testing.T) {
		const draws = 10000
		u := newTestBot(3)
		board := boardOf("XO..X.O..")
		empty := domain.EmptyCells(board)
		counts := make(map[byte]int)
		for range draws {
			pos, err := u.SelectMove(board, domain.Easy)
			require.NoError(t, err)
			counts[pos]++
		}
		require.Len(t, counts, len(empty))
		expected := draws / len(empty)
		for _, pos := range empty {
			assert.InDelta(t, expected, counts[pos], float64(expected)/5, "position %d", pos)
		}
	})
}

func TestSelectMove_Medium(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  byte
	}{
		{name: "completes its own line", board: "OO.......", want: 2},
		{name: "blocks the player", board: "XX.......", want: 2},
		{name: "win beats block even when the block comes first", board: "XX.OO....", want: 5},
		{name: "win beats block", board: "OO.XX....", want: 2},
		{name: "completes the gap in a line", board: "O.O.X..X.", want: 1},
		{name: "blocks a diagonal", board: "X...X..O.", want: 8},
		{name: "first qualifying line wins", board: "XX.O.OXX.", want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newTestBot(4)

			pos, err := u.SelectMove(boardOf(tt.board), domain.Medium)

			require.NoError(t, err)
			assert.Equal(t, tt.want, pos)
		})
	}

	t.Run("falls back to a random empty cell", func(t *testing.T) {
		u := newTestBot(5)
		board := boardOf("....X....")
		seen := make(map[byte]bool)
		for range 500 {
			pos, err := u.SelectMove(board, domain.Medium)
			require.NoError(t, err)
			require.NotEqual(t, byte(4), pos)
			require.Contains(t, domain.EmptyCells(board), pos)
			seen[pos] = true
		}
		assert.Len(t, seen, 8)
	})
}

func TestSelectMove_Hard(t *testing.T) {
	u := newTestBot(6)

	t.Run("takes an immediate win", func(t *testing.T) {
		pos, err := u.SelectMove(boardOf("OO.XX.X.."), domain.Hard)
		require.NoError(t, err)
		assert.Equal(t, byte(2), pos)
	})

	t.Run("blocks the only threat", func(t *testing.T) {
		pos, err := u.SelectMove(boardOf("XOXO.X..."), domain.Hard)
		require.NoError(t, err)
		assert.Equal(t, byte(8), pos)
	})

	t.Run("delays a forced loss", func(t *testing.T) {
		// The player threatens both 2 and 8.
		board := boardOf("XX..XO.O.")
		pos, err := u.SelectMove(board, domain.Hard)
		require.NoError(t, err)
		assert.Contains(t, []byte{2, 8}, pos)
	})

	t.Run("ties go to the lowest position", func(t *testing.T) {
		pos, err := u.SelectMove(domain.NewBoard(), domain.Hard)
		require.NoError(t, err)
		assert.Equal(t, byte(0), pos)
	})
}

func TestSelectMove_HardSelfPlayDraws(t *testing.T) {
	u := newTestBot(7)
	for first := range byte(domain.BoardSize) {
		board := domain.NewBoard()
		board[first] = domain.X
		mark := domain.O
		for !domain.IsTerminal(board) {
			pos, err := u.SelectMoveAs(board, domain.Hard, mark)
			require.NoError(t, err)
			require.Equal(t, domain.None, board[pos])
			board[pos] = mark
			mark = mark.Opposite()
		}
		assert.Equal(t, domain.Draw, domain.EvaluateOutcome(board), "first move %d\n%s", first, board)
	}

	board := domain.NewBoard()
	mark := domain.X
	for !domain.IsTerminal(board) {
		pos, err := u.SelectMoveAs(board, domain.Hard, mark)
		require.NoError(t, err)
		board[pos] = mark
		mark = mark.Opposite()
	}
	assert.Equal(t, domain.Draw, domain.EvaluateOutcome(board))
}

// The player tries every possible line of play; the hard bot must never lose.
func TestSelectMove_HardNeverLoses(t *testing.T) {
	u := newTestBot(8)
	games := 0
	var explore func(board domain.Board)
	explore = func(board domain.Board) {
		for _, pos := range domain.EmptyCells(board) {
			next := board
			next[pos] = domain.PlayerMark
			if domain.IsTerminal(next) {
				games++
				require.NotEqual(t, domain.PlayerWins, domain.EvaluateOutcome(next), "\n%s", next)
				continue
			}
			reply, err := u.SelectMove(next, domain.Hard)
			require.NoError(t, err)
			require.Equal(t, domain.None, next[reply])
			next[reply] = domain.OpponentMark
			if domain.IsTerminal(next) {
				games++
				continue
			}
			explore(next)
		}
	}
	explore(domain.NewBoard())
	assert.Positive(t, games)
}

func TestSelectMove_Scenarios(t *testing.T) {
	u := newTestBot(9)

	t.Run("medium with no threats plays a remaining cell", func(t *testing.T) {
		board := domain.NewBoard()
		board[4] = domain.PlayerMark

		pos, err := u.SelectMove(board, domain.Medium)

		require.NoError(t, err)
		assert.Contains(t, domain.EmptyCells(board), pos)
	})

	t.Run("medium completes the win", func(t *testing.T) {
		pos, err := u.SelectMove(boardOf("OO......."), domain.Medium)
		require.NoError(t, err)
		assert.Equal(t, byte(2), pos)
	})

	t.Run("medium blocks", func(t *testing.T) {
		pos, err := u.SelectMove(boardOf("XX......."), domain.Medium)
		require.NoError(t, err)
		assert.Equal(t, byte(2), pos)
	})

	t.Run("hard does not hand the player a win", func(t *testing.T) {
		board := boardOf("XOXO.X...")

		pos, err := u.SelectMove(board, domain.Hard)
		require.NoError(t, err)
		board[pos] = domain.OpponentMark

		for _, reply := range domain.EmptyCells(board) {
			next := board
			next[reply] = domain.PlayerMark
			winner, ok := domain.Winner(next)
			assert.False(t, ok && winner == domain.PlayerMark, "reply %d wins for the player", reply)
		}
	})
}
