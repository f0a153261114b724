package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *Board {
	t.Helper()
	b, err := ParseBoard(text)
	require.NoError(t, err)
	return b
}

// walkReachable visits every board reachable from b by legal play, stopping
// at finished positions.
func walkReachable(t *testing.T, b *Board, toMove PlayerMark, visit func(b *Board, toMove PlayerMark)) {
	visit(b, toMove)
	if b.IsTerminal() {
		return
	}
	for sq := range Squares {
		if !b.IsSquareOpen(sq) {
			continue
		}
		if err := b.ApplyMove(toMove, sq); err != nil {
			t.Fatalf("apply %d on %s: %v", sq, b, err)
		}
		walkReachable(t, b, toMove.Opponent(), visit)
		if err := b.UndoMove(sq); err != nil {
			t.Fatalf("undo %d on %s: %v", sq, b, err)
		}
	}
}

func TestCheckWinner(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  PlayerMark
	}{
		{name: "No winner - empty board", board: "---------", want: None},
		{name: "No winner - partial board", board: "X---O----", want: None},
		{name: "X wins - first row", board: "XXX-O---O", want: PlayerX},
		{name: "O wins - second column", board: "XO-XO--O-", want: PlayerO},
		{name: "X wins - main diagonal", board: "X-O-X-O-X", want: PlayerX},
		{name: "O wins - anti-diagonal", board: "XXO-O-OX-", want: PlayerO},
		{name: "No winner - full board (draw)", board: "XOXXOOOXX", want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustParse(t, tt.board).Winner(); got != tt.want {
				t.Errorf("Winner() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBoardFull(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  bool
	}{
		{name: "Empty board is not full", board: "---------", want: false},
		{name: "Partial board is not full", board: "X---O----", want: false},
		{name: "Full board is full", board: "XOXXOOOXX", want: true},
		{name: "Full board with winner is full", board: "XXXOOXOXO", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustParse(t, tt.board).IsFull(); got != tt.want {
				t.Errorf("IsFull() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRandomlyChooseFirstPlayer(t *testing.T) {
	// Not a statistical test, only checks that both marks show up.
	seenX := false
	seenO := false
	for i := 0; i < 100; i++ {
		player := RandomlyChooseFirstPlayer()
		if player != PlayerX && player != PlayerO {
			t.Errorf("RandomlyChooseFirstPlayer() returned invalid player: %v", player)
		}
		if player == PlayerX {
			seenX = true
		}
		if player == PlayerO {
			seenO = true
		}
	}

	if !seenX || !seenO {
		t.Errorf("RandomlyChooseFirstPlayer() did not return both PlayerX and PlayerO over 100 runs. Seen X: %v, Seen O: %v", seenX, seenO)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  int
	}{
		{name: "draw", board: "XOXXOOOXX", want: 0},
		{name: "unfinished", board: "X---O----", want: 0},
		{name: "X wins with four open", board: "XXXOO----", want: 5},
		{name: "O wins with three open", board: "OOOXX-X--", want: -4},
		{name: "X wins on a full board", board: "XXXOOXOXO", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.board)
			assert.Equal(t, tt.want, b.Score())
			assert.Equal(t, b.Winner() != None || b.IsFull(), b.IsTerminal())
		})
	}
}

func TestWinnerMatchesLinesOnReachableBoards(t *testing.T) {
	owner := func(b *Board) PlayerMark {
		for _, mark := range []PlayerMark{PlayerX, PlayerO} {
			for _, line := range Lines {
				if b.Cell(line[0]) == mark && b.Cell(line[1]) == mark && b.Cell(line[2]) == mark {
					return mark
				}
			}
		}
		return None
	}

	visited := 0
	for _, first := range []PlayerMark{PlayerX, PlayerO} {
		walkReachable(t, NewBoard(), first, func(b *Board, _ PlayerMark) {
			visited++
			if got, want := b.Winner(), owner(b); got != want {
				t.Fatalf("board %s: Winner() = %q, want %q", b, got, want)
			}
		})
	}
	assert.Positive(t, visited)
}

func TestApplyUndoRoundTrip(t *testing.T) {
	// Stop at three plies to keep the walk small; every square is still
	// applied and undone on every visited board.
	var walk func(b *Board, toMove PlayerMark, depth int)
	walk = func(b *Board, toMove PlayerMark, depth int) {
		for sq := range Squares {
			if !b.IsSquareOpen(sq) {
				continue
			}
			before := *b
			require.NoError(t, b.ApplyMove(toMove, sq))
			assert.Equal(t, before.EmptyCount()-1, b.EmptyCount())
			require.NoError(t, b.UndoMove(sq))
			require.Equal(t, before, *b, "round trip on %s at %d", before.String(), sq)
		}
		if depth == 0 || b.IsTerminal() {
			return
		}
		for sq := range Squares {
			if !b.IsSquareOpen(sq) {
				continue
			}
			require.NoError(t, b.ApplyMove(toMove, sq))
			walk(b, toMove.Opponent(), depth-1)
			require.NoError(t, b.UndoMove(sq))
		}
	}
	walk(NewBoard(), PlayerX, 3)

	// Undoing the winning move clears the winner again.
	b := mustParse(t, "XX-OO----")
	require.NoError(t, b.ApplyMove(PlayerX, 2))
	require.Equal(t, PlayerX, b.Winner())
	require.NoError(t, b.UndoMove(2))
	assert.Equal(t, None, b.Winner())
	assert.Equal(t, 5, b.EmptyCount())
}

func TestApplyMoveRejectsInvariantViolations(t *testing.T) {
	b := mustParse(t, "X--------")

	err := b.ApplyMove(PlayerO, 0)
	assert.ErrorIs(t, err, ErrSquareOccupied)
	assert.ErrorIs(t, b.ApplyMove(PlayerO, 9), ErrInvalidSquare)
	assert.ErrorIs(t, b.ApplyMove(PlayerO, NoSquare), ErrInvalidSquare)
	assert.ErrorIs(t, b.ApplyMove(None, 1), ErrInvalidMark)
	assert.ErrorIs(t, b.UndoMove(1), ErrSquareEmpty)
	assert.ErrorIs(t, b.UndoMove(-1), ErrInvalidSquare)

	assert.Equal(t, "X--------", b.String())
	assert.Equal(t, 8, b.EmptyCount())
}

func TestIsSquareOpen(t *testing.T) {
	b := mustParse(t, "X---O----")
	assert.False(t, b.IsSquareOpen(NoSquare))
	assert.False(t, b.IsSquareOpen(Squares))
	assert.False(t, b.IsSquareOpen(0))
	assert.False(t, b.IsSquareOpen(4))
	assert.True(t, b.IsSquareOpen(1))
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7, 8}, b.OpenSquares())
}

func TestCoordinateToSquare(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"a1", 0},
		{"1a", 0},
		{"b1", 1},
		{"a2", 3},
		{"2a", 3},
		{"B2", 4},
		{"C3", 8},
		{"3c", 8},
		{"d1", NoSquare},
		{"a4", NoSquare},
		{"a0", NoSquare},
		{"ab", NoSquare},
		{"11", NoSquare},
		{"", NoSquare},
		{"a", NoSquare},
		{"a1 ", NoSquare},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, CoordinateToSquare(tt.text))
		})
	}
}

func TestSquareToCoordinateRoundTrip(t *testing.T) {
	for sq := range Squares {
		coord := SquareToCoordinate(sq)
		assert.Equal(t, sq, CoordinateToSquare(coord), coord)
	}
	assert.Empty(t, SquareToCoordinate(NoSquare))
}

func TestParseBoard(t *testing.T) {
	b := mustParse(t, "x.O-x---o")
	assert.Equal(t, "X-O-X---O", b.String())
	assert.Equal(t, 5, b.EmptyCount())
	assert.Equal(t, PlayerX, b.ToMove())

	for _, bad := range []string{"", "XXXX", "XXX------", "XXXOOO---", "X-O-Z----", "XXXOO-OO-", "OOOXXX-X-"} {
		_, err := ParseBoard(bad)
		assert.ErrorIs(t, err, ErrInvalidBoard, bad)
	}
}

func TestParseBoardWinnerMarkCount(t *testing.T) {
	tests := []struct {
		name  string
		board string
		valid bool
	}{
		{name: "X wins moving first", board: "XXXOO----", valid: true},
		{name: "X wins moving second", board: "XXXOO-O--", valid: true},
		{name: "O wins moving first", board: "OOOXX----", valid: true},
		{name: "O wins moving second", board: "OOOXX-X--", valid: true},
		{name: "X wins behind on marks", board: "XXXOO-OO-", valid: false},
		{name: "O wins behind on marks", board: "OOOXX-XX-", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBoard(tt.board)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidBoard)
			}
		})
	}
}

func TestClone(t *testing.T) {
	b := mustParse(t, "X---O----")
	c := b.Clone()
	require.NoError(t, c.ApplyMove(PlayerX, 8))
	assert.Equal(t, "X---O----", b.String())
	assert.Equal(t, "X---O---X", c.String())
}

func TestGameMove(t *testing.T) {
	g := NewGame(PlayerX)
	require.NotEmpty(t, g.ID)
	assert.Equal(t, InProgress, g.Result())

	for _, sq := range []int{0, 3, 1, 4} {
		require.NoError(t, g.Move(sq))
	}
	assert.ErrorIs(t, g.Move(3), ErrSquareOccupied)
	assert.Equal(t, PlayerX, g.CurrentTurn)

	require.NoError(t, g.Move(2))
	assert.True(t, g.IsOver())
	assert.Equal(t, XWins, g.Result())
	assert.ErrorIs(t, g.Move(5), ErrGameOver)
	assert.Equal(t, []int{0, 3, 1, 4, 2}, g.Moves)
}

func TestGameDraw(t *testing.T) {
	g := NewGame(PlayerO)
	for _, sq := range []int{4, 0, 2, 6, 3, 5, 1, 7, 8} {
		require.NoError(t, g.Move(sq))
	}
	assert.Equal(t, Draw, g.Result())
}
