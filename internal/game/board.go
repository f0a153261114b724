package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Size is the length of a board side.
	Size = 3
	// Squares is the number of cells on the board.
	Squares = Size * Size
	// NoSquare marks "no move" and malformed coordinates.
	NoSquare = -1

	// EmptySymbol is how an open cell is printed.
	EmptySymbol = "-"
)

var (
	ErrInvalidSquare  = errors.New("invalid square")
	ErrSquareOccupied = errors.New("cell already occupied")
	ErrSquareEmpty    = errors.New("cell is empty")
	ErrInvalidMark    = errors.New("invalid player mark")
	ErrInvalidBoard   = errors.New("invalid board")
)

// Lines lists every winning line: rows, columns, then both diagonals.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Board is a 3x3 grid stored row-major. It is mutated in place by
// ApplyMove and UndoMove; the winner is recomputed after every mutation.
// Use NewBoard, the zero value has no open squares counted.
type Board struct {
	cells      [Squares]PlayerMark
	emptyCount int
	winner     PlayerMark
}

func NewBoard() *Board {
	return &Board{emptyCount: Squares}
}

// ParseBoard reads the compact 9-character form produced by String,
// e.g. "X-O-X---O". Cells are X, O or '-' (also '.' or ' ').
func ParseBoard(text string) (*Board, error) {
	if len(text) != Squares {
		return nil, fmt.Errorf("%w: want %d cells, got %d", ErrInvalidBoard, Squares, len(text))
	}

	b := NewBoard()
	for i := range Squares {
		switch text[i] {
		case 'x', 'X':
			b.cells[i] = PlayerX
			b.emptyCount--
		case 'o', 'O':
			b.cells[i] = PlayerO
			b.emptyCount--
		case '-', '.', ' ':
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrInvalidBoard, text[i], i)
		}
	}

	xs, zs := b.count(PlayerX), b.count(PlayerO)
	if xs-zs > 1 || zs-xs > 1 {
		return nil, fmt.Errorf("%w: %d X against %d O", ErrInvalidBoard, xs, zs)
	}
	if b.hasLine(PlayerX) && b.hasLine(PlayerO) {
		return nil, fmt.Errorf("%w: both players have a line", ErrInvalidBoard)
	}

	b.winner = b.checkWinner()
	// The winner moved last, so it cannot be behind on marks.
	if w := b.winner; w != None && b.count(w) < b.count(w.Opponent()) {
		return nil, fmt.Errorf("%w: %s has a line with fewer marks than %s", ErrInvalidBoard, w, w.Opponent())
	}
	return b, nil
}

// ApplyMove places mark on square. The square must be open; anything else
// means the caller broke the apply/undo balance and the board is left as is.
func (b *Board) ApplyMove(mark PlayerMark, square int) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}
	if !validSquare(square) {
		return fmt.Errorf("%w: %d", ErrInvalidSquare, square)
	}
	if b.cells[square] != None {
		return fmt.Errorf("%w: %d", ErrSquareOccupied, square)
	}

	b.cells[square] = mark
	b.emptyCount--
	b.winner = b.checkWinner()
	return nil
}

// UndoMove clears an occupied square.
func (b *Board) UndoMove(square int) error {
	if !validSquare(square) {
		return fmt.Errorf("%w: %d", ErrInvalidSquare, square)
	}
	if b.cells[square] == None {
		return fmt.Errorf("%w: %d", ErrSquareEmpty, square)
	}

	b.cells[square] = None
	b.emptyCount++
	b.winner = b.checkWinner()
	return nil
}

// IsSquareOpen is false for NoSquare and anything off the board.
func (b *Board) IsSquareOpen(square int) bool {
	return validSquare(square) && b.cells[square] == None
}

func (b *Board) IsFull() bool {
	return b.emptyCount == 0
}

func (b *Board) IsTerminal() bool {
	return b.IsFull() || b.winner != None
}

// Winner returns the mark owning a full line, or None.
func (b *Board) Winner() PlayerMark {
	return b.winner
}

// Score rates a finished position from X's side. Wins are worth one more
// than the squares left open, so quicker wins and slower losses rank higher.
func (b *Board) Score() int {
	switch b.winner {
	case PlayerX:
		return b.emptyCount + 1
	case PlayerO:
		return -(b.emptyCount + 1)
	default:
		return 0
	}
}

func (b *Board) EmptyCount() int {
	return b.emptyCount
}

// Cell returns the mark on square, None when off the board.
func (b *Board) Cell(square int) PlayerMark {
	if !validSquare(square) {
		return None
	}
	return b.cells[square]
}

// OpenSquares lists the open squares in ascending order.
func (b *Board) OpenSquares() []int {
	open := make([]int, 0, b.emptyCount)
	for sq, cell := range b.cells {
		if cell == None {
			open = append(open, sq)
		}
	}
	return open
}

// ToMove guesses whose turn it is from the mark counts. With equal counts X
// is assumed to move.
func (b *Board) ToMove() PlayerMark {
	if b.count(PlayerX) > b.count(PlayerO) {
		return PlayerO
	}
	return PlayerX
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// String returns the compact form read by ParseBoard.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Squares)
	for _, cell := range b.cells {
		sb.WriteString(cell.Symbol())
	}
	return sb.String()
}

// checkWinner scans all eight lines.
func (b *Board) checkWinner() PlayerMark {
	for _, line := range Lines {
		first := b.cells[line[0]]
		if first != None && first == b.cells[line[1]] && first == b.cells[line[2]] {
			return first
		}
	}
	return None
}

func (b *Board) hasLine(mark PlayerMark) bool {
	for _, line := range Lines {
		if b.cells[line[0]] == mark && b.cells[line[1]] == mark && b.cells[line[2]] == mark {
			return true
		}
	}
	return false
}

func (b *Board) count(mark PlayerMark) int {
	n := 0
	for _, cell := range b.cells {
		if cell == mark {
			n++
		}
	}
	return n
}

func validSquare(square int) bool {
	return square >= 0 && square < Squares
}
