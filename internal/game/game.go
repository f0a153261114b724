package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string
type GameResult string

const (
	// Player marks. X maximizes the score, O minimizes it.
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// Game results
	InProgress GameResult = ""
	XWins      GameResult = "X"
	OWins      GameResult = "O"
	Draw       GameResult = "Draw"
)

var ErrGameOver = errors.New("game already finished")

// Game is one session: a board plus whose turn it is.
type Game struct {
	ID          string
	Board       *Board
	CurrentTurn PlayerMark
	Moves       []int
}

// NewGame starts an empty board with first to move. An invalid mark falls
// back to a random first player.
func NewGame(first PlayerMark) *Game {
	if !first.IsPlayer() {
		first = RandomlyChooseFirstPlayer()
	}
	return &Game{
		ID:          uuid.New().String(),
		Board:       NewBoard(),
		CurrentTurn: first,
		Moves:       make([]int, 0, Squares),
	}
}

// Move plays the current player's mark on square and passes the turn.
func (g *Game) Move(square int) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if err := g.Board.ApplyMove(g.CurrentTurn, square); err != nil {
		return fmt.Errorf("move %d by %s: %w", square, g.CurrentTurn, err)
	}

	g.Moves = append(g.Moves, square)
	g.CurrentTurn = g.CurrentTurn.Opponent()
	return nil
}

func (g *Game) IsOver() bool {
	return g.Board.IsTerminal()
}

// Result reports the outcome, InProgress while moves remain.
func (g *Game) Result() GameResult {
	switch g.Board.Winner() {
	case PlayerX:
		return XWins
	case PlayerO:
		return OWins
	}
	if g.Board.IsFull() {
		return Draw
	}
	return InProgress
}
