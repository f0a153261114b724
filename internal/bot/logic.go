package bot

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"

	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/search"
)

const (
	Easy   = "easy"
	Medium = "medium"
	Hard   = "hard"
)

var (
	corners = []int{0, 2, 6, 8}
	sides   = []int{1, 3, 5, 7}
)

// CalculateNextMove determines the bot's next square based on the specified
// difficulty. Unknown difficulties play perfectly.
func CalculateNextMove(board *game.Board, botMark game.PlayerMark, difficulty string) (int, error) {
	if board.IsTerminal() {
		return game.NoSquare, search.ErrGameOver
	}

	switch difficulty {
	case Easy:
		return easyMove(board), nil
	case Medium:
		return mediumMove(board, botMark), nil
	default:
		return hardMove(board, botMark, search.FullDepth)
	}
}

// easyMove makes a completely random move.
func easyMove(board *game.Board) int {
	return randomSquare(board.OpenSquares())
}

// mediumMove wins if it can, blocks if it must, then prefers the center,
// a corner and finally a side.
func mediumMove(board *game.Board, botMark game.PlayerMark) int {
	// 1. Win
	if sq, ok := findWinningMove(board, botMark); ok {
		return sq
	}

	// 2. Block
	if sq, ok := findWinningMove(board, botMark.Opponent()); ok {
		return sq
	}

	// 3. Center
	if board.IsSquareOpen(4) {
		return 4
	}

	// 4. Corners, then sides
	for _, group := range [][]int{corners, sides} {
		open := lo.Filter(group, func(sq int, _ int) bool {
			return board.IsSquareOpen(sq)
		})
		if len(open) > 0 {
			return randomSquare(open)
		}
	}

	return game.NoSquare
}

// hardMove plays the minimax-optimal square.
func hardMove(board *game.Board, botMark game.PlayerMark, depth int) (int, error) {
	res, err := search.BestMove(board, botMark, depth)
	if err != nil {
		return game.NoSquare, fmt.Errorf("hard move for %s: %w", botMark, err)
	}
	return res.Square, nil
}

// findWinningMove looks for a line holding two of mark and one open square.
func findWinningMove(board *game.Board, mark game.PlayerMark) (int, bool) {
	for _, line := range game.Lines {
		owned := lo.CountBy(line[:], func(sq int) bool {
			return board.Cell(sq) == mark
		})
		if owned != 2 {
			continue
		}
		open, found := lo.Find(line[:], board.IsSquareOpen)
		if found {
			return open, true
		}
	}
	return game.NoSquare, false
}

func randomSquare(squares []int) int {
	if len(squares) == 0 {
		return game.NoSquare
	}
	return squares[rand.IntN(len(squares))]
}
