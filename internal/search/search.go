// Package search finds the optimal tic-tac-toe move by exhaustive minimax
// with alpha-beta pruning. X maximizes the board score, O minimizes it.
//
// Every search works on one shared board: each step applies a move, recurses
// and undoes the move before returning, so a board must never be searched by
// two goroutines at once. ParallelBestMove gives each worker its own copy.
package search

import (
	"errors"
	"fmt"
	"time"

	"ctchen222/tictactoe-engine/internal/game"
)

const (
	// FullDepth searches every line to the end of the game.
	FullDepth = game.Squares

	// Infinity bounds every terminal score, |Score()| <= Squares+1.
	Infinity = game.Squares + 2
)

var (
	ErrNoMove   = errors.New("no move found")
	ErrGameOver = errors.New("game is already over")
)

// Result is the outcome of a root search.
type Result struct {
	Score   int
	Square  int
	Nodes   int
	Elapsed time.Duration
}

// invariantError carries a broken apply/undo balance out of the recursion.
type invariantError struct{ err error }

type searcher struct {
	board *game.Board
	prune bool
	nodes int
}

// AlphaBeta returns the score of the position for toMove, the player about
// to act, and the square that achieves it. Squares are tried in ascending
// order and only a strictly better score replaces the current best, so ties
// go to the lowest index. best is NoSquare when nothing was searched.
//
// A move that cannot be applied or undone panics: it means the board was
// changed underneath the search.
func AlphaBeta(b *game.Board, toMove game.PlayerMark, depth, alpha, beta int) (score, best int) {
	s := &searcher{board: b, prune: true}
	return s.search(toMove, depth, alpha, beta)
}

// Minimax is AlphaBeta without the cut-offs. It visits the whole tree and
// exists to check that pruning never changes the answer.
func Minimax(b *game.Board, toMove game.PlayerMark, depth int) (score, best int) {
	s := &searcher{board: b}
	return s.search(toMove, depth, -Infinity, Infinity)
}

// BestMove runs a full-window search from b for toMove. A depth outside
// 1..FullDepth searches to the end of the game. The board is restored
// before BestMove returns unless it reports a broken invariant.
func BestMove(b *game.Board, toMove game.PlayerMark, depth int) (res Result, err error) {
	if !toMove.IsPlayer() {
		return Result{}, fmt.Errorf("search for %q: %w", toMove, game.ErrInvalidMark)
	}
	if b.IsTerminal() {
		return Result{}, ErrGameOver
	}
	defer recoverInvariant(&err)

	start := time.Now()
	s := &searcher{board: b, prune: true}
	score, best := s.search(toMove, NormalizeDepth(depth), -Infinity, Infinity)
	res = Result{Score: score, Square: best, Nodes: s.nodes, Elapsed: time.Since(start)}
	if best == game.NoSquare {
		return res, ErrNoMove
	}
	return res, nil
}

// NormalizeDepth maps "unlimited" (anything outside 1..FullDepth) to FullDepth.
func NormalizeDepth(depth int) int {
	if depth <= 0 || depth > FullDepth {
		return FullDepth
	}
	return depth
}

func (s *searcher) search(toMove game.PlayerMark, depth, alpha, beta int) (int, int) {
	s.nodes++
	b := s.board
	if depth == 0 || b.IsTerminal() {
		return b.Score(), game.NoSquare
	}

	maximizing := toMove == game.PlayerX
	score, best := worstScore(toMove), game.NoSquare
	next := toMove.Opponent()

	for sq := range game.Squares {
		if !b.IsSquareOpen(sq) {
			continue
		}

		s.apply(toMove, sq)
		child, _ := s.search(next, depth-1, alpha, beta)
		s.undo(sq)

		if improves(toMove, child, score) {
			score, best = child, sq
		}
		if !s.prune {
			continue
		}
		if maximizing {
			alpha = max(alpha, score)
		} else {
			beta = min(beta, score)
		}
		if alpha >= beta {
			break
		}
	}
	return score, best
}

func (s *searcher) apply(mark game.PlayerMark, square int) {
	if err := s.board.ApplyMove(mark, square); err != nil {
		panic(invariantError{err})
	}
}

func (s *searcher) undo(square int) {
	if err := s.board.UndoMove(square); err != nil {
		panic(invariantError{err})
	}
}

// worstScore is the pessimistic starting point, beaten by any real child.
func worstScore(toMove game.PlayerMark) int {
	if toMove == game.PlayerX {
		return -Infinity
	}
	return Infinity
}

func improves(toMove game.PlayerMark, candidate, current int) bool {
	if toMove == game.PlayerX {
		return candidate > current
	}
	return candidate < current
}

// recoverInvariant turns an invariant panic into an error; other panics
// keep unwinding.
func recoverInvariant(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if ie, ok := r.(invariantError); ok {
		*err = fmt.Errorf("search invariant broken: %w", ie.err)
		return
	}
	panic(r)
}
