package search

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ctchen222/tictactoe-engine/internal/game"
)

// ParallelBestMove splits the root moves across at most workers goroutines.
// Every root move is searched with a full window on its own copy of b, and
// the results are merged with the same lowest-index tie-break as BestMove,
// so both return the same Score and Square. b itself is only read, and only
// before any goroutine starts.
//
// ctx is checked before each root move; a cancelled search returns ctx.Err().
func ParallelBestMove(ctx context.Context, b *game.Board, toMove game.PlayerMark, depth, workers int) (Result, error) {
	if !toMove.IsPlayer() {
		return Result{}, fmt.Errorf("search for %q: %w", toMove, game.ErrInvalidMark)
	}
	if b.IsTerminal() {
		return Result{}, ErrGameOver
	}

	start := time.Now()
	depth = NormalizeDepth(depth)
	moves := b.OpenSquares()
	scores := make([]int, len(moves))
	nodes := make([]int, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, sq := range moves {
		board := b.Clone()
		g.Go(func() (err error) {
			if err := ctx.Err(); err != nil {
				return err
			}
			defer recoverInvariant(&err)

			s := &searcher{board: board, prune: true}
			s.apply(toMove, sq)
			scores[i], _ = s.search(toMove.Opponent(), depth-1, -Infinity, Infinity)
			s.undo(sq)
			nodes[i] = s.nodes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Score: worstScore(toMove), Square: game.NoSquare, Nodes: 1}
	for i, sq := range moves {
		res.Nodes += nodes[i]
		if improves(toMove, scores[i], res.Score) {
			res.Score, res.Square = scores[i], sq
		}
	}
	res.Elapsed = time.Since(start)
	if res.Square == game.NoSquare {
		return res, ErrNoMove
	}
	return res, nil
}
