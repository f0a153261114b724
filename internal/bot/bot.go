package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/search"
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

//go:generate mockgen -destination=../console/mocks/mock_calculator.go -package=mocks ctchen222/tictactoe-engine/internal/bot MoveCalculator

// MoveCalculator is anything that can pick the next square for its mark.
type MoveCalculator interface {
	NextMove(ctx context.Context, board *game.Board) (int, error)
	Mark() game.PlayerMark
}

// Agent is a computer player. It implements MoveCalculator.
type Agent struct {
	mark       game.PlayerMark
	difficulty string
	depth      int
	workers    int

	nodes    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewAgent creates a bot playing mark. depth and workers only matter on
// hard: depth 0 searches to the end, workers > 1 splits the root moves.
func NewAgent(mark game.PlayerMark, difficulty string, depth, workers int) (*Agent, error) {
	if !mark.IsPlayer() {
		return nil, fmt.Errorf("new agent: %w: %q", game.ErrInvalidMark, mark)
	}

	nodes, err := meter.Int64Counter("engine.search.nodes",
		metric.WithDescription("Positions visited by the move search"))
	if err != nil {
		return nil, fmt.Errorf("failed to create nodes counter: %w", err)
	}
	duration, err := meter.Float64Histogram("engine.search.duration",
		metric.WithDescription("Time spent choosing a move"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &Agent{
		mark:       mark,
		difficulty: difficulty,
		depth:      depth,
		workers:    workers,
		nodes:      nodes,
		duration:   duration,
	}, nil
}

func (a *Agent) Mark() game.PlayerMark {
	return a.mark
}

// NextMove picks the agent's square on board. The board is not modified.
func (a *Agent) NextMove(ctx context.Context, board *game.Board) (int, error) {
	ctx, span := tracer.Start(ctx, "bot.CalculateNextMove", trace.WithAttributes(
		attribute.String("bot.mark", string(a.mark)),
		attribute.String("bot.difficulty", a.difficulty),
		attribute.String("game.board", board.String()),
	))
	defer span.End()

	start := time.Now()
	square, nodes, err := a.calculate(ctx, board)
	elapsed := time.Since(start)

	attrs := metric.WithAttributes(attribute.String("bot.difficulty", a.difficulty))
	a.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	if nodes > 0 {
		a.nodes.Add(ctx, int64(nodes), attrs)
	}

	if err != nil {
		slog.ErrorContext(ctx, "bot failed to find a move", "bot.mark", a.mark, "game.board", board.String(), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "No move found")
		return game.NoSquare, err
	}

	span.SetAttributes(attribute.Int("move.square", square), attribute.Int("search.nodes", nodes))
	slog.DebugContext(ctx, "bot chose a move",
		"bot.mark", a.mark,
		"move.square", square,
		"move.coordinate", game.SquareToCoordinate(square),
		"search.nodes", nodes,
		"search.elapsed", elapsed)
	return square, nil
}

func (a *Agent) calculate(ctx context.Context, board *game.Board) (int, int, error) {
	if a.difficulty == Easy || a.difficulty == Medium {
		sq, err := CalculateNextMove(board, a.mark, a.difficulty)
		return sq, 0, err
	}

	var (
		res search.Result
		err error
	)
	if a.workers > 1 {
		res, err = search.ParallelBestMove(ctx, board, a.mark, a.depth, a.workers)
	} else {
		res, err = search.BestMove(board, a.mark, a.depth)
	}
	if err != nil {
		return game.NoSquare, res.Nodes, fmt.Errorf("hard move for %s: %w", a.mark, err)
	}
	slog.DebugContext(ctx, "search finished", "search.score", res.Score, "search.nodes", res.Nodes)
	return res.Square, res.Nodes, nil
}
