package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
)

var tracer = otel.Tracer("console")

// errQuit ends a session without it being a failure.
var errQuit = errors.New("player quit")

// Session runs games between a human at the terminal and a bot.
type Session struct {
	in       LineReader
	out      io.Writer
	renderer *Renderer
	bot      bot.MoveCalculator

	chooseFirst func() game.PlayerMark
}

type Option func(*Session)

// WithFirstPlayer overrides who opens each game. The default is a coin flip.
func WithFirstPlayer(choose func() game.PlayerMark) Option {
	return func(s *Session) {
		s.chooseFirst = choose
	}
}

func NewSession(in LineReader, out io.Writer, renderer *Renderer, calc bot.MoveCalculator, opts ...Option) *Session {
	s := &Session{
		in:          in,
		out:         out,
		renderer:    renderer,
		bot:         calc,
		chooseFirst: game.RandomlyChooseFirstPlayer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run plays games until the human declines another one, types quit, or
// closes the input. Only bot or output failures are returned as errors.
func (s *Session) Run(ctx context.Context) error {
	for {
		if _, err := s.Play(ctx); err != nil {
			if errors.Is(err, errQuit) {
				return s.goodbye()
			}
			return err
		}

		again, err := s.askPlayAgain()
		if err != nil {
			if errors.Is(err, errQuit) {
				return s.goodbye()
			}
			return err
		}
		if !again {
			return s.goodbye()
		}
	}
}

// Play runs a single game to the end and returns its result.
func (s *Session) Play(ctx context.Context) (result game.GameResult, err error) {
	human := s.bot.Mark().Opponent()
	g := game.NewGame(s.chooseFirst())

	ctx, span := tracer.Start(ctx, "session.Play", trace.WithAttributes(
		attribute.String("game.id", g.ID),
		attribute.String("player.mark", string(human)),
	))
	defer func() {
		if err != nil && !errors.Is(err, errQuit) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Game aborted")
		}
		span.SetAttributes(attribute.String("game.result", string(result)))
		span.End()
	}()

	slog.InfoContext(ctx, "Game started", "game.id", g.ID, "game.first", g.CurrentTurn, "player.mark", human)

	if _, err := fmt.Fprintf(s.out, "You are %s. %s moves first.\n", human, g.CurrentTurn); err != nil {
		return game.InProgress, err
	}
	if err := s.renderer.Render(s.out, g.Board); err != nil {
		return game.InProgress, err
	}

	for !g.IsOver() {
		if err := ctx.Err(); err != nil {
			return game.InProgress, err
		}

		var square int
		if g.CurrentTurn == human {
			square, err = s.readMove(g.Board, human)
			if err != nil {
				return game.InProgress, err
			}
		} else {
			square, err = s.bot.NextMove(ctx, g.Board)
			if err != nil {
				return game.InProgress, fmt.Errorf("bot turn in game %s: %w", g.ID, err)
			}
			if _, err := fmt.Fprintf(s.out, "Bot plays %s.\n", game.SquareToCoordinate(square)); err != nil {
				return game.InProgress, err
			}
		}

		if err := g.Move(square); err != nil {
			return game.InProgress, err
		}
		if _, err := fmt.Fprintln(s.out); err != nil {
			return game.InProgress, err
		}
		if err := s.renderer.Render(s.out, g.Board); err != nil {
			return game.InProgress, err
		}
	}

	result = g.Result()
	slog.InfoContext(ctx, "Game finished", "game.id", g.ID, "game.result", result, "game.moves", len(g.Moves))
	return result, Announce(s.out, result, human)
}

// readMove prompts until the human names an open square.
func (s *Session) readMove(b *game.Board, human game.PlayerMark) (int, error) {
	s.in.SetPrompt(fmt.Sprintf("Your move (%s), e.g. b2: ", human))
	for {
		line, err := s.readLine()
		if err != nil {
			return game.NoSquare, err
		}
		if line == "" {
			continue
		}

		square := game.CoordinateToSquare(line)
		if square == game.NoSquare {
			if _, err := fmt.Fprintf(s.out, "%q is not a square. Use a column a-c and a row 1-3, like b2.\n", line); err != nil {
				return game.NoSquare, err
			}
			continue
		}
		if !b.IsSquareOpen(square) {
			if _, err := fmt.Fprintf(s.out, "%s is already taken.\n", line); err != nil {
				return game.NoSquare, err
			}
			continue
		}
		return square, nil
	}
}

func (s *Session) askPlayAgain() (bool, error) {
	s.in.SetPrompt("Play again? (y/n): ")
	for {
		line, err := s.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if _, err := fmt.Fprintln(s.out, "Please answer y or n."); err != nil {
			return false, err
		}
	}
}

// readLine returns the trimmed next line. End of input, Ctrl-C and the
// words quit or exit all become errQuit.
func (s *Session) readLine() (string, error) {
	line, err := s.in.Readline()
	if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
		return "", errQuit
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "quit", "exit":
		return "", errQuit
	}
	return line, nil
}

func (s *Session) goodbye() error {
	_, err := fmt.Fprintln(s.out, "Thanks for playing!")
	return err
}
