package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/config"
	"ctchen222/tictactoe-engine/internal/console"
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/logger"
	"ctchen222/tictactoe-engine/internal/search"
	"ctchen222/tictactoe-engine/internal/telemetry"
	"ctchen222/tictactoe-engine/pkg/proto"
)

var version = "dev"

func main() {
	analyze := flag.String("analyze", "", "analyse a 9-character board such as XO--X---O and print the best move as JSON")
	traceTree := flag.Bool("trace", false, "with -analyze, also print the searched tree")
	configDir := flag.String("config", "", "directory holding tictactoe.yaml")
	flag.Parse()

	if err := run(*analyze, *traceTree, *configDir); err != nil {
		fmt.Fprintln(os.Stderr, "tictactoe:", err)
		os.Exit(1)
	}
}

func run(analyze string, traceTree bool, configDir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var paths []string
	if configDir != "" {
		paths = append(paths, configDir)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Init(os.Stderr, level)

	// Initialize telemetry
	shutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	if analyze != "" {
		return runAnalysis(ctx, os.Stdout, cfg, analyze, traceTree)
	}
	return runConsole(ctx, cfg)
}

// initTelemetry starts the OpenTelemetry providers. Spans are appended to
// cfg.TraceFile when it is set; the returned shutdown flushes and closes it.
func initTelemetry(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	opts := telemetry.Options{
		Endpoint:       cfg.OTLPEndpoint,
		ServiceVersion: version,
	}

	var traceFile *os.File
	if cfg.TraceFile != "" {
		f, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace file: %w", err)
		}
		traceFile = f
		opts.TraceWriter = f
	}

	shutdown, err := telemetry.InitOtel(ctx, opts)
	if err != nil {
		if traceFile != nil {
			traceFile.Close()
		}
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	return func(ctx context.Context) error {
		err := shutdown(ctx)
		if traceFile != nil {
			err = errors.Join(err, traceFile.Close())
		}
		return err
	}, nil
}

// runAnalysis prints the perfect-play verdict for one position.
func runAnalysis(ctx context.Context, w io.Writer, cfg *config.Config, text string, traceTree bool) error {
	b, err := game.ParseBoard(text)
	if err != nil {
		return err
	}
	toMove := b.ToMove()

	var res search.Result
	if cfg.Workers > 1 {
		res, err = search.ParallelBestMove(ctx, b, toMove, cfg.Depth, cfg.Workers)
	} else {
		res, err = search.BestMove(b, toMove, cfg.Depth)
	}
	if err != nil {
		return fmt.Errorf("analyse %s: %w", text, err)
	}
	slog.InfoContext(ctx, "Analysis finished", "game.board", b.String(), "search.score", res.Score, "search.nodes", res.Nodes)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(proto.NewAnalysisReport(b, toMove, res)); err != nil {
		return err
	}

	if !traceTree {
		return nil
	}
	root, err := search.Trace(b, toMove, cfg.Depth)
	if err != nil {
		return err
	}
	return root.Traverse(w)
}

func runConsole(ctx context.Context, cfg *config.Config) error {
	human, computer := cfg.Seats()
	agent, err := bot.NewAgent(computer, cfg.Difficulty, cfg.Depth, cfg.Workers)
	if err != nil {
		return err
	}

	rl, err := console.NewReadline(cfg.HistoryFile)
	if err != nil {
		return err
	}
	defer rl.Close()

	slog.InfoContext(ctx, "Session started", "player.mark", human, "bot.difficulty", cfg.Difficulty)
	out := rl.Stdout()
	s := console.NewSession(rl, out, console.NewRenderer(os.Stdout, cfg.Color), agent)
	return s.Run(ctx)
}
