package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"oska/internal/engine"
	"oska/internal/logging"
	"oska/internal/match"
	"oska/internal/oska"
)

func main() {
	boardFlag := flag.String("board", "", "start board in slash notation, e.g. wwww/---/--/---/bbbb")
	firstFlag := flag.String("first", "w", "side to move first (w or b)")
	whiteDepth := flag.Int("white-depth", engine.DefaultMaxDepth, "white search depth")
	blackDepth := flag.Int("black-depth", engine.DefaultMaxDepth, "black search depth")
	maxPlies := flag.Int("maxplies", match.DefaultMaxPlies, "max plies to play")
	workers := flag.Int("workers", 0, "root search workers (0 = GOMAXPROCS)")
	games := flag.Int("games", 0, "if > 0, play this many games with alternating depths and print a score table")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logger, err := logging.New(*logLevel, "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := match.Config{
		WhiteDepth: *whiteDepth,
		BlackDepth: *blackDepth,
		MaxPlies:   *maxPlies,
	}
	if *boardFlag != "" {
		b, err := oska.Decode(*boardFlag)
		if err != nil {
			logger.Fatal("bad -board", zap.Error(err))
		}
		cfg.Start = b
	}
	first, err := oska.ParseSide(*firstFlag)
	if err != nil {
		logger.Fatal("bad -first", zap.Error(err))
	}
	cfg.First = first

	runner := match.NewRunner(engine.NewEngine(engine.WithWorkers(*workers), engine.WithLogger(logger)), logger)

	if *games > 0 {
		runBenchmark(ctx, runner, cfg, *games)
		return
	}

	start := cfg.Start
	if start.Size() == 0 {
		start = oska.NewInitialBoard()
	}
	fmt.Printf("start:\n%s\n\n", start)

	cfg.OnPly = printPly
	res, err := runner.Play(ctx, cfg)
	if err != nil {
		logger.Fatal("selfplay aborted", zap.Error(err))
	}
	fmt.Printf("result: %s after %d plies, winner %s\n", res.Reason, len(res.Plies), winnerName(res.Winner))
}

func printPly(p match.Ply) {
	switch {
	case p.Move != nil:
		fmt.Printf("--- ply %d, %s plays %s (score %d, nodes %d, %v)\n", p.Number, p.Side, p.Move, p.Score, p.Nodes, p.Took)
	default:
		fmt.Printf("--- ply %d, %s %s\n", p.Number, p.Side, p.Status)
	}
	fmt.Printf("%s\n\n", p.Board)
}

func winnerName(s oska.Side) string {
	switch s {
	case oska.White:
		return "white"
	case oska.Black:
		return "black"
	}
	return "none (draw)"
}
