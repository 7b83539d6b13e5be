package main

import (
	"context"
	"fmt"

	"oska/internal/match"
	"oska/internal/oska"
)

type player struct {
	Name  string
	Depth int
}

// runBenchmark pits the two configured depths against each other, swapping colours every
// game so neither player always moves first.
func runBenchmark(ctx context.Context, runner *match.Runner, base match.Config, games int) {
	a := player{Name: fmt.Sprintf("depth %d", base.WhiteDepth), Depth: base.WhiteDepth}
	b := player{Name: fmt.Sprintf("depth %d", base.BlackDepth), Depth: base.BlackDepth}

	aWins, bWins, draws := 0, 0, 0
	for g := 0; g < games; g++ {
		white, black := a, b
		if g%2 == 1 {
			white, black = b, a
		}
		cfg := base
		cfg.WhiteDepth = white.Depth
		cfg.BlackDepth = black.Depth
		cfg.OnPly = nil

		fmt.Printf("=== game %d: white [%s] vs black [%s] ===\n", g+1, white.Name, black.Name)
		res, err := runner.Play(ctx, cfg)
		if err != nil {
			fmt.Printf("aborted: %v\n", err)
			break
		}

		var winner *player
		switch res.Winner {
		case oska.White:
			winner = &white
		case oska.Black:
			winner = &black
		}
		if winner == nil {
			draws++
			fmt.Printf("result: draw (%s, %d plies)\n", res.Reason, len(res.Plies))
			continue
		}
		// a and b may share a name when depths are equal, so attribute by colour parity.
		if (res.Winner == oska.White) == (g%2 == 0) {
			aWins++
		} else {
			bWins++
		}
		fmt.Printf("result: %s wins as %s (%s, %d plies)\n", winner.Name, res.Winner, res.Reason, len(res.Plies))
	}

	fmt.Printf("\n=== final score ===\n")
	fmt.Printf("A (%s): %d\n", a.Name, aWins)
	fmt.Printf("B (%s): %d\n", b.Name, bWins)
	fmt.Printf("draws: %d\n", draws)
}
