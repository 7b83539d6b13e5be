package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"oska/internal/match"
	"oska/internal/oska"
)

// TestCase is one generator fixture: a board, the side to move and the successor boards
// in generation order.
type TestCase struct {
	Rows  []string   `json:"rows"`
	Side  oska.Side  `json:"side"`
	Moves [][]string `json:"moves"`
}

func main() {
	out := flag.String("out", "", "write fixtures from random games to this file")
	check := flag.String("check", "", "compare the generator against fixtures in this file")
	games := flag.Int("games", 10, "random games to sample with -out")
	seed := flag.Int64("seed", 1, "random seed for -out")
	pieces := flag.Int("pieces", oska.DefaultPieces, "pieces per side for -out")
	maxPlies := flag.Int("maxplies", 100, "plies per random game with -out")
	flag.Parse()

	switch {
	case *out != "":
		cases := generate(rand.New(rand.NewSource(*seed)), *games, *pieces, *maxPlies)
		data, err := json.MarshalIndent(cases, "", "  ")
		if err != nil {
			fatal(err)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("generated %d cases from %d random games to %s\n", len(cases), *games, *out)
	case *check != "":
		data, err := os.ReadFile(*check)
		if err != nil {
			fatal(err)
		}
		var cases []TestCase
		if err := json.Unmarshal(data, &cases); err != nil {
			fatal(err)
		}
		failed, reordered := verify(cases)
		fmt.Printf("%d cases, %d mismatched, %d in a different order\n", len(cases), failed, reordered)
		if failed > 0 {
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// generate walks random games and records every position where the side to move had moves.
func generate(rng *rand.Rand, games, pieces, maxPlies int) []TestCase {
	var cases []TestCase
	for g := 0; g < games; g++ {
		b := oska.NewBoard(pieces)
		side := oska.White
		for ply := 0; ply < maxPlies; ply++ {
			next := b.GenerateMoves(side)
			if len(next) == 0 {
				if !b.HasMoves(side.Opponent()) {
					break
				}
				side = side.Opponent()
				continue
			}
			tc := TestCase{Rows: b.Rows(), Side: side, Moves: make([][]string, 0, len(next))}
			for _, n := range next {
				tc.Moves = append(tc.Moves, n.Rows())
			}
			cases = append(cases, tc)

			b = next[rng.Intn(len(next))]
			side = side.Opponent()
		}
	}
	return cases
}

func verify(cases []TestCase) (failed, reordered int) {
	for i, tc := range cases {
		b, err := oska.ParseBoard(tc.Rows)
		if err != nil {
			fmt.Printf("case %d: %v\n", i, err)
			failed++
			continue
		}
		ref, err := fixtureGenerator(tc.Moves)
		if err != nil {
			fmt.Printf("case %d: %v\n", i, err)
			failed++
			continue
		}
		d := match.Compare(b, tc.Side, match.Builtin, ref)
		if !d.Equal() {
			failed++
			fmt.Printf("case %d (%s to move, %s): ours %d, fixture %d\n", i, tc.Side, b.Encode(), d.Ours, d.Reference)
			for _, m := range d.Missing {
				fmt.Printf("  missing %s\n", m.Encode())
			}
			for _, x := range d.Extra {
				fmt.Printf("  extra   %s\n", x.Encode())
			}
			continue
		}
		if !d.SameOrder {
			reordered++
		}
	}
	return failed, reordered
}

func fixtureGenerator(moves [][]string) (match.Generator, error) {
	boards := make([]oska.Board, 0, len(moves))
	for _, rows := range moves {
		b, err := oska.ParseBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return match.GeneratorFunc(func(oska.Board, oska.Side) []oska.Board { return boards }), nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
