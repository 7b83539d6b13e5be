package main

import (
	"flag"
	"fmt"
	"os"

	"oska/internal/engine"
	"oska/internal/oska"
)

func main() {
	boardFlag := flag.String("board", "wwww/---/--/---/bbbb", "board in slash notation")
	sideFlag := flag.String("side", "w", "side to move")
	flag.Parse()

	b, err := oska.Decode(*boardFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	side, err := oska.ParseSide(*sideFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Println("Board:", b.Encode())
	fmt.Println(b)
	fmt.Printf("Eval (%s): %d\n", side, engine.Evaluate(b, side))
	moves := b.LegalMoves(side)
	fmt.Println("Legal moves:", len(moves))
	for _, m := range moves {
		fmt.Printf("  %-22s %s\n", m, b.Apply(m).Encode())
	}
}
