package engine

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"go.uber.org/zap/zaptest"

	"oska/internal/oska"
)

// parityBestIndex mirrors the ply-parity combination rule: max at odd plies, min at
// even ones, with the root returning the index of its first maximum.
func parityBestIndex(b oska.Board, turn, player oska.Side, count, depth int) int {
	moves := b.GenerateMoves(turn)
	if len(moves) == 0 {
		return Evaluate(b, player)
	}
	goodness := make([]int, len(moves))
	if count == depth {
		for i, m := range moves {
			goodness[i] = Evaluate(m, player)
		}
	} else {
		for i, m := range moves {
			goodness[i] = parityBestIndex(m, turn.Opponent(), player, count+1, depth)
		}
	}
	if count == 1 {
		best := 0
		for i, g := range goodness {
			if g > goodness[best] {
				best = i
			}
		}
		return best
	}
	pick := goodness[0]
	for _, g := range goodness[1:] {
		if count%2 == 1 && g > pick || count%2 == 0 && g < pick {
			pick = g
		}
	}
	return pick
}

func randomPositions(t *testing.T, seed int64, n int) []oska.Board {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var out []oska.Board
	for len(out) < n {
		b := oska.NewInitialBoard()
		side := oska.White
		plies := rng.Intn(14)
		for i := 0; i < plies; i++ {
			next := b.GenerateMoves(side)
			if len(next) == 0 {
				break
			}
			b = next[rng.Intn(len(next))]
			side = side.Opponent()
		}
		if b.HasMoves(oska.White) {
			out = append(out, b)
		}
	}
	return out
}

func TestSearchMatchesParityRule(t *testing.T) {
	e := NewEngine(WithLogger(zaptest.NewLogger(t)))
	for _, b := range randomPositions(t, 11, 25) {
		for depth := 1; depth <= 4; depth++ {
			res, err := e.Search(context.Background(), b, oska.White, SearchConfig{MaxDepth: depth})
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			want := b.GenerateMoves(oska.White)[parityBestIndex(b, oska.White, oska.White, 1, depth)]
			if !res.Board.Equal(want) {
				t.Fatalf("depth %d from %v:\ngot  %v\nwant %v", depth, b.Rows(), res.Board.Rows(), want.Rows())
			}
		}
	}
}

func TestSearchDepthOnePicksBestStatic(t *testing.T) {
	b := oska.MustParseBoard("---w", "w-w", "bb", "b-w", "---b")
	res, err := NewEngine().Search(context.Background(), b, oska.White, SearchConfig{MaxDepth: 1})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := oska.MustParseBoard("---w", "w-w", "bb", "b--", "--wb")
	if res.Status != StatusMoved || !res.Board.Equal(want) || res.Score != 1 {
		t.Fatalf("got status=%v score=%d board=%v", res.Status, res.Score, res.Board.Rows())
	}
	if res.Move.Capture || res.Move.From != (oska.Square{Row: 3, Col: 2}) {
		t.Fatalf("unexpected move %+v", res.Move)
	}
}

func TestSearchFirstMaximumWinsTies(t *testing.T) {
	b := oska.NewInitialBoard()
	got, ok := SelectBestMove(b, oska.White, 1)
	if !ok {
		t.Fatalf("no move from the opening")
	}
	want := oska.MustParseBoard("-www", "w--", "--", "---", "bbbb")
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got.Rows(), want.Rows())
	}
}

func TestSearchTieFollowsMoveOrder(t *testing.T) {
	b := oska.MustParseBoard("w-ww", "---", "b-", "--w", "b-bb")
	want := oska.MustParseBoard("w-ww", "-b-", "--", "--w", "b-bb")
	for _, depth := range []int{1, 3} {
		got, ok := SelectBestMove(b, oska.Black, depth)
		if !ok || !got.Equal(want) {
			t.Fatalf("depth %d: got %v want %v", depth, got.Rows(), want.Rows())
		}
	}
}

func TestSearchParallelMatchesSerial(t *testing.T) {
	serial := NewEngine()
	parallel := NewEngine(WithWorkers(4))
	for _, b := range randomPositions(t, 23, 15) {
		for _, side := range []oska.Side{oska.White, oska.Black} {
			a, err := serial.Search(context.Background(), b, side, SearchConfig{MaxDepth: 4})
			if err != nil {
				t.Fatalf("serial: %v", err)
			}
			p, err := parallel.Search(context.Background(), b, side, SearchConfig{MaxDepth: 4})
			if err != nil {
				t.Fatalf("parallel: %v", err)
			}
			if a.Status != p.Status || !a.Board.Equal(p.Board) || a.Score != p.Score || a.Nodes != p.Nodes {
				t.Fatalf("serial %+v != parallel %+v", a, p)
			}
		}
	}
}

func TestSearchDeterministic(t *testing.T) {
	b := oska.MustParseBoard("---w", "w-w", "bb", "b-w", "---b")
	first, ok := SelectBestMove(b, oska.Black, 5)
	if !ok {
		t.Fatalf("black has moves")
	}
	for i := 0; i < 5; i++ {
		again, _ := SelectBestMove(b, oska.Black, 5)
		if !again.Equal(first) {
			t.Fatalf("run %d: %v != %v", i, again.Rows(), first.Rows())
		}
	}
}

func TestSearchNoMoves(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		side   oska.Side
		status Status
		ok     bool
	}{
		{
			name:   "black wiped out, white can move",
			rows:   []string{"----", "-w-", "--", "---", "----"},
			side:   oska.White,
			status: StatusMoved,
			ok:     true,
		},
		{
			name:   "black wiped out, white home",
			rows:   []string{"----", "---", "--", "---", "w--w"},
			side:   oska.White,
			status: StatusStalled,
			ok:     false,
		},
		{
			name:   "white blocked, black can move",
			rows:   []string{"----", "---", "--", "---", "wb--"},
			side:   oska.White,
			status: StatusPassed,
			ok:     true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := oska.MustParseBoard(tt.rows...)
			res, err := NewEngine().Search(context.Background(), b, tt.side, SearchConfig{MaxDepth: 3})
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if res.Status != tt.status {
				t.Fatalf("status = %v, want %v", res.Status, tt.status)
			}
			got, ok := SelectBestMove(b, tt.side, 3)
			if ok != tt.ok {
				t.Fatalf("SelectBestMove ok = %v, want %v", ok, tt.ok)
			}
			if tt.status == StatusPassed && !got.Equal(b) {
				t.Fatalf("pass changed the board: %v", got.Rows())
			}
		})
	}
}

func TestSearchDefaultDepth(t *testing.T) {
	res, err := NewEngine().Search(context.Background(), oska.NewInitialBoard(), oska.Black, SearchConfig{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Depth != DefaultMaxDepth || res.Nodes == 0 {
		t.Fatalf("depth=%d nodes=%d", res.Depth, res.Nodes)
	}
}

func TestSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, workers := range []int{1, 3} {
		_, err := NewEngine(WithWorkers(workers)).Search(ctx, oska.NewInitialBoard(), oska.White, SearchConfig{MaxDepth: 3})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("workers=%d: err = %v, want context.Canceled", workers, err)
		}
	}
}
