package engine

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"oska/internal/oska"
)

type Status int

const (
	// StatusMoved: Board is the chosen successor.
	StatusMoved Status = iota
	// StatusPassed: side to move is blocked but the opponent is not; Board is the input.
	StatusPassed
	// StatusStalled: neither side can move. This is the "no move" result.
	StatusStalled
)

func (s Status) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusPassed:
		return "passed"
	case StatusStalled:
		return "stalled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

type SearchConfig struct {
	MaxDepth int // plies, counted from 1 at the root's own moves
}

type SearchResult struct {
	Board    oska.Board
	Move     oska.Move // zero unless Status == StatusMoved
	Status   Status
	Score    int // minimax value of Board for the searching side
	Depth    int
	Nodes    int64
	TimeUsed time.Duration
}

// SelectBestMove runs a single-threaded search and returns the chosen board. ok is false
// when neither side has a legal move. A blocked side whose opponent can still move gets
// the unchanged input board back.
func SelectBestMove(b oska.Board, side oska.Side, maxDepth int) (oska.Board, bool) {
	res, err := NewEngine().Search(context.Background(), b, side, SearchConfig{MaxDepth: maxDepth})
	if err != nil || res.Status == StatusStalled {
		return oska.Board{}, false
	}
	return res.Board, true
}

// Search picks side's best successor of b with fixed-depth minimax. The only error is
// ctx's.
func (e *Engine) Search(ctx context.Context, b oska.Board, side oska.Side, cfg SearchConfig) (SearchResult, error) {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	start := time.Now()

	moves := b.LegalMoves(side)
	if len(moves) == 0 {
		status := StatusPassed
		if !b.HasMoves(side.Opponent()) {
			status = StatusStalled
		}
		e.logger.Debug("no legal moves",
			zap.String("side", side.String()),
			zap.Stringer("status", status))
		return SearchResult{
			Board:    b,
			Status:   status,
			Score:    Evaluate(b, side),
			TimeUsed: time.Since(start),
		}, nil
	}

	children := make([]oska.Board, len(moves))
	for i, m := range moves {
		children[i] = b.Apply(m)
	}

	s := &searcher{root: side, maxDepth: cfg.MaxDepth}
	scores, err := s.scoreRoot(ctx, children, e.workers)
	if err != nil {
		return SearchResult{}, err
	}

	// First maximum wins ties.
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	res := SearchResult{
		Board:    children[best],
		Move:     moves[best],
		Status:   StatusMoved,
		Score:    scores[best],
		Depth:    cfg.MaxDepth,
		Nodes:    atomic.LoadInt64(&s.nodes),
		TimeUsed: time.Since(start),
	}
	e.logger.Debug("search finished",
		zap.String("side", side.String()),
		zap.Int("depth", res.Depth),
		zap.Int("candidates", len(children)),
		zap.Int("score", res.Score),
		zap.Int64("nodes", res.Nodes),
		zap.Duration("elapsed", res.TimeUsed))
	return res, nil
}

// searcher carries the state of one Search call; Engine itself stays shareable.
type searcher struct {
	root     oska.Side
	maxDepth int
	nodes    int64
}

// scoreRoot returns one value per root child, index aligned with children.
func (s *searcher) scoreRoot(ctx context.Context, children []oska.Board, workers int) ([]int, error) {
	scores := make([]int, len(children))
	atomic.AddInt64(&s.nodes, 1)

	if s.maxDepth == 1 {
		for i, child := range children {
			scores[i] = Evaluate(child, s.root)
		}
		return scores, nil
	}

	if workers <= 1 || len(children) == 1 {
		for i, child := range children {
			v, err := s.minimax(ctx, child, s.root.Opponent(), 2)
			if err != nil {
				return nil, err
			}
			scores[i] = v
		}
		return scores, nil
	}

	// Boards are immutable, so siblings share nothing but the node counter.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, child := range children {
		i, child := i, child
		g.Go(func() error {
			v, err := s.minimax(gctx, child, s.root.Opponent(), 2)
			if err != nil {
				return err
			}
			scores[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// minimax values b for the root side, with mover about to play at the given ply. A node
// without moves is evaluated as is; at maxDepth the children are evaluated directly.
func (s *searcher) minimax(ctx context.Context, b oska.Board, mover oska.Side, ply int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	atomic.AddInt64(&s.nodes, 1)

	moves := b.LegalMoves(mover)
	if len(moves) == 0 {
		return Evaluate(b, s.root), nil
	}

	maximize := mover == s.root
	best := math.MaxInt
	if maximize {
		best = math.MinInt
	}
	for _, m := range moves {
		child := b.Apply(m)
		var v int
		if ply >= s.maxDepth {
			v = Evaluate(child, s.root)
		} else {
			var err error
			v, err = s.minimax(ctx, child, mover.Opponent(), ply+1)
			if err != nil {
				return 0, err
			}
		}
		if (maximize && v > best) || (!maximize && v < best) {
			best = v
		}
	}
	return best, nil
}
