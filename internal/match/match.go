package match

import (
	"context"
	"time"

	"go.uber.org/zap"

	"oska/internal/engine"
	"oska/internal/oska"
)

// DefaultMaxPlies stops games that would otherwise bounce between passes forever.
const DefaultMaxPlies = 200

type Reason string

const (
	ReasonDecided  Reason = "decided"   // Outcome reports a finished board
	ReasonStalled  Reason = "stalled"   // neither side can move
	ReasonPlyLimit Reason = "ply_limit" // MaxPlies reached
)

type Config struct {
	Start      oska.Board // zero value means the standard opening
	First      oska.Side  // NoSide or zero value means white
	WhiteDepth int
	BlackDepth int
	MaxPlies   int

	// OnPly is called after every ply, including passes.
	OnPly func(Ply)
}

type Ply struct {
	Number int           `json:"number"`
	Side   oska.Side     `json:"side"`
	Status string        `json:"status"`
	Move   *oska.Move    `json:"move,omitempty"`
	Board  oska.Board    `json:"board"`
	Score  int           `json:"score"`
	Nodes  int64         `json:"nodes"`
	Took   time.Duration `json:"took_ns"`
}

type Result struct {
	Start  oska.Board `json:"start"`
	Final  oska.Board `json:"final"`
	Plies  []Ply      `json:"plies"`
	Winner oska.Side  `json:"winner"`
	Reason Reason     `json:"reason"`
}

type Runner struct {
	engine *engine.Engine
	logger *zap.Logger
}

func NewRunner(e *engine.Engine, logger *zap.Logger) *Runner {
	if e == nil {
		e = engine.NewEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{engine: e, logger: logger}
}

// Play alternates the two sides from cfg.Start until a search stalls, the board is
// decided or the ply limit is hit.
func (r *Runner) Play(ctx context.Context, cfg Config) (*Result, error) {
	board := cfg.Start
	if board.Size() == 0 {
		board = oska.NewInitialBoard()
	}
	side := cfg.First
	if side != oska.Black {
		side = oska.White
	}
	maxPlies := cfg.MaxPlies
	if maxPlies <= 0 {
		maxPlies = DefaultMaxPlies
	}

	res := &Result{Start: board, Reason: ReasonPlyLimit}
	for n := 1; n <= maxPlies; n++ {
		depth := cfg.WhiteDepth
		if side == oska.Black {
			depth = cfg.BlackDepth
		}
		sr, err := r.engine.Search(ctx, board, side, engine.SearchConfig{MaxDepth: depth})
		if err != nil {
			return nil, err
		}
		if sr.Status == engine.StatusStalled {
			res.Reason = ReasonStalled
			break
		}

		ply := Ply{
			Number: n,
			Side:   side,
			Status: sr.Status.String(),
			Board:  sr.Board,
			Score:  sr.Score,
			Nodes:  sr.Nodes,
			Took:   sr.TimeUsed,
		}
		if sr.Status == engine.StatusMoved {
			mv := sr.Move
			ply.Move = &mv
		}
		res.Plies = append(res.Plies, ply)
		if cfg.OnPly != nil {
			cfg.OnPly(ply)
		}
		r.logger.Debug("ply",
			zap.Int("n", n),
			zap.String("side", side.String()),
			zap.String("status", ply.Status),
			zap.String("board", sr.Board.Encode()))

		board = sr.Board
		if _, decided := engine.Outcome(board); decided {
			res.Reason = ReasonDecided
			break
		}
		side = side.Opponent()
	}

	res.Final = board
	res.Winner = winner(board)
	r.logger.Info("game over",
		zap.String("reason", string(res.Reason)),
		zap.String("winner", res.Winner.String()),
		zap.Int("plies", len(res.Plies)))
	return res, nil
}

// winner falls back to the evaluator's sign when the board itself is not decided.
func winner(b oska.Board) oska.Side {
	if w, decided := engine.Outcome(b); decided {
		return w
	}
	switch score := engine.Evaluate(b, oska.White); {
	case score > 0:
		return oska.White
	case score < 0:
		return oska.Black
	}
	return oska.NoSide
}
