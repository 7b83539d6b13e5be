package httpserver

import "oska/internal/oska"

// MovesRequest asks for every legal move of side. Board accepts a row array or a
// "/"-joined string.
type MovesRequest struct {
	Board oska.Board `json:"board"`
	Side  string     `json:"side"`
}

type MoveDTO struct {
	Move  oska.Move  `json:"move"`
	Board oska.Board `json:"board"`
}

type MovesResponse struct {
	Side  oska.Side `json:"side"`
	Count int       `json:"count"`
	Moves []MoveDTO `json:"moves"`
}

type BestMoveRequest struct {
	Board    oska.Board `json:"board"`
	Side     string     `json:"side"`
	MaxDepth int        `json:"max_depth"`
}

type BestMoveResponse struct {
	Status string      `json:"status"` // "moved" / "passed" / "stalled"
	Board  *oska.Board `json:"board"`  // null when stalled
	Move   *oska.Move  `json:"move,omitempty"`
	Score  int         `json:"score"`
	Depth  int         `json:"depth"`
	Nodes  int64       `json:"nodes"`
	TimeMs int64       `json:"time_ms"`
}

type EvaluateRequest struct {
	Board oska.Board `json:"board"`
	Side  string     `json:"side"`
}

type EvaluateResponse struct {
	Score   int       `json:"score"`
	Decided bool      `json:"decided"`
	Winner  oska.Side `json:"winner"`
}

type MatchRequest struct {
	Board      *oska.Board `json:"board,omitempty"`
	First      string      `json:"first,omitempty"`
	WhiteDepth int         `json:"white_depth"`
	BlackDepth int         `json:"black_depth"`
	MaxPlies   int         `json:"max_plies"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func movesToDTO(b oska.Board, ms []oska.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = MoveDTO{Move: m, Board: b.Apply(m)}
	}
	return out
}
