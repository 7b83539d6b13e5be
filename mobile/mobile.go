// Package mobile is a gomobile-bindable facade. Its exported functions only take and
// return strings and ints so that bindings can be generated for them.
package mobile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"oska/internal/engine"
	"oska/internal/logging"
	"oska/internal/oska"
	"oska/internal/server/game"
	httpserver "oska/internal/server/http"
)

type bestMove struct {
	Status string     `json:"status"`
	Board  string     `json:"board,omitempty"`
	Move   *oska.Move `json:"move,omitempty"`
	Score  int        `json:"score"`
	Error  string     `json:"error,omitempty"`
}

// LegalMoves returns the successor boards of board (slash notation) as a JSON array of
// slash-encoded boards, or a JSON object with an "error" field.
func LegalMoves(board, side string) string {
	b, s, err := parse(board, side)
	if err != nil {
		return errorJSON(err)
	}
	next := b.GenerateMoves(s)
	out := make([]string, 0, len(next))
	for _, n := range next {
		out = append(out, n.Encode())
	}
	return toJSON(out)
}

// BestMove searches board for side to the given depth (0 means the default depth).
func BestMove(board, side string, depth int) string {
	b, s, err := parse(board, side)
	if err != nil {
		return errorJSON(err)
	}
	res, err := engine.NewEngine().Search(context.Background(), b, s, engine.SearchConfig{MaxDepth: depth})
	if err != nil {
		return errorJSON(err)
	}
	out := bestMove{Status: res.Status.String(), Score: res.Score}
	if res.Status != engine.StatusStalled {
		out.Board = res.Board.Encode()
	}
	if res.Status == engine.StatusMoved {
		mv := res.Move
		out.Move = &mv
	}
	return toJSON(out)
}

// StartServer runs the analysis API on 127.0.0.1:port in the background so it does not
// block the caller's UI thread. webDir may be empty.
func StartServer(webDir string, port string) {
	logger, err := logging.New("info", "json")
	if err != nil {
		logger = zap.NewNop()
	}
	h := httpserver.NewHandler(engine.NewEngine(engine.WithWorkers(0)), game.NewManager(0), logger, httpserver.Options{StaticDir: webDir})
	srv := &http.Server{
		Addr:              "127.0.0.1:" + port,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("mobile server", zap.Error(err))
		}
	}()
}

func parse(board, side string) (oska.Board, oska.Side, error) {
	b, err := oska.Decode(board)
	if err != nil {
		return oska.Board{}, oska.NoSide, err
	}
	s, err := oska.ParseSide(side)
	if err != nil {
		return oska.Board{}, oska.NoSide, err
	}
	return b, s, nil
}

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return errorJSON(err)
	}
	return string(data)
}

func errorJSON(err error) string {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(data)
}
