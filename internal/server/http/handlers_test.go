package httpserver

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"oska/internal/engine"
	"oska/internal/server/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zaptest.NewLogger(t)
	h := NewHandler(engine.NewEngine(engine.WithWorkers(2), engine.WithLogger(logger)), game.NewManager(4), logger, Options{
		MaxDepth:     4,
		DefaultDepth: 3,
		MaxPlies:     80,
	})
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path string, body any, out any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp
}

func TestMovesEndpoint(t *testing.T) {
	srv := newTestServer(t)
	var out struct {
		Side  string `json:"side"`
		Count int    `json:"count"`
		Moves []struct {
			Move struct {
				Capture bool `json:"capture"`
			} `json:"move"`
			Board []string `json:"board"`
		} `json:"moves"`
	}
	resp := postJSON(t, srv, "/api/moves", map[string]any{
		"board": []string{"---w", "w-w", "bb", "b-w", "---b"},
		"side":  "w",
	}, &out)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Fatalf("missing request id header")
	}
	if out.Side != "w" || out.Count != 3 || len(out.Moves) != 3 {
		t.Fatalf("unexpected response %+v", out)
	}
	if !out.Moves[0].Move.Capture || out.Moves[2].Move.Capture || out.Moves[2].Board[4] != "--wb" {
		t.Fatalf("unexpected moves %+v", out.Moves)
	}
}

func TestMovesEndpointRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "jagged board", body: map[string]any{"board": []string{"www", "---", "bbb"}, "side": "w"}},
		{name: "bad side", body: map[string]any{"board": "wwww/---/--/---/bbbb", "side": "red"}},
		{name: "missing board", body: map[string]any{"side": "b"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var out ErrorResponse
			resp := postJSON(t, srv, "/api/moves", tt.body, &out)
			if resp.StatusCode != http.StatusBadRequest || out.Error == "" || out.RequestID == "" {
				t.Fatalf("status=%d body=%+v", resp.StatusCode, out)
			}
		})
	}
}

func TestBestMoveEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var moved BestMoveResponse
	resp := postJSON(t, srv, "/api/best_move", map[string]any{
		"board":     "---w/w-w/bb/b-w/---b",
		"side":      "w",
		"max_depth": 1,
	}, &moved)
	if resp.StatusCode != http.StatusOK || moved.Status != "moved" || moved.Board == nil || moved.Move == nil {
		t.Fatalf("status=%d body=%+v", resp.StatusCode, moved)
	}
	if moved.Board.Encode() != "---w/w-w/bb/b--/--wb" || moved.Depth != 1 {
		t.Fatalf("best move %s depth %d", moved.Board.Encode(), moved.Depth)
	}

	var capped BestMoveResponse
	postJSON(t, srv, "/api/best_move", map[string]any{"board": "wwww/---/--/---/bbbb", "side": "b", "max_depth": 50}, &capped)
	if capped.Depth != 4 {
		t.Fatalf("depth not capped: %d", capped.Depth)
	}

	var stalled BestMoveResponse
	postJSON(t, srv, "/api/best_move", map[string]any{"board": "----/---/--/---/w--w", "side": "w"}, &stalled)
	if stalled.Status != "stalled" || stalled.Board != nil {
		t.Fatalf("stalled response %+v", stalled)
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	srv := newTestServer(t)
	var out EvaluateResponse
	postJSON(t, srv, "/api/evaluate", map[string]any{"board": "----/-w-/--/---/----", "side": "w"}, &out)
	if out.Score != engine.WinScore || !out.Decided || out.Winner.String() != "w" {
		t.Fatalf("unexpected evaluation %+v", out)
	}
}

func TestMatchLifecycle(t *testing.T) {
	srv := newTestServer(t)

	var created game.Record
	resp := postJSON(t, srv, "/api/matches", map[string]any{"white_depth": 2, "black_depth": 2, "max_plies": 10}, &created)
	if resp.StatusCode != http.StatusCreated || created.ID == "" || created.Result == nil {
		t.Fatalf("status=%d record=%+v", resp.StatusCode, created)
	}
	if n := len(created.Result.Plies); n == 0 || n > 10 {
		t.Fatalf("played %d plies", n)
	}

	get, err := http.Get(srv.URL + "/api/matches/" + created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer get.Body.Close()
	var fetched game.Record
	if err := json.NewDecoder(get.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if get.StatusCode != http.StatusOK || fetched.ID != created.ID || !fetched.Result.Final.Equal(created.Result.Final) {
		t.Fatalf("fetched %+v", fetched)
	}

	list, err := http.Get(srv.URL + "/api/matches")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer list.Body.Close()
	var summaries []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(list.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != created.ID {
		t.Fatalf("list = %+v", summaries)
	}

	missing, err := http.Get(srv.URL + "/api/matches/does-not-exist")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("missing match status %d", missing.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestRequestBodyLimit(t *testing.T) {
	logger := zaptest.NewLogger(t)
	h := NewHandler(nil, nil, logger, Options{MaxBodyBytes: 64})
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	body := `{"board":"wwww/---/--/---/bbbb","side":"w","padding":"` + strings.Repeat("x", 256) + `"}`
	resp, err := http.Post(srv.URL+"/api/moves", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestMatchLimits(t *testing.T) {
	logger := zaptest.NewLogger(t)
	tests := []struct {
		name       string
		opts       Options
		depth      int
		wantStatus int
		wantDepth  int
	}{
		{name: "depth capped", opts: Options{MaxDepth: 8, MatchMaxDepth: 2}, depth: 6, wantStatus: http.StatusCreated, wantDepth: 2},
		{name: "match cap follows search cap", opts: Options{MaxDepth: 3, MatchMaxDepth: 6}, depth: 6, wantStatus: http.StatusCreated, wantDepth: 3},
		{name: "timed out", opts: Options{MatchTimeout: time.Nanosecond}, depth: 3, wantStatus: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(nil, nil, logger, tt.opts)
			srv := httptest.NewServer(h.Routes())
			defer srv.Close()

			var rec game.Record
			var out any = &rec
			if tt.wantStatus != http.StatusCreated {
				out = &ErrorResponse{}
			}
			resp := postJSON(t, srv, "/api/matches", map[string]any{"white_depth": tt.depth, "black_depth": tt.depth, "max_plies": 2}, out)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusCreated && (rec.WhiteDepth != tt.wantDepth || rec.BlackDepth != tt.wantDepth) {
				t.Fatalf("depths %d/%d, want %d", rec.WhiteDepth, rec.BlackDepth, tt.wantDepth)
			}
		})
	}
}

func TestWriteJSONLogsEncodeErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := NewHandler(nil, nil, zap.New(core), Options{})

	rec := httptest.NewRecorder()
	h.writeJSON(rec, http.StatusOK, map[string]float64{"score": math.Inf(1)})

	entries := logs.FilterMessage("write response").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
}
