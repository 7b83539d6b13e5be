package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"oska/internal/engine"
	"oska/internal/match"
	"oska/internal/oska"
	"oska/internal/server/game"
)

const requestIDHeader = "X-Request-ID"

type ctxKey struct{}

const (
	defaultMaxBodyBytes  = 1 << 20
	defaultMatchMaxDepth = 5
	defaultMatchTimeout  = 30 * time.Second
)

type Options struct {
	MaxDepth      int // upper bound for requested search depths
	DefaultDepth  int
	MaxPlies      int
	MatchMaxDepth int           // upper bound for per-side depths of POST /api/matches
	MatchTimeout  time.Duration // a match still running after this fails with 503
	MaxBodyBytes  int64
	StaticDir     string // optional assets served under /web/
}

// Handler serves the analysis API. It only computes; no human game is hosted.
type Handler struct {
	engine *engine.Engine
	runner *match.Runner
	games  *game.Manager
	logger *zap.Logger
	opts   Options
}

func NewHandler(e *engine.Engine, games *game.Manager, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if e == nil {
		e = engine.NewEngine(engine.WithLogger(logger))
	}
	if games == nil {
		games = game.NewManager(0)
	}
	if opts.DefaultDepth <= 0 {
		opts.DefaultDepth = engine.DefaultMaxDepth
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 8
	}
	if opts.DefaultDepth > opts.MaxDepth {
		opts.DefaultDepth = opts.MaxDepth
	}
	if opts.MaxPlies <= 0 {
		opts.MaxPlies = match.DefaultMaxPlies
	}
	if opts.MatchMaxDepth <= 0 {
		opts.MatchMaxDepth = defaultMatchMaxDepth
	}
	if opts.MatchMaxDepth > opts.MaxDepth {
		opts.MatchMaxDepth = opts.MaxDepth
	}
	if opts.MatchTimeout <= 0 {
		opts.MatchTimeout = defaultMatchTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{
		engine: e,
		runner: match.NewRunner(e, logger),
		games:  games,
		logger: logger,
		opts:   opts,
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.requestID)
	r.Use(middleware.Recoverer)
	r.Use(h.accessLog)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/moves", h.handleMoves)
		r.Post("/best_move", h.handleBestMove)
		r.Post("/evaluate", h.handleEvaluate)
		r.Post("/matches", h.handleNewMatch)
		r.Get("/matches", h.handleListMatches)
		r.Get("/matches/{id}", h.handleGetMatch)
	})
	MountStatic(r, h.opts.StaticDir)
	return r
}

func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("request",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (h *Handler) handleMoves(w http.ResponseWriter, r *http.Request) {
	var req MovesRequest
	if !h.decode(w, r, &req) {
		return
	}
	side, ok := h.boardAndSide(w, r, req.Board, req.Side)
	if !ok {
		return
	}
	moves := req.Board.LegalMoves(side)
	h.writeJSON(w, http.StatusOK, MovesResponse{
		Side:  side,
		Count: len(moves),
		Moves: movesToDTO(req.Board, moves),
	})
}

func (h *Handler) handleBestMove(w http.ResponseWriter, r *http.Request) {
	var req BestMoveRequest
	if !h.decode(w, r, &req) {
		return
	}
	side, ok := h.boardAndSide(w, r, req.Board, req.Side)
	if !ok {
		return
	}

	res, err := h.engine.Search(r.Context(), req.Board, side, engine.SearchConfig{MaxDepth: h.depth(req.MaxDepth)})
	if err != nil {
		h.fail(w, r, http.StatusServiceUnavailable, err)
		return
	}

	resp := BestMoveResponse{
		Status: res.Status.String(),
		Score:  res.Score,
		Depth:  res.Depth,
		Nodes:  res.Nodes,
		TimeMs: res.TimeUsed.Milliseconds(),
	}
	if res.Status != engine.StatusStalled {
		board := res.Board
		resp.Board = &board
	}
	if res.Status == engine.StatusMoved {
		mv := res.Move
		resp.Move = &mv
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !h.decode(w, r, &req) {
		return
	}
	side, ok := h.boardAndSide(w, r, req.Board, req.Side)
	if !ok {
		return
	}
	winner, decided := engine.Outcome(req.Board)
	h.writeJSON(w, http.StatusOK, EvaluateResponse{
		Score:   engine.Evaluate(req.Board, side),
		Decided: decided,
		Winner:  winner,
	})
}

func (h *Handler) handleNewMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	cfg := match.Config{
		WhiteDepth: h.matchDepth(req.WhiteDepth),
		BlackDepth: h.matchDepth(req.BlackDepth),
		MaxPlies:   req.MaxPlies,
	}
	if cfg.MaxPlies <= 0 || cfg.MaxPlies > h.opts.MaxPlies {
		cfg.MaxPlies = h.opts.MaxPlies
	}
	if req.Board != nil {
		cfg.Start = *req.Board
	}
	if req.First != "" {
		first, err := oska.ParseSide(req.First)
		if err != nil {
			h.fail(w, r, http.StatusBadRequest, err)
			return
		}
		cfg.First = first
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.MatchTimeout)
	defer cancel()
	res, err := h.runner.Play(ctx, cfg)
	if err != nil {
		h.fail(w, r, http.StatusServiceUnavailable, err)
		return
	}
	rec := h.games.Add(res, cfg.WhiteDepth, cfg.BlackDepth)
	h.writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleListMatches(w http.ResponseWriter, r *http.Request) {
	type summary struct {
		ID        string       `json:"id"`
		Winner    oska.Side    `json:"winner"`
		Reason    match.Reason `json:"reason"`
		Plies     int          `json:"plies"`
		CreatedAt time.Time    `json:"created_at"`
	}
	recs := h.games.List()
	out := make([]summary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, summary{
			ID:        rec.ID,
			Winner:    rec.Result.Winner,
			Reason:    rec.Result.Reason,
			Plies:     len(rec.Result.Plies),
			CreatedAt: rec.CreatedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	rec, err := h.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, http.StatusNotFound, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) depth(requested int) int {
	if requested <= 0 {
		return h.opts.DefaultDepth
	}
	if requested > h.opts.MaxDepth {
		return h.opts.MaxDepth
	}
	return requested
}

// matchDepth is depth with the tighter cap for whole games.
func (h *Handler) matchDepth(requested int) int {
	d := h.depth(requested)
	if d > h.opts.MatchMaxDepth {
		return h.opts.MatchMaxDepth
	}
	return d
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.fail(w, r, status, err)
		return false
	}
	return true
}

func (h *Handler) boardAndSide(w http.ResponseWriter, r *http.Request, b oska.Board, s string) (oska.Side, bool) {
	if b.Size() == 0 {
		h.fail(w, r, http.StatusBadRequest, oska.ErrInvalidBoard)
		return oska.NoSide, false
	}
	side, err := oska.ParseSide(s)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return oska.NoSide, false
	}
	return side, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		h.logger.Warn("request failed",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Error(err))
	}
	h.writeJSON(w, status, ErrorResponse{Error: err.Error(), RequestID: requestIDFrom(r.Context())})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("write response", zap.Int("status", status), zap.Error(err))
	}
}
