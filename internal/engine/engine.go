package engine

import (
	"runtime"

	"go.uber.org/zap"
)

// DefaultMaxDepth is used when a search is requested with a non-positive depth.
const DefaultMaxDepth = 5

// Engine holds search settings only and is safe for concurrent Search calls.
type Engine struct {
	workers int
	logger  *zap.Logger
}

type Option func(*Engine)

// WithWorkers bounds how many root children are searched at once. Values below 1 mean
// one worker per CPU.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		workers: 1,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

func (e *Engine) Workers() int { return e.workers }
