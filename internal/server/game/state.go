package game

import (
	"time"

	"oska/internal/match"
)

// Record is a finished engine-vs-engine match kept in memory.
type Record struct {
	ID         string        `json:"id"`
	WhiteDepth int           `json:"white_depth"`
	BlackDepth int           `json:"black_depth"`
	Result     *match.Result `json:"result"`
	CreatedAt  time.Time     `json:"created_at"`
}
