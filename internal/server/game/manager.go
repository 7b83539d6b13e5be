package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"oska/internal/match"
)

var ErrMatchNotFound = errors.New("match not found")

// DefaultCapacity bounds how many records a Manager keeps before dropping the oldest.
const DefaultCapacity = 256

type Manager struct {
	mu       sync.RWMutex
	records  map[string]*Record
	order    []string
	capacity int
}

func NewManager(capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{
		records:  make(map[string]*Record),
		capacity: capacity,
	}
}

// Add stores res under a fresh ID.
func (m *Manager) Add(res *match.Result, whiteDepth, blackDepth int) *Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := &Record{
		ID:         uuid.NewString(),
		WhiteDepth: whiteDepth,
		BlackDepth: blackDepth,
		Result:     res,
		CreatedAt:  time.Now(),
	}
	m.records[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	for len(m.order) > m.capacity {
		delete(m.records, m.order[0])
		m.order = m.order[1:]
	}
	return rec
}

func (m *Manager) Get(id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return rec, nil
}

// List returns the stored records, newest first.
func (m *Manager) List() []*Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Record, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.records[m.order[i]])
	}
	return out
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
