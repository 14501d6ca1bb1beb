// Package session maps opaque session keys to ledger instances. The core
// assumes session resolution happened before it runs; this registry is the
// transport collaborator that does it. Sessions live in memory only and
// expire after an idle TTL.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"kharcha/internal/ledger"
)

const sweepInterval = time.Minute

type entry struct {
	ledger   *ledger.Ledger
	lastSeen time.Time
}

// Manager owns every live session's ledger. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a registry whose sessions expire after sitting idle
// for ttl. A non-positive ttl disables expiry.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Resolve returns the ledger for id, creating a fresh session when id is
// empty or unknown. The returned id is the one the caller should hand back
// to the client.
func (m *Manager) Resolve(id string) (string, *ledger.Ledger) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if e, ok := m.sessions[id]; ok {
			e.lastSeen = m.now()
			return id, e.ledger
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	led := ledger.New(id)
	m.sessions[id] = &entry{ledger: led, lastSeen: m.now()}
	return id, led
}

// Get returns the ledger for an existing session without creating one.
func (m *Manager) Get(id string) (*ledger.Ledger, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.now()
	return e.ledger, true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run sweeps idle sessions until ctx is cancelled. Intended to run in its
// own goroutine alongside the HTTP server.
func (m *Manager) Run(ctx context.Context) error {
	if m.ttl <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep(m.now())
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// sweep drops sessions idle longer than the TTL and reports how many went.
func (m *Manager) sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := now.Add(-m.ttl)
	removed := 0
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
