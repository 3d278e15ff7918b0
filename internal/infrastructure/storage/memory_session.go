package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
)

type sessionEntry struct {
	mu      sync.Mutex
	session entity.Session
}

type memorySessionRepository struct {
	mu          sync.RWMutex
	sessions    map[string]*sessionEntry
	currency    entity.CurrencyCode
	maxSessions int
}

// SessionOption session repository sozlamasi
type SessionOption func(*memorySessionRepository)

// WithMaxSessions caps the number of stored sessions. Creating a session at the
// cap evicts the least recently updated one. n <= 0 means no cap.
func WithMaxSessions(n int) SessionOption {
	return func(m *memorySessionRepository) {
		m.maxSessions = n
	}
}

// NewMemorySessionRepository in-memory session repository yaratish.
// New sessions start on the home page with defaultCurrency selected.
func NewMemorySessionRepository(defaultCurrency entity.CurrencyCode, opts ...SessionOption) repository.SessionRepository {
	m := &memorySessionRepository{
		sessions: make(map[string]*sessionEntry),
		currency: defaultCurrency,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetOrCreate sessiyani olish yoki yaratish
func (m *memorySessionRepository) GetOrCreate(ctx context.Context, id string) (entity.Session, error) {
	if id != "" {
		if entry := m.lookup(id); entry != nil {
			return entry.snapshot(), nil
		}
	} else {
		id = uuid.New().String()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// another request may have created it meanwhile
	if entry, ok := m.sessions[id]; ok {
		return entry.snapshot(), nil
	}

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		m.evictOldestLocked()
	}

	now := time.Now()
	entry := &sessionEntry{session: entity.Session{
		ID:        id,
		Cart:      []entity.CartLine{},
		Currency:  m.currency,
		Page:      entity.PageHome,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	m.sessions[id] = entry
	return entry.snapshot(), nil
}

// Get sessiyani olish
func (m *memorySessionRepository) Get(ctx context.Context, id string) (entity.Session, error) {
	entry := m.lookup(id)
	if entry == nil {
		return entity.Session{}, fmt.Errorf("session %s: %w", id, entity.ErrSessionNotFound)
	}
	return entry.snapshot(), nil
}

// Update sessiyani lock ostida o'zgartirish
func (m *memorySessionRepository) Update(ctx context.Context, id string, fn func(s *entity.Session) error) (entity.Session, error) {
	entry := m.lookup(id)
	if entry == nil {
		return entity.Session{}, fmt.Errorf("session %s: %w", id, entity.ErrSessionNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	working := entry.session.Clone()
	if err := fn(&working); err != nil {
		return entry.session.Clone(), err
	}
	working.ID = entry.session.ID
	working.UpdatedAt = time.Now()
	entry.session = working
	return working.Clone(), nil
}

// evictOldestLocked drops the least recently updated session; m.mu must be held
func (m *memorySessionRepository) evictOldestLocked() {
	var (
		oldestID string
		oldestAt time.Time
	)
	for id, entry := range m.sessions {
		at := entry.snapshotUpdatedAt()
		if oldestID == "" || at.Before(oldestAt) {
			oldestID, oldestAt = id, at
		}
	}
	delete(m.sessions, oldestID)
}

func (m *memorySessionRepository) lookup(id string) *sessionEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

func (e *sessionEntry) snapshot() entity.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone()
}

func (e *sessionEntry) snapshotUpdatedAt() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.UpdatedAt
}
