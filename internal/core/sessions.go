package core

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/view"
)

var (
	// ErrSessionExpired is returned when a request names a session that is gone.
	ErrSessionExpired = errors.New("view session expired")

	// ErrUnknownAction is returned for table actions with no handler.
	ErrUnknownAction = errors.New("unknown table action")

	// ErrProductNotFound is returned when a product id is not in the full set.
	ErrProductNotFound = errors.New("product not found")
)

// Session is one browser's view of the catalog.
//
// Handlers for a session run one at a time: Do holds the session lock for
// the duration of the callback. Remote calls are made outside Do and their
// results applied inside it, so a slow catalog never blocks the table.
type Session struct {
	ID uuid.UUID

	mu     sync.Mutex
	state  *view.State
	loaded bool
}

// Do runs fn with exclusive access to the session's view state.
func (s *Session) Do(fn func(st *view.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Loaded reports whether the full set was fetched at least once.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// replaceFullSet installs a freshly fetched product list.
func (s *Session) replaceFullSet(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetFullSet(products)
	s.loaded = true
}

// Sessions is the registry of live view sessions.
type Sessions struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*sessionEntry
	pageSize int
	idle     time.Duration
	now      func() time.Time
}

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

// NewSessions creates a registry. New sessions start with pageSize rows per
// page; sessions unused for idle are removed by Sweep.
func NewSessions(pageSize int, idle time.Duration) *Sessions {
	return &Sessions{
		byID:     make(map[uuid.UUID]*sessionEntry),
		pageSize: pageSize,
		idle:     idle,
		now:      time.Now,
	}
}

// Create starts a new, not yet loaded, session.
func (m *Sessions) Create() *Session {
	sess := &Session{
		ID:    uuid.New(),
		state: view.New(m.pageSize),
	}

	m.mu.Lock()
	m.byID[sess.ID] = &sessionEntry{session: sess, lastSeen: m.now()}
	m.mu.Unlock()

	return sess
}

// Get returns the session with the given id and marks it as used.
func (m *Sessions) Get(id string) (*Session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSessionExpired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.byID[uid]
	if !ok {
		return nil, ErrSessionExpired
	}
	entry.lastSeen = m.now()
	return entry.session, nil
}

// Sweep removes sessions idle for longer than the configured timeout and
// returns how many were removed.
func (m *Sessions) Sweep() int {
	cutoff := m.now().Add(-m.idle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, entry := range m.byID {
		if entry.lastSeen.Before(cutoff) {
			delete(m.byID, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (m *Sessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}
