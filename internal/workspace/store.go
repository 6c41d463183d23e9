package workspace

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"kwbrand/internal/models"
)

// DefaultTTL is how long an idle workspace is kept.
const DefaultTTL = 2 * time.Hour

// Store keeps workspaces in memory, keyed by ID.
type Store struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	ttl        time.Duration
	presets    []models.ManualRule
	now        func() time.Time
}

// NewStore creates an empty store. presets seed the rules of every new
// workspace.
func NewStore(ttl time.Duration, presets []models.ManualRule) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		workspaces: make(map[string]*Workspace),
		ttl:        ttl,
		presets:    presets,
		now:        time.Now,
	}
}

// TTL returns the idle timeout.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create registers a new workspace under a fresh ID.
func (s *Store) Create() *Workspace {
	w := newWorkspace(uuid.NewString(), s.now(), s.presets)

	s.mu.Lock()
	s.workspaces[w.ID] = w
	s.mu.Unlock()
	return w
}

// Get returns the workspace with the given ID and marks it as used.
func (s *Store) Get(id string) (*Workspace, bool) {
	s.mu.RLock()
	w, ok := s.workspaces[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	w.touch(s.now())
	return w, true
}

// GetOrCreate returns the workspace for id, creating a new one when id is
// unknown or empty.
func (s *Store) GetOrCreate(id string) (*Workspace, bool) {
	if id != "" {
		if w, ok := s.Get(id); ok {
			return w, false
		}
	}
	return s.Create(), true
}

// Delete drops a workspace.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.workspaces, id)
	s.mu.Unlock()
}

// Len returns the number of live workspaces.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}

// Reap removes workspaces idle for longer than the TTL and returns how many
// were removed.
func (s *Store) Reap() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, w := range s.workspaces {
		if w.LastSeen().Before(cutoff) {
			delete(s.workspaces, id)
			removed++
		}
	}
	return removed
}
