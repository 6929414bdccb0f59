package session

import (
	"context"
	"sync"

	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// Registry tracks live sessions by id for the transports.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      Config
}

// NewRegistry builds an empty registry; cfg is the template for every
// session it starts.
func NewRegistry(cfg Config) *Registry {
	return &Registry{sessions: make(map[string]*Session), cfg: cfg}
}

// Start creates a session bound to the save slot and registers it.
func (r *Registry) Start(ctx context.Context, slot string) (*Session, error) {
	cfg := r.cfg
	if slot != "" {
		cfg.Slot = slot
	}
	s, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	return s, nil
}

// Get returns a live session.
func (r *Registry) Get(sessionID string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.WithMetadata(
			apperrors.CodeSessionNotFound,
			"no live session with id",
			map[string]string{"SessionID": sessionID},
		)
	}
	return s, nil
}

// End removes a session from the registry.
func (r *Registry) End(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

// Len reports the live session count.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
