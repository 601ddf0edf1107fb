package session

import (
	"sync"
	"time"

	"finbot/internal/domain"

	"go.uber.org/zap"
)

// Registry owns the set of active sessions keyed by user ID.
// The registry mutex guards only the map; each session carries its own
// lock so handlers for different users run fully in parallel.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	logger   *zap.Logger
}

// NewRegistry creates an empty session registry
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*domain.Session),
		logger:   logger,
	}
}

// GetOrCreate returns the existing session for the user or atomically
// creates a fresh one at the start of the dialog
func (r *Registry) GetOrCreate(userID string) *domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[userID]; ok {
		return sess
	}

	sess := domain.NewSession(userID)
	r.sessions[userID] = sess
	r.logger.Info("Session created", zap.String("user_id", userID))

	return sess
}

// Get returns the session for the user, if any
func (r *Registry) Get(userID string) (*domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[userID]
	return sess, ok
}

// Remove deletes the session for the user
func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

// Sweep evicts every session idle longer than timeout. A session whose
// lock cannot be acquired has a handler in flight and is skipped; it
// will be picked up by a later sweep.
func (r *Registry) Sweep(timeout time.Duration) int {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for userID, sess := range r.sessions {
		if !sess.TryLock() {
			continue
		}
		idle := sess.IdleSince(now)
		sess.Unlock()

		if idle > timeout {
			delete(r.sessions, userID)
			evicted++
			r.logger.Info("Session evicted",
				zap.String("user_id", userID),
				zap.Duration("idle", idle),
			)
		}
	}

	return evicted
}

// Len returns the number of active sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
