package domain

import (
	"sync"
	"time"
)

// DialogState represents the current phase of a user's conversation
type DialogState string

const (
	StateStart               DialogState = "start"
	StateAuthentication      DialogState = "authentication"
	StateMainMenu            DialogState = "main_menu"
	StateProcessingRequest   DialogState = "processing"
	StateWaitingConfirmation DialogState = "waiting_confirmation"
	StateEnd                 DialogState = "end"
)

// Session holds one user's conversational state.
// Fields are mutated only by dialog handlers while the session lock is held.
type Session struct {
	mu sync.Mutex

	UserID        string
	State         DialogState
	Authenticated bool
	ClientID      string
	AuthAttempts  int
	CurrentIntent string
	LastActivity  time.Time
}

// NewSession creates a session at the start of the dialog
func NewSession(userID string) *Session {
	return &Session{
		UserID:       userID,
		State:        StateStart,
		LastActivity: time.Now(),
	}
}

// Lock acquires the per-session lock, serializing handlers for this user
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the per-session lock
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// TryLock acquires the lock without blocking. The eviction sweep uses it
// to skip sessions with a handler in flight.
func (s *Session) TryLock() bool {
	return s.mu.TryLock()
}

// UpdateState transitions the dialog and refreshes activity time
func (s *Session) UpdateState(state DialogState) {
	s.State = state
	s.LastActivity = time.Now()
}

// Touch refreshes activity time without changing state
func (s *Session) Touch() {
	s.LastActivity = time.Now()
}

// Authenticate marks the session as verified for the given client ID
func (s *Session) Authenticate(clientID string) {
	s.ClientID = clientID
	s.Authenticated = true
}

// IdleSince reports how long the session has been inactive
func (s *Session) IdleSince(now time.Time) time.Duration {
	return now.Sub(s.LastActivity)
}
