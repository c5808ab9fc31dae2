package domain

import (
	"sync"
	"time"
)

// Session is the per-connection state the relay keeps: the server-assigned
// connection ID plus the opaque identity the client announced on its last
// join-room. Room membership itself lives in the registry, not here.
type Session struct {
	ID           string
	userID       string
	userName     string
	createdAt    time.Time
	lastActiveAt time.Time
	mu           sync.RWMutex
}

// NewSession creates a session for a connection ID.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		createdAt:    now,
		lastActiveAt: now,
	}
}

// SetIdentity records the client-supplied identity. Opaque strings; the
// relay never validates them, it only echoes them in presence events.
func (s *Session) SetIdentity(userID, userName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.userName = userName
	s.lastActiveAt = time.Now()
}

// Identity returns the last announced userID and userName.
func (s *Session) Identity() (userID, userName string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.userName
}

// UpdateActivity updates the last active timestamp.
func (s *Session) UpdateActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActiveAt = time.Now()
}
