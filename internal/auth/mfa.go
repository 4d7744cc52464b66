package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// mfaSession is a pending MFA challenge created by a successful password
// check. It is single-use: consumed on successful verification.
type mfaSession struct {
	userID    string
	expiresAt time.Time
}

// SessionStore holds pending MFA challenge sessions in process memory.
// Sessions never touch the database; a restart invalidates all pending
// challenges, which is the correct failure mode for a login flow.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]mfaSession
	ttl      time.Duration
	now      func() time.Time // test hook
}

// NewSessionStore creates a session store with the given challenge TTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]mfaSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a new MFA challenge for a user and returns its opaque
// session ID.
func (s *SessionStore) Create(userID string) string {
	id := "mfa-" + uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = mfaSession{
		userID:    userID,
		expiresAt: s.now().Add(s.ttl),
	}
	return id
}

// Consume validates a challenge session and returns the user ID it was
// created for. A successful consume deletes the session. An expired
// session is deleted on detection. An unknown session and a live session
// are indistinguishable from the caller's perspective only on success —
// errors identify the failure so the handler can map it to a response.
//
// Note: Consume does not check the code; the code belongs to the
// authenticator, which owns the comparison.
func (s *SessionStore) Consume(sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return "", ErrInvalidSession
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return "", ErrSessionExpired
	}

	delete(s.sessions, sessionID)
	return sess.userID, nil
}

// Peek returns the user ID for a live session without consuming it.
// Used when the verification code is wrong: the user may retry against
// the same session until it expires.
func (s *SessionStore) Peek(sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return "", ErrInvalidSession
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return "", ErrSessionExpired
	}
	return sess.userID, nil
}

// Sweep removes all expired sessions. Returns the number removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions on the given interval until the context is
// cancelled.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Len returns the number of pending sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
