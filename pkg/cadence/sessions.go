package cadence

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/cadencehq/cadence/pkg/models"
)

// session is one issued bearer token: who it belongs to and when it stops
// working.
type session struct {
	user      *models.User
	expiresAt time.Time
}

// sessionStore keeps issued tokens in memory, guarded by a mutex. Sessions
// share the fate of the process; a restart logs everyone out, which matches
// the in-memory submission store.
type sessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]session
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:      ttl,
		sessions: make(map[string]session),
	}
}

// Create issues a fresh token for the user. The store keeps its own copy of
// the user record.
func (s *sessionStore) Create(user *models.User) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	stored := *user
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{
		user:      &stored,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

// Get resolves a token to a copy of its user, so no two callers ever share a
// struct. Expired sessions are removed lazily on lookup rather than by a
// background sweeper.
func (s *sessionStore) Get(token string) (*models.User, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(sess.expiresAt) {
		s.Delete(token)
		return nil, false
	}
	user := *sess.user
	return &user, true
}

// Delete invalidates a token. Unknown tokens are ignored.
func (s *sessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// generateToken returns a 64-character hex token backed by 32 bytes of
// crypto/rand entropy.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
