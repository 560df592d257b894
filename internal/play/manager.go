package play

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/playmatatu/golf/internal/golf"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many live sessions")
)

// Manager tracks every live session on this server.
type Manager struct {
	sessions    map[string]*Session
	physics     golf.PhysicsConfig
	maxSessions int
	idleTimeout time.Duration
	mu          sync.RWMutex
}

func NewManager(physics golf.PhysicsConfig, maxSessions int, idleTimeout time.Duration) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		physics:     physics,
		maxSessions: maxSessions,
		idleTimeout: idleTimeout,
	}
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Create starts tracking a new session on hole. The caller runs it.
func (m *Manager) Create(courseID int, hole golf.HoleData, publish func(Event)) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, ErrTooManySessions
	}

	id := "sess_" + generateToken(8)
	for _, exists := m.sessions[id]; exists; _, exists = m.sessions[id] {
		id = "sess_" + generateToken(8)
	}
	s := NewSession(id, courseID, hole, m.physics, publish)
	m.sessions[id] = s
	log.Printf("[PLAY] Session %s created for course %d (%d live)", id, courseID, len(m.sessions))
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove stops and forgets a session.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Stop()
		log.Printf("[PLAY] Session %s removed", id)
	}
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartExpiryChecker removes idle sessions every interval until ctx ends.
func (m *Manager) StartExpiryChecker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.expireIdle(now)
		}
	}
}

func (m *Manager) expireIdle(now time.Time) int {
	if m.idleTimeout <= 0 {
		return 0
	}

	// Collect candidates under read lock
	m.mu.RLock()
	var expired []string
	for id, s := range m.sessions {
		if now.Sub(s.IdleSince()) > m.idleTimeout {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range expired {
		log.Printf("[PLAY] Session %s idle for over %v, expiring", id, m.idleTimeout)
		m.Remove(id)
	}
	return len(expired)
}
