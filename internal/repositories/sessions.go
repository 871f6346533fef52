package repositories

import (
	"sync"
	"time"

	"github.com/0xLLM73/job-scraper/internal/entities"
)

// Sessions is the in-memory scrape session registry. Lookups and inserts are
// safe under concurrent submitters and status pollers; mutation of a session's
// own fields is guarded by the session itself.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*entities.ScrapeSession
}

func NewSessionRegistry() *Sessions {
	return &Sessions{sessions: make(map[string]*entities.ScrapeSession)}
}

func (s *Sessions) Add(session *entities.ScrapeSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
}

func (s *Sessions) Get(id string) (*entities.ScrapeSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// RemoveFinishedBefore evicts sessions that reached a terminal status before
// the given time and returns how many were removed.
func (s *Sessions) RemoveFinishedBefore(t time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.FinishedBefore(t) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
