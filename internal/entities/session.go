package entities

import (
	"fmt"
	"sync"
	"time"
)

type SessionStatus string

const (
	SessionRunning   SessionStatus = "running"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
)

// ScrapeSession tracks one batch-scrape invocation. Only the session's own
// background worker mutates it; status pollers read concurrently through
// Snapshot, so every access goes through the internal lock.
type ScrapeSession struct {
	mu         sync.RWMutex
	id         string
	status     SessionStatus
	totalURLs  int
	completed  int
	results    []ScrapedJob
	errors     []string
	createdAt  time.Time
	finishedAt time.Time
}

// SessionSnapshot is a point-in-time copy of a session's state, safe to
// serialize while the batch is still running.
type SessionSnapshot struct {
	SessionID  string        `json:"session_id"`
	Status     SessionStatus `json:"status"`
	TotalURLs  int           `json:"total_urls"`
	Completed  int           `json:"completed"`
	Results    []ScrapedJob  `json:"results"`
	Errors     []string      `json:"errors"`
	CreatedAt  time.Time     `json:"created_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
}

func NewScrapeSession(id string, totalURLs int) *ScrapeSession {
	return &ScrapeSession{
		id:        id,
		status:    SessionRunning,
		totalURLs: totalURLs,
		createdAt: time.Now(),
	}
}

func (s *ScrapeSession) ID() string {
	return s.id
}

func (s *ScrapeSession) AppendResult(result ScrapedJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

func (s *ScrapeSession) AppendError(url string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, fmt.Sprintf("failed to scrape %s: %v", url, err))
}

// MarkURLDone advances the progress counter by exactly one, independent of
// whether the URL succeeded or failed.
func (s *ScrapeSession) MarkURLDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed++
}

func (s *ScrapeSession) MarkCompleted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = SessionCompleted
	s.finishedAt = time.Now()
}

func (s *ScrapeSession) MarkFailed(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = SessionFailed
	s.errors = append(s.errors, reason)
	s.finishedAt = time.Now()
}

func (s *ScrapeSession) Status() SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// FinishedBefore reports whether the session reached a terminal status
// earlier than the given time.
func (s *ScrapeSession) FinishedBefore(t time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status != SessionRunning && s.finishedAt.Before(t)
}

func (s *ScrapeSession) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := SessionSnapshot{
		SessionID: s.id,
		Status:    s.status,
		TotalURLs: s.totalURLs,
		Completed: s.completed,
		Results:   make([]ScrapedJob, len(s.results)),
		Errors:    make([]string, len(s.errors)),
		CreatedAt: s.createdAt,
	}
	copy(snapshot.Results, s.results)
	copy(snapshot.Errors, s.errors)

	if s.status != SessionRunning {
		finishedAt := s.finishedAt
		snapshot.FinishedAt = &finishedAt
	}
	return snapshot
}
