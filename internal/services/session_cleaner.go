package services

import (
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type sessionSweeper interface {
	RemoveFinishedBefore(t time.Time) int
}

// SessionCleaner periodically evicts finished sessions older than the
// retention window. The legacy behavior kept every session forever; retention
// is therefore opt-in and a zero value refuses to construct the cleaner.
type SessionCleaner struct {
	sessions  sessionSweeper
	cron      *cron.Cron
	retention time.Duration
}

func NewSessionCleaner(sessions sessionSweeper, retention time.Duration) (*SessionCleaner, error) {

	if retention <= 0 {
		return nil, errors.New("session retention must be greater than zero")
	}

	sc := &SessionCleaner{
		sessions:  sessions,
		cron:      cron.New(),
		retention: retention,
	}

	if _, err := sc.cron.AddFunc("@hourly", sc.cleanFinishedSessions); err != nil {
		return nil, err
	}

	sc.cron.Start()
	log.Infof("session cleaner started, retention: %v", sc.retention)
	return sc, nil
}

func (sc *SessionCleaner) Stop() {
	sc.cron.Stop()
}

func (sc *SessionCleaner) cleanFinishedSessions() {
	removed := sc.sessions.RemoveFinishedBefore(time.Now().Add(-sc.retention))
	if removed > 0 {
		log.Infof("evicted %v finished scrape sessions", removed)
	}
}
