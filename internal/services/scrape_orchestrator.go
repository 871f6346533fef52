package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/0xLLM73/job-scraper/internal/clients/firecrawl"
	"github.com/0xLLM73/job-scraper/internal/entities"
	"github.com/0xLLM73/job-scraper/internal/events"
	"github.com/0xLLM73/job-scraper/internal/logger"
	"github.com/0xLLM73/job-scraper/internal/metrics"
	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type scrapeClient interface {
	ScrapeJobOverview(ctx context.Context, url string) (*firecrawl.ScrapeData, error)
	ScrapeApplicationForm(ctx context.Context, url string) (*firecrawl.ScrapeData, error)
}

type jobStore interface {
	ExistsByURL(ctx context.Context, url string) (bool, error)
	StoreScrapedJob(ctx context.Context, record *entities.ScrapedJob) (uint, error)
}

type sessionRegistry interface {
	Add(session *entities.ScrapeSession)
	Get(id string) (*entities.ScrapeSession, bool)
}

// ScrapeOrchestrator coordinates batch scrapes. Each Submit spawns one
// background worker that walks the URL list in order, isolating per-URL
// failures from the rest of the batch. The session registry is the only state
// shared between batches.
type ScrapeOrchestrator struct {
	bus              EventBus.Bus
	client           scrapeClient
	jobs             jobStore
	mapper           *EntityMapper
	sessions         sessionRegistry
	requestDelay     time.Duration
	requestTimeout   time.Duration
	sessionContexts  sync.Map
	completeCallback func(sessionID string)
}

func NewScrapeOrchestrator(bus EventBus.Bus, client scrapeClient, jobs jobStore,
	sessions sessionRegistry, requestDelay, requestTimeout time.Duration) *ScrapeOrchestrator {

	return &ScrapeOrchestrator{
		bus:            bus,
		client:         client,
		jobs:           jobs,
		mapper:         NewEntityMapper(),
		sessions:       sessions,
		requestDelay:   requestDelay,
		requestTimeout: requestTimeout,
	}
}

// WithBatchCompleteCallback registers a callback fired when a batch reaches a
// terminal status. Used by tests to synchronize with the background worker.
func (o *ScrapeOrchestrator) WithBatchCompleteCallback(callback func(sessionID string)) {
	o.completeCallback = callback
}

// Submit registers a new session and starts its background worker. The
// session id is returned immediately; progress is observed through GetStatus.
// persist controls whether normalized records are handed to the job store.
func (o *ScrapeOrchestrator) Submit(urls []string, persist bool) (string, error) {

	if len(urls) == 0 {
		return "", ErrNoURLs
	}

	session := entities.NewScrapeSession(uuid.NewString(), len(urls))
	o.sessions.Add(session)

	ctx, cancel := context.WithCancel(context.Background())
	o.sessionContexts.Store(session.ID(), cancel)

	go o.runBatch(ctx, session, urls, persist)

	log.Infof("session %v started for %v urls", session.ID(), len(urls))
	return session.ID(), nil
}

// Cancel stops a running session's worker. The session ends up failed with a
// tagged error once the worker observes the signal.
func (o *ScrapeOrchestrator) Cancel(sessionID string) error {
	if _, ok := o.sessions.Get(sessionID); !ok {
		return ErrSessionNotFound
	}
	if cancel, ok := o.sessionContexts.Load(sessionID); ok {
		cancel.(context.CancelFunc)()
	}
	return nil
}

// GetStatus returns the current snapshot of a session, which may still be
// mutating.
func (o *ScrapeOrchestrator) GetStatus(sessionID string) (entities.SessionSnapshot, error) {
	session, ok := o.sessions.Get(sessionID)
	if !ok {
		return entities.SessionSnapshot{}, ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// GetResults is GetStatus under a name matching the caller-facing surface;
// the snapshot already carries the accumulated records.
func (o *ScrapeOrchestrator) GetResults(sessionID string) (entities.SessionSnapshot, error) {
	return o.GetStatus(sessionID)
}

func (o *ScrapeOrchestrator) runBatch(ctx context.Context, session *entities.ScrapeSession, urls []string, persist bool) {

	defer o.sessionContexts.Delete(session.ID())
	defer func() {
		if r := recover(); r != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeOrchestrator).
				Errorf("batch loop failed for session %v: %v", session.ID(), r)
			session.MarkFailed(fmt.Sprintf("batch aborted: %v", r))
		}
		if o.completeCallback != nil {
			o.completeCallback(session.ID())
		}
	}()

	start := time.Now()

	for i, url := range urls {
		if i > 0 && !o.waitBetweenRequests(ctx) {
			session.MarkFailed("session canceled")
			return
		}

		log.Infof("scraping job %v/%v of session %v: %v", i+1, len(urls), session.ID(), url)
		o.scrapeURL(ctx, session, url, persist)
		session.MarkURLDone()

		if ctx.Err() != nil {
			session.MarkFailed("session canceled")
			return
		}
	}

	session.MarkCompleted()
	metrics.SessionDuration.Observe(time.Since(start).Seconds())
	log.Infof("session %v completed after %v", session.ID(), time.Since(start))
}

// scrapeURL runs the fetch-and-map pipeline for one URL. Failures are
// recorded on the session, never raised: an unusable overview skips the URL,
// a failed form scrape degrades to a posting-only record, and a persistence
// failure leaves the record without a stored id.
func (o *ScrapeOrchestrator) scrapeURL(ctx context.Context, session *entities.ScrapeSession, url string, persist bool) {

	overview, err := o.fetchOverview(ctx, url)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeFirecrawlApi).
			Errorf("overview scrape failed for %v: %v", url, err)
		session.AppendError(url, err)
		return
	}

	form, err := o.fetchApplicationForm(ctx, url)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeFirecrawlApi).
			Warnf("form scrape failed for %v, keeping posting only: %v", url, err)
		form = nil
	}

	record := o.mapper.MapScrapedJob(url, overview, form)

	if persist && o.jobs != nil {
		o.storeRecord(ctx, url, &record)
	}

	session.AppendResult(record)
	metrics.ScrapedJobsCounter.Inc()
	o.bus.Publish(events.JobScrapedTopic, events.JobScraped{
		SessionID:   session.ID(),
		URL:         url,
		JobTitle:    record.JobPosting.JobTitle,
		CompanyName: record.JobPosting.CompanyName,
		StoredJobID: record.StoredJobID,
	})
}

func (o *ScrapeOrchestrator) fetchOverview(ctx context.Context, url string) (*firecrawl.ScrapeData, error) {
	ctx, cancel := o.requestContext(ctx)
	defer cancel()

	start := time.Now()
	overview, err := o.client.ScrapeJobOverview(ctx, url)
	metrics.ScrapePhaseDuration.WithLabelValues("overview").Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, err
	}
	if overview.Empty() {
		return nil, ErrEmptyResult
	}
	return overview, nil
}

func (o *ScrapeOrchestrator) fetchApplicationForm(ctx context.Context, url string) (*firecrawl.ScrapeData, error) {
	ctx, cancel := o.requestContext(ctx)
	defer cancel()

	start := time.Now()
	form, err := o.client.ScrapeApplicationForm(ctx, url)
	metrics.ScrapePhaseDuration.WithLabelValues("form").Observe(time.Since(start).Seconds())
	return form, err
}

// storeRecord hands the record to the persistence layer. Scrape success and
// store success are orthogonal: a failure here is logged and counted but the
// scrape stays successful.
func (o *ScrapeOrchestrator) storeRecord(ctx context.Context, url string, record *entities.ScrapedJob) {

	start := time.Now()
	defer func() {
		metrics.ScrapePhaseDuration.WithLabelValues("persist").Observe(time.Since(start).Seconds())
	}()

	exists, err := o.jobs.ExistsByURL(ctx, url)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("persist failed for %v: %v", url, err)
		return
	}
	if exists {
		log.Infof("job %v is already stored, skipping persist", url)
		return
	}

	storedID, err := o.jobs.StoreScrapedJob(ctx, record)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("persist failed for %v: %v", url, err)
		return
	}
	record.StoredJobID = &storedID
}

// waitBetweenRequests applies the fixed inter-request delay, returning false
// when the session was canceled during the wait.
func (o *ScrapeOrchestrator) waitBetweenRequests(ctx context.Context) bool {
	timer := time.NewTimer(o.requestDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (o *ScrapeOrchestrator) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.requestTimeout)
}
