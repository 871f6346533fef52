package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/0xLLM73/job-scraper/internal/api"
	"github.com/0xLLM73/job-scraper/internal/clients/firecrawl"
	"github.com/0xLLM73/job-scraper/internal/config"
	"github.com/0xLLM73/job-scraper/internal/events"
	"github.com/0xLLM73/job-scraper/internal/logger"
	"github.com/0xLLM73/job-scraper/internal/metrics"
	"github.com/0xLLM73/job-scraper/internal/repositories"
	"github.com/0xLLM73/job-scraper/internal/services"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

func newFirecrawlClient(cfg *config.Config) *firecrawl.Client {
	client := firecrawl.NewClient(cfg.Scraper.FirecrawlAPIKey)
	if cfg.Scraper.FirecrawlBaseURL != "" {
		client.SetBaseURL(cfg.Scraper.FirecrawlBaseURL)
	}
	if cfg.Scraper.MaxRequestsPerSecond > 0 {
		client.SetRateLimit(cfg.Scraper.MaxRequestsPerSecond)
	}
	return client
}

func subscribeAuditLog(bus EventBus.Bus) {
	err := bus.Subscribe(events.JobScrapedTopic, func(event events.JobScraped) {
		log.Infof("scraped job \"%v\" at \"%v\" (%v)", event.JobTitle, event.CompanyName, event.URL)
	})
	if err != nil {
		log.Fatalf("can't subscribe to scrape events: %v", err)
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.API.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)
	cachedJobs := repositories.NewCachedJobs(jobs)
	sessions := repositories.NewSessionRegistry()

	bus := EventBus.New()
	subscribeAuditLog(bus)

	orchestrator := services.NewScrapeOrchestrator(bus, newFirecrawlClient(cfg), cachedJobs,
		sessions, cfg.Scraper.RequestDelay, cfg.Scraper.RequestTimeout)

	if cfg.Scraper.SessionRetention > 0 {
		cleaner, err := services.NewSessionCleaner(sessions, cfg.Scraper.SessionRetention)
		if err != nil {
			log.Fatalf("can't create session cleaner: %v", err)
		}
		defer cleaner.Stop()
	}

	server := api.NewServer(orchestrator, jobs)
	go server.Run(cfg.API.Port)

	<-ctx.Done()

	log.Info("Shutting down services...")
	server.Stop()
	log.Info("Services stopped.")
}
