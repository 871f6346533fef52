package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/0xLLM73/job-scraper/internal/entities"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type scrapeService interface {
	Submit(urls []string, persist bool) (string, error)
	Cancel(sessionID string) error
	GetStatus(sessionID string) (entities.SessionSnapshot, error)
	GetResults(sessionID string) (entities.SessionSnapshot, error)
}

type jobQueries interface {
	GetByID(ctx context.Context, id uint) (*entities.ScrapedJob, error)
	ListActive(ctx context.Context, limit int, offset int) ([]entities.JobPosting, error)
	Search(ctx context.Context, query string, limit int) ([]entities.JobPosting, error)
	AddInteraction(ctx context.Context, jobID uint, userID string, interactionType string, payload map[string]any) error
}

// Server is the thin HTTP surface over the orchestrator and the job store.
type Server struct {
	scraper scrapeService
	jobs    jobQueries
	engine  *gin.Engine
	http    *http.Server
}

func NewServer(scraper scrapeService, jobs jobQueries) *Server {

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{scraper: scraper, jobs: jobs, engine: engine}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	apiGroup := s.engine.Group("/api")

	apiGroup.POST("/scrape", s.submitScrape)
	apiGroup.POST("/demo/scrape", s.submitDemoScrape)
	apiGroup.GET("/scrape/status/:id", s.getScrapeStatus)
	apiGroup.GET("/scrape/results/:id", s.getScrapeResults)
	apiGroup.DELETE("/scrape/:id", s.cancelScrape)

	apiGroup.GET("/jobs", s.listJobs)
	apiGroup.GET("/jobs/search", s.searchJobs)
	apiGroup.GET("/jobs/:id", s.getJob)
	apiGroup.POST("/jobs/:id/interact", s.logInteraction)

	apiGroup.GET("/config", s.getConfig)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(port int) {
	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.engine,
	}

	log.Infof("api server listening on port %d", port)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("api server failed: %v", err)
	}
}

func (s *Server) Stop() {
	if s.http == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		log.Errorf("api server shutdown failed: %v", err)
	}
}
