package api

import (
	"net/http"
	"strconv"

	"github.com/0xLLM73/job-scraper/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type scrapeRequest struct {
	URLs []string `json:"urls"`
}

type interactionRequest struct {
	UserID          string         `json:"user_id"`
	InteractionType string         `json:"interaction_type"`
	InteractionData map[string]any `json:"interaction_data"`
}

func (s *Server) submitScrape(c *gin.Context) {
	s.submit(c, true)
}

// submitDemoScrape runs a batch without handing records to the persistence
// layer, for ad-hoc inspection.
func (s *Server) submitDemoScrape(c *gin.Context) {
	s.submit(c, false)
}

func (s *Server) submit(c *gin.Context, persist bool) {
	var request scrapeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := s.scraper.Submit(request.URLs, persist)
	if err != nil {
		if errors.Is(err, services.ErrNoURLs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No URLs provided"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"status":     "started",
		"message":    "Started scraping " + strconv.Itoa(len(request.URLs)) + " job postings",
	})
}

func (s *Server) getScrapeStatus(c *gin.Context) {
	snapshot, err := s.scraper.GetStatus(c.Param("id"))
	if err != nil {
		s.renderSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":    snapshot.SessionID,
		"status":        snapshot.Status,
		"total_urls":    snapshot.TotalURLs,
		"completed":     snapshot.Completed,
		"success_count": len(snapshot.Results),
		"error_count":   len(snapshot.Errors),
		"errors":        snapshot.Errors,
	})
}

func (s *Server) getScrapeResults(c *gin.Context) {
	snapshot, err := s.scraper.GetResults(c.Param("id"))
	if err != nil {
		s.renderSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": snapshot.SessionID,
		"status":     snapshot.Status,
		"results":    snapshot.Results,
	})
}

func (s *Server) cancelScrape(c *gin.Context) {
	if err := s.scraper.Cancel(c.Param("id")); err != nil {
		s.renderSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session cancellation requested"})
}

func (s *Server) renderSessionError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *Server) listJobs(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	jobs, err := s.jobs.ListActive(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":   jobs,
		"count":  len(jobs),
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) getJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}

	job, err := s.jobs.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (s *Server) searchJobs(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter required"})
		return
	}

	jobs, err := s.jobs.Search(c.Request.Context(), query, queryInt(c, "limit", 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"query": query,
		"count": len(jobs),
	})
}

func (s *Server) logInteraction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}

	request := interactionRequest{UserID: "anonymous", InteractionType: "view"}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.jobs.AddInteraction(c.Request.Context(), uint(id), request.UserID,
		request.InteractionType, request.InteractionData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Interaction logged successfully"})
}

func (s *Server) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"scraper_configured":     s.scraper != nil,
		"persistence_configured": s.jobs != nil,
	})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}
