package tests

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xLLM73/job-scraper/internal/clients/firecrawl"
	"github.com/0xLLM73/job-scraper/internal/entities"
	"github.com/0xLLM73/job-scraper/internal/repositories"
	"github.com/0xLLM73/job-scraper/internal/services"
)

func newScrapeEnvironment(api *stubFirecrawlAPI) (*services.ScrapeOrchestrator, *repositories.Jobs, chan string) {

	client := firecrawl.NewClient(cfg.Scraper.FirecrawlAPIKey)
	client.SetHTTPClient(api)

	jobs := repositories.NewJobsRepository(dbCtx.DB)
	orchestrator := services.NewScrapeOrchestrator(EventBus.New(), client, jobs,
		repositories.NewSessionRegistry(), cfg.Scraper.RequestDelay, cfg.Scraper.RequestTimeout)

	done := make(chan string, 1)
	orchestrator.WithBatchCompleteCallback(func(sessionID string) {
		done <- sessionID
	})
	return orchestrator, jobs, done
}

func waitForBatch(t *testing.T, done chan string) {
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("batch did not finish in time")
	}
}

func Test_Scrape_FullPipeline_ShouldStoreNormalizedRecord(t *testing.T) {

	jobURL := "https://jobs.lever.co/acme/pipeline"
	orchestrator, jobs, done := newScrapeEnvironment(&stubFirecrawlAPI{})

	sessionID, err := orchestrator.Submit([]string{jobURL}, true)
	require.NoError(t, err)
	waitForBatch(t, done)

	snapshot, err := orchestrator.GetResults(sessionID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionCompleted, snapshot.Status)
	assert.Empty(t, snapshot.Errors)
	require.Len(t, snapshot.Results, 1)
	require.NotNil(t, snapshot.Results[0].StoredJobID)

	stored, err := jobs.GetByID(context.Background(), *snapshot.Results[0].StoredJobID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, "Senior Go Engineer", stored.JobPosting.JobTitle)
	assert.Equal(t, "Acme", stored.JobPosting.CompanyName)
	assert.Equal(t, entities.PlatformLever, stored.JobPosting.ATSPlatform)
	require.NotNil(t, stored.JobPosting.SalaryMin)
	assert.Equal(t, 120000, *stored.JobPosting.SalaryMin)
	assert.Equal(t, 150000, *stored.JobPosting.SalaryMax)
	assert.Equal(t, "USD", stored.JobPosting.SalaryCurrency)
	assert.True(t, stored.JobPosting.IsActive)

	assert.Equal(t, jobURL+"/application", stored.ApplicationForm.FormURL)
	require.Len(t, stored.FormFields, 3)
	assert.Equal(t, "name", stored.FormFields[0].FieldName)
	assert.Equal(t, "email", stored.FormFields[1].FieldName)
	assert.Equal(t, "resume", stored.FormFields[2].FieldName)
	require.Len(t, stored.CompetencyQuestions, 1)
	assert.Equal(t, "motivational", stored.CompetencyQuestions[0].QuestionType)
}

func Test_Scrape_SameURLTwice_ShouldNotStoreDuplicate(t *testing.T) {

	jobURL := "https://jobs.lever.co/acme/duplicate"
	orchestrator, jobs, done := newScrapeEnvironment(&stubFirecrawlAPI{})

	_, err := orchestrator.Submit([]string{jobURL}, true)
	require.NoError(t, err)
	waitForBatch(t, done)

	sessionID, err := orchestrator.Submit([]string{jobURL}, true)
	require.NoError(t, err)
	waitForBatch(t, done)

	snapshot, err := orchestrator.GetResults(sessionID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionCompleted, snapshot.Status)
	require.Len(t, snapshot.Results, 1)
	assert.Nil(t, snapshot.Results[0].StoredJobID)

	exists, err := jobs.ExistsByURL(context.Background(), jobURL)
	require.NoError(t, err)
	assert.True(t, exists)
}

func Test_Scrape_FailingURL_ShouldNotAbortBatch(t *testing.T) {

	failingURL := "https://jobs.ashbyhq.com/acme/broken"
	workingURL := "https://jobs.ashbyhq.com/acme/working"
	api := &stubFirecrawlAPI{failingURLs: map[string]bool{failingURL: true}}
	orchestrator, _, done := newScrapeEnvironment(api)

	sessionID, err := orchestrator.Submit([]string{failingURL, workingURL}, false)
	require.NoError(t, err)
	waitForBatch(t, done)

	snapshot, err := orchestrator.GetStatus(sessionID)
	require.NoError(t, err)
	assert.Equal(t, entities.SessionCompleted, snapshot.Status)
	assert.Equal(t, 2, snapshot.Completed)
	require.Len(t, snapshot.Errors, 1)
	assert.Contains(t, snapshot.Errors[0], failingURL)
	require.Len(t, snapshot.Results, 1)
	assert.Equal(t, workingURL, snapshot.Results[0].JobPosting.URL)
}
