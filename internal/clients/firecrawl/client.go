package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/0xLLM73/job-scraper/internal/entities"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.firecrawl.dev/v1"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Firecrawl scraping service. The request/response
// contract is opaque JSON: we ask for an "extract" matching a schema plus the
// page markdown and get back whatever the service managed to pull out.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// ScrapeJobOverview extracts the job posting fields from the given URL.
func (c *Client) ScrapeJobOverview(ctx context.Context, url string) (*ScrapeData, error) {
	payload := scrapeRequest{
		URL:     url,
		Formats: []string{"extract", "markdown"},
		Extract: &extractSpec{Schema: jobOverviewSchema()},
	}
	return c.scrape(ctx, payload)
}

// ScrapeApplicationForm extracts the application form structure. The request
// targets the "/application" variant of the URL and waits a short settle
// period before scraping so client-rendered forms have a chance to appear.
func (c *Client) ScrapeApplicationForm(ctx context.Context, url string) (*ScrapeData, error) {
	payload := scrapeRequest{
		URL:     entities.ApplicationFormURL(url),
		Formats: []string{"extract", "markdown"},
		Actions: []scrapeAction{
			{Type: "wait", Milliseconds: 2000},
			{Type: "scrape"},
		},
		Extract: &extractSpec{Schema: applicationFormSchema()},
	}
	return c.scrape(ctx, payload)
}

func (c *Client) scrape(ctx context.Context, payload scrapeRequest) (*ScrapeData, error) {

	body, err := c.sendRequest(ctx, http.MethodPost, c.baseURL+"/scrape", payload)
	if err != nil {
		return nil, err
	}

	var response scrapeResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	if !response.Success {
		return nil, fmt.Errorf("scrape of %s was not successful", payload.URL)
	}

	return &response.Data, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string, payload any) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding request payload: %v", err)
	}

	var body []byte
	_, _, _ = lo.AttemptWhileWithDelay(3, 2*time.Second, func(i int, _ time.Duration) (error, bool) {
		if i > 0 {
			log.Warn("scraping service returned a server error, retrying...")
		}
		body, err = c.trySendRequest(ctx, method, url, encoded)
		return err, isServerError(err)
	})

	return body, err
}

func (c *Client) trySendRequest(ctx context.Context, method string, url string, payload []byte) ([]byte, error) {

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	for _, status := range []string{"status 500", "status 502", "status 503"} {
		if strings.Contains(err.Error(), status) {
			return true
		}
	}
	return false
}
