package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ScraperConfig struct {
	FirecrawlAPIKey      string        `mapstructure:"firecrawl_api_key"`
	FirecrawlBaseURL     string        `mapstructure:"firecrawl_base_url"`
	RequestDelay         time.Duration `mapstructure:"request_delay"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	SessionRetention     time.Duration `mapstructure:"session_retention"`
}

func (config ScraperConfig) validate() error {

	var missingFields []string

	if config.FirecrawlAPIKey == "" {
		missingFields = append(missingFields, "firecrawl_api_key")
	}

	if config.RequestDelay <= 0 {
		missingFields = append(missingFields, "request_delay")
	}

	if config.RequestTimeout <= 0 {
		missingFields = append(missingFields, "request_timeout")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config ScraperConfig) bindEnvironmentVariables() error {
	binds := map[string]string{
		"scraper.firecrawl_api_key":       "FIRECRAWL_API_KEY",
		"scraper.firecrawl_base_url":      "FIRECRAWL_BASE_URL",
		"scraper.request_delay":           "SCRAPE_REQUEST_DELAY",
		"scraper.request_timeout":         "SCRAPE_REQUEST_TIMEOUT",
		"scraper.max_requests_per_second": "SCRAPE_MAX_REQUESTS_PER_SECOND",
		"scraper.session_retention":       "SESSION_RETENTION",
	}

	for key, env := range binds {
		if err := viper.BindEnv(key, env); err != nil {
			return err
		}
	}

	return nil
}
