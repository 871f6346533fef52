package repositories

import (
	"context"
	"time"

	"github.com/0xLLM73/job-scraper/internal/entities"
	gocache "github.com/patrickmn/go-cache"
)

type jobURLRepository interface {
	ExistsByURL(ctx context.Context, url string) (bool, error)
	StoreScrapedJob(ctx context.Context, record *entities.ScrapedJob) (uint, error)
}

// CachedJobs caches positive ExistsByURL lookups so re-submitted batches do
// not hit the database for every URL they already stored.
type CachedJobs struct {
	repo  jobURLRepository
	cache *gocache.Cache
}

func NewCachedJobs(repo jobURLRepository) *CachedJobs {
	return &CachedJobs{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c *CachedJobs) ExistsByURL(ctx context.Context, url string) (bool, error) {
	if _, found := c.cache.Get(url); found {
		return true, nil
	}

	exists, err := c.repo.ExistsByURL(ctx, url)
	if exists {
		if err = c.cache.Add(url, struct{}{}, gocache.DefaultExpiration); err != nil {
			return exists, err
		}
	}

	return exists, err
}

func (c *CachedJobs) StoreScrapedJob(ctx context.Context, record *entities.ScrapedJob) (uint, error) {
	id, err := c.repo.StoreScrapedJob(ctx, record)
	if err == nil {
		_ = c.cache.Add(record.JobPosting.URL, struct{}{}, gocache.DefaultExpiration)
	}
	return id, err
}
