package recommend

import (
	"context"
	"sync"

	"github.com/bookworm-social/recommendation-service/internal/domain"
)

const hydrateLimit = 120

// hydrateRatings fills in missing popularity signals for a bounded prefix
// of the pool. Fetches run concurrently and are best effort; a failed
// lookup leaves the candidate untouched. Known values are never
// overwritten, a subject listing may already have supplied the average.
func (r *Recommender) hydrateRatings(ctx context.Context, pool []*domain.Candidate) {
	var targets []*domain.Candidate
	for _, cand := range pool {
		if cand.RatingsCount != nil {
			continue
		}
		targets = append(targets, cand)
		if len(targets) == hydrateLimit {
			break
		}
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, fetchConcurrency)

	for _, cand := range targets {
		wg.Add(1)
		go func(c *domain.Candidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			summary, err := r.catalog.GetRatings(ctx, c.ID)
			if err != nil {
				return
			}
			if c.RatingsAverage == nil {
				c.RatingsAverage = summary.Average
			}
			if c.RatingsCount == nil {
				c.RatingsCount = summary.Count
			}
		}(cand)
	}
	wg.Wait()
}
