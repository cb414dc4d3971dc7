package recommend

import (
	"context"
	"log"
	"sync"

	"github.com/bookworm-social/recommendation-service/internal/domain"
)

const (
	listLimit        = 60
	fetchConcurrency = 6
)

// buildPool fetches author and subject listings concurrently, merges them
// in a deterministic order (authors first, then subjects) and drops
// duplicates and books the user already favorited. Every fetch is best
// effort: a failed source contributes nothing.
func (r *Recommender) buildPool(ctx context.Context, profile *SeedProfile) []*domain.Candidate {
	lists := make([][]*domain.Candidate, len(profile.Authors)+len(profile.Subjects))

	var wg sync.WaitGroup
	sem := make(chan struct{}, fetchConcurrency) // semaphore

	for i, authorKey := range profile.Authors {
		wg.Add(1)
		go func(idx int, key string) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release
			lists[idx] = r.fetchAuthorCandidates(ctx, key)
		}(i, authorKey)
	}
	for i, subject := range profile.Subjects {
		wg.Add(1)
		go func(idx int, subj string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			lists[idx] = r.fetchSubjectCandidates(ctx, subj)
		}(len(profile.Authors)+i, subject)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	var pool []*domain.Candidate
	for _, list := range lists {
		for _, cand := range list {
			if _, dup := seen[cand.ID]; dup {
				continue
			}
			seen[cand.ID] = struct{}{}
			if _, favorited := profile.FavoriteIDs[cand.ID]; favorited {
				continue
			}
			// Second pass against already-read books: catches favorites
			// stored under a different catalog ID.
			if _, favorited := profile.FavoriteKeys[dedupeKey(cand.Title, cand.Author)]; favorited {
				continue
			}
			pool = append(pool, cand)
		}
	}
	return pool
}

func (r *Recommender) fetchAuthorCandidates(ctx context.Context, authorKey string) []*domain.Candidate {
	works, err := r.catalog.GetAuthorWorks(ctx, authorKey, listLimit)
	if err != nil {
		log.Printf("[recommend] author works fetch failed for %s: %v", authorKey, err)
		return nil
	}

	candidates := make([]*domain.Candidate, 0, len(works.Entries))
	for _, e := range works.Entries {
		id := canonicalID(e.Key)
		if id == "" {
			continue
		}
		candidates = append(candidates, &domain.Candidate{
			ID:           id,
			Title:        e.Title,
			Author:       works.Name,
			Authors:      []string{works.Name},
			Image:        domain.CoverImageURL(e.CoverID),
			CoverID:      e.CoverID,
			EditionCount: e.EditionCount,
			Origin:       domain.OriginAuthor,
		})
	}
	return candidates
}

func (r *Recommender) fetchSubjectCandidates(ctx context.Context, subject string) []*domain.Candidate {
	entries, err := r.catalog.GetSubjectWorks(ctx, subject, listLimit)
	if err != nil {
		log.Printf("[recommend] subject works fetch failed for %q: %v", subject, err)
		return nil
	}

	candidates := make([]*domain.Candidate, 0, len(entries))
	for _, e := range entries {
		id := canonicalID(e.Key)
		if id == "" {
			continue
		}
		cand := &domain.Candidate{
			ID:               id,
			Title:            e.Title,
			Authors:          e.Authors,
			Image:            domain.CoverImageURL(e.CoverID),
			CoverID:          e.CoverID,
			EditionCount:     e.EditionCount,
			FirstPublishYear: e.FirstPublishYear,
			RatingsAverage:   e.RatingsAverage,
			Origin:           domain.OriginSubject,
			SubjectTag:       subject,
		}
		if len(e.Authors) > 0 {
			cand.Author = e.Authors[0]
		}
		candidates = append(candidates, cand)
	}
	return candidates
}
