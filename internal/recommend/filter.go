package recommend

import "github.com/bookworm-social/recommendation-service/internal/domain"

const minFilteredPool = 24

// popularityTier is one rung of the threshold ladder. A candidate passes
// when it has an image and meets either threshold.
type popularityTier struct {
	minEditions int
	minRatings  int
}

// popularityTiers relax monotonically; the last tier keeps everything
// with an image.
var popularityTiers = []popularityTier{
	{minEditions: 8, minRatings: 25},
	{minEditions: 3, minRatings: 5},
	{minEditions: 0, minRatings: 0},
}

// filterByPopularity keeps popular candidates, relaxing thresholds until
// at least minFilteredPool survive. Each tier filters the original pool,
// not the previous tier's result.
func filterByPopularity(pool []*domain.Candidate) []*domain.Candidate {
	var filtered []*domain.Candidate
	for _, tier := range popularityTiers {
		filtered = applyTier(pool, tier)
		if len(filtered) >= minFilteredPool {
			break
		}
	}
	return filtered
}

func applyTier(pool []*domain.Candidate, tier popularityTier) []*domain.Candidate {
	filtered := make([]*domain.Candidate, 0, len(pool))
	for _, cand := range pool {
		if cand.Image == "" {
			continue
		}
		ratings := 0
		if cand.RatingsCount != nil {
			ratings = *cand.RatingsCount
		}
		if cand.EditionCount >= tier.minEditions || ratings >= tier.minRatings {
			filtered = append(filtered, cand)
		}
	}
	return filtered
}
