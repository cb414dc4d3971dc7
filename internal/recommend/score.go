package recommend

import (
	"math"

	"github.com/bookworm-social/recommendation-service/internal/domain"
)

const (
	simWeight         = 6.0
	authorBoostWeight = 2.5
	editionWeight     = 1.6
	ratingAvgWeight   = 2.0
	ratingCountWeight = 2.0

	// MMR balance: 0.72 relevance, 0.28 diversity penalty.
	mmrLambda = 0.72

	// The diversifier keeps twice the final limit so the seeded shuffle
	// still draws from a quality-ranked subset.
	mmrPoolSize = 48
	finalLimit  = 24
)

// scoredCandidate pairs a candidate with its relevance score and token
// set; it only lives through the selection loop.
type scoredCandidate struct {
	cand   *domain.Candidate
	score  float64
	tokens map[string]struct{}
}

// scoreCandidates computes the relevance score of every pool entry:
// similarity to the closest favorite, an origin boost for author-sourced
// candidates, and saturating popularity signals.
func scoreCandidates(pool []*domain.Candidate, profile *SeedProfile) []scoredCandidate {
	scored := make([]scoredCandidate, 0, len(pool))
	for _, cand := range pool {
		tokens := tokenSet(cand.Title, cand.Author, cand.SubjectTag)

		sim := 0.0
		for _, favTokens := range profile.TokenSets {
			if s := jaccard(tokens, favTokens); s > sim {
				sim = s
			}
		}

		authorBoost := 0.0
		if cand.Origin == domain.OriginAuthor {
			authorBoost = 1.0
		}

		// Saturates around seven editions.
		popEdition := math.Min(3, math.Log2(1+float64(cand.EditionCount))) / 3

		popRatingAvg := 0.0
		if cand.RatingsAverage != nil {
			popRatingAvg = *cand.RatingsAverage / 5
		}

		// Saturates around a thousand ratings.
		popRatingCount := 0.0
		if cand.RatingsCount != nil {
			popRatingCount = math.Min(1, math.Log10(1+float64(*cand.RatingsCount))/3)
		}

		score := simWeight*sim +
			authorBoostWeight*authorBoost +
			editionWeight*popEdition +
			ratingAvgWeight*popRatingAvg +
			ratingCountWeight*popRatingCount

		scored = append(scored, scoredCandidate{cand: cand, score: score, tokens: tokens})
	}
	return scored
}

// selectDiverse greedily picks up to limit candidates by Maximal Marginal
// Relevance: each round takes the candidate with the best balance of
// relevance and dissimilarity to everything already selected. Ties keep
// the earlier candidate.
func selectDiverse(scored []scoredCandidate, limit int) []scoredCandidate {
	if limit > len(scored) {
		limit = len(scored)
	}
	if limit <= 0 {
		return nil
	}

	selected := make([]scoredCandidate, 0, limit)
	picked := make([]bool, len(scored))

	for len(selected) < limit {
		bestIdx := -1
		bestMMR := math.Inf(-1)

		for i, sc := range scored {
			if picked[i] {
				continue
			}
			maxSim := 0.0
			for _, chosen := range selected {
				if s := jaccard(sc.tokens, chosen.tokens); s > maxSim {
					maxSim = s
				}
			}
			mmr := mmrLambda*sc.score - (1-mmrLambda)*maxSim
			if mmr > bestMMR {
				bestMMR = mmr
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}
		picked[bestIdx] = true
		selected = append(selected, scored[bestIdx])
	}
	return selected
}
