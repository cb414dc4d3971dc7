package recommend

import (
	"fmt"
	"math"
	"testing"

	"github.com/bookworm-social/recommendation-service/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }

func TestScoreWeights(t *testing.T) {
	profile := &SeedProfile{
		TokenSets: []map[string]struct{}{tokenSet("dragon quest legend")},
	}
	cand := &domain.Candidate{
		ID:             "/works/OL1W",
		Title:          "dragon quest legend",
		Origin:         domain.OriginAuthor,
		EditionCount:   7,   // log2(8) = 3, edition component saturated
		RatingsAverage: fptr(5),
		RatingsCount:   iptr(999), // log10(1000) = 3, count component saturated
	}

	scored := scoreCandidates([]*domain.Candidate{cand}, profile)
	if len(scored) != 1 {
		t.Fatalf("expected 1 scored candidate, got %d", len(scored))
	}

	// 6.0*1 + 2.5*1 + 1.6*1 + 2.0*1 + 2.0*1
	want := 14.1
	if math.Abs(scored[0].score-want) > 1e-9 {
		t.Errorf("expected score %f, got %f", want, scored[0].score)
	}
}

func TestScoreZeroSignals(t *testing.T) {
	profile := &SeedProfile{TokenSets: []map[string]struct{}{{}}}
	cand := &domain.Candidate{ID: "/works/OL1W", Title: "Some Book", Origin: domain.OriginSubject}

	scored := scoreCandidates([]*domain.Candidate{cand}, profile)
	if scored[0].score != 0 {
		t.Errorf("expected zero score with no signals, got %f", scored[0].score)
	}
}

func TestScoreUsesClosestFavorite(t *testing.T) {
	profile := &SeedProfile{
		TokenSets: []map[string]struct{}{
			tokenSet("completely unrelated cookbook"),
			tokenSet("dragon quest legend"),
		},
	}
	cand := &domain.Candidate{ID: "/works/OL1W", Title: "dragon quest legend", Origin: domain.OriginSubject}

	scored := scoreCandidates([]*domain.Candidate{cand}, profile)
	if math.Abs(scored[0].score-simWeight) > 1e-9 {
		t.Errorf("expected max-similarity favorite to drive the score, got %f", scored[0].score)
	}
}

func TestSelectDiverseBounds(t *testing.T) {
	var scored []scoredCandidate
	for i := 0; i < 300; i++ {
		scored = append(scored, scoredCandidate{
			cand:   &domain.Candidate{ID: fmt.Sprintf("/works/OL%dW", i)},
			score:  float64(300 - i),
			tokens: tokenSet(fmt.Sprintf("unique title number %d", i)),
		})
	}

	picked := selectDiverse(scored, mmrPoolSize)
	if len(picked) != mmrPoolSize {
		t.Errorf("expected %d picks from a large pool, got %d", mmrPoolSize, len(picked))
	}

	small := selectDiverse(scored[:5], mmrPoolSize)
	if len(small) != 5 {
		t.Errorf("expected the whole pool when smaller than the limit, got %d", len(small))
	}

	if got := selectDiverse(nil, mmrPoolSize); len(got) != 0 {
		t.Errorf("expected nothing from an empty pool, got %d", len(got))
	}
}

func TestSelectDiversePenalizesNearDuplicates(t *testing.T) {
	dup := tokenSet("dragon quest")
	scored := []scoredCandidate{
		{cand: &domain.Candidate{ID: "a"}, score: 1.0, tokens: dup},
		{cand: &domain.Candidate{ID: "a2"}, score: 0.8, tokens: tokenSet("dragon quest")},
		{cand: &domain.Candidate{ID: "b"}, score: 0.5, tokens: tokenSet("space opera")},
	}

	picked := selectDiverse(scored, 2)
	if len(picked) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(picked))
	}
	if picked[0].cand.ID != "a" {
		t.Errorf("expected highest relevance first, got %s", picked[0].cand.ID)
	}
	// a2 scores higher on pure relevance but is identical to a;
	// 0.72*0.8 - 0.28*1.0 = 0.296 loses to 0.72*0.5 = 0.36.
	if picked[1].cand.ID != "b" {
		t.Errorf("expected the diverse candidate second, got %s", picked[1].cand.ID)
	}
}

func TestSelectDiverseTiesKeepEarlierCandidate(t *testing.T) {
	scored := []scoredCandidate{
		{cand: &domain.Candidate{ID: "first"}, score: 1.0, tokens: tokenSet("alpha story")},
		{cand: &domain.Candidate{ID: "second"}, score: 1.0, tokens: tokenSet("beta story")},
	}

	picked := selectDiverse(scored, 1)
	if picked[0].cand.ID != "first" {
		t.Errorf("expected stable tie-break on first index, got %s", picked[0].cand.ID)
	}
}
