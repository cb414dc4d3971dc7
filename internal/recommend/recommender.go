package recommend

import (
	"context"

	"github.com/bookworm-social/recommendation-service/internal/domain"
)

// Catalog is the slice of the book catalog the pipeline reads from.
type Catalog interface {
	GetWork(ctx context.Context, workKey string) (*domain.WorkMeta, error)
	GetAuthorWorks(ctx context.Context, authorKey string, limit int) (*domain.AuthorWorks, error)
	GetSubjectWorks(ctx context.Context, subject string, limit int) ([]domain.SubjectWorkEntry, error)
	GetRatings(ctx context.Context, workKey string) (*domain.RatingSummary, error)
}

// Recommender runs the personal recommendation pipeline: seed profile,
// candidate pool, rating hydration, popularity filter, scoring with MMR
// diversification, seeded shuffle, formatting.
type Recommender struct {
	catalog Catalog
	mapper  BookMapper
}

// NewRecommender wires the pipeline. mapper may be nil.
func NewRecommender(catalog Catalog, mapper BookMapper) *Recommender {
	return &Recommender{catalog: catalog, mapper: mapper}
}

// Recommend produces up to 24 books for the given favorites. It never
// fails: every external fetch inside the pipeline degrades to "no data",
// and an exhausted pool yields an empty list.
func (r *Recommender) Recommend(ctx context.Context, favorites []domain.FavoriteSeed, favoriteIDs []string, seed string) []domain.Book {
	profile := r.buildProfile(ctx, favorites, favoriteIDs)

	pool := r.buildPool(ctx, profile)
	if len(pool) == 0 {
		return []domain.Book{}
	}

	r.hydrateRatings(ctx, pool)
	pool = filterByPopularity(pool)

	scored := scoreCandidates(pool, profile)
	picked := selectDiverse(scored, mmrPoolSize)

	seededShuffle(picked, seed)
	if len(picked) > finalLimit {
		picked = picked[:finalLimit]
	}
	return r.formatBooks(picked)
}
