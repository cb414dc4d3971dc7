package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bookworm-social/recommendation-service/internal/domain"
)

const (
	seedFavoriteLimit    = 8
	excludeFavoriteLimit = 200
	batchConcurrency     = 10
)

// FavoritesRepository supplies the user and favorites data the pipeline
// seeds from.
type FavoritesRepository interface {
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	GetFavoriteSeeds(ctx context.Context, userID int64, maxCount int) ([]domain.FavoriteSeed, error)
	GetFavoriteIDs(ctx context.Context, userID int64, limit int) ([]string, error)
}

// UserDirectory enumerates users for batch precomputation.
type UserDirectory interface {
	GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
}

// ResultStore caches finished recommendation lists for a short window.
type ResultStore interface {
	Get(ctx context.Context, key string) ([]domain.Book, bool, error)
	Set(ctx context.Context, key string, books []domain.Book) error
}

// Recommender generates the recommendation list for one request.
type Recommender interface {
	Recommend(ctx context.Context, favorites []domain.FavoriteSeed, favoriteIDs []string, seed string) []domain.Book
}

type Service struct {
	repo    FavoritesRepository
	users   UserDirectory
	results ResultStore
	rec     Recommender
}

func NewService(repo FavoritesRepository, users UserDirectory, results ResultStore, rec Recommender) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		results: results,
		rec:     rec,
	}
}

// GetPersonalRecommendations returns up to 24 books for the user. Repeat
// calls with the same user, favorites set and seed hit the result cache
// for as long as its TTL allows.
func (s *Service) GetPersonalRecommendations(ctx context.Context, userID int64, seed string) (*domain.RecommendationResult, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	favorites, err := s.repo.GetFavoriteSeeds(ctx, userID, seedFavoriteLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch favorite seeds: %w", err)
	}
	favoriteIDs, err := s.repo.GetFavoriteIDs(ctx, userID, excludeFavoriteLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch favorite ids: %w", err)
	}

	key := resultKey(userID, favoriteIDs, seed)

	cached, found, err := s.results.Get(ctx, key)
	if err != nil {
		log.Printf("[service] cache get error for user %d: %v", userID, err)
	}
	if found {
		return &domain.RecommendationResult{
			Books:    cached,
			CacheHit: true,
		}, nil
	}

	books := s.rec.Recommend(ctx, favorites, favoriteIDs, seed)

	if cacheErr := s.results.Set(ctx, key, books); cacheErr != nil {
		log.Printf("[service] cache set error for user %d: %v", userID, cacheErr)
	}

	return &domain.RecommendationResult{
		Books:    books,
		CacheHit: false,
	}, nil
}

// resultKey combines user, sorted favorite IDs and the shuffle seed. The
// favorites go in hashed so a change to the set naturally produces a new
// key instead of requiring invalidation.
func resultKey(userID int64, favoriteIDs []string, seed string) string {
	ids := append([]string(nil), favoriteIDs...)
	sort.Strings(ids)
	sum := sha256.Sum256([]byte(strings.Join(ids, ",")))
	return fmt.Sprintf("rec:user:%d:favs:%s:seed:%s", userID, hex.EncodeToString(sum[:8]), seed)
}

// GetBatchRecommendations precomputes recommendations for a page of
// users, used by the digest mailer. Users are processed concurrently
// with a bounded worker pool; one user failing never fails the page.
func (s *Service) GetBatchRecommendations(ctx context.Context, page, limit int, seed string) (*domain.BatchResponse, error) {
	start := time.Now()

	userIDs, err := s.users.GetUserIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch user ids: %w", err)
	}
	totalUsers, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	results := make([]domain.BatchUserResult, len(userIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency) // semaphore

	for i, userID := range userIDs {
		wg.Add(1)
		go func(idx int, uid int64) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.processUserForBatch(ctx, uid, seed)
		}(i, userID)
	}
	wg.Wait()

	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Page:       page,
		Limit:      limit,
		TotalUsers: totalUsers,
		Results:    results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (s *Service) processUserForBatch(ctx context.Context, userID int64, seed string) domain.BatchUserResult {
	result, err := s.GetPersonalRecommendations(ctx, userID, seed)
	if err != nil {
		log.Printf("[service] batch: failed for user %d: %v", userID, err)
		code, msg := categorizeError(err)
		return domain.BatchUserResult{
			UserID:  userID,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}
	return domain.BatchUserResult{
		UserID:          userID,
		Recommendations: result.Books,
		Status:          domain.StatusSuccess,
	}
}

func categorizeError(err error) (string, string) {
	if errors.Is(err, domain.ErrUserNotFound) {
		return "user_not_found", "user not found"
	}
	return "internal_error", "an unexpected error occurred"
}
