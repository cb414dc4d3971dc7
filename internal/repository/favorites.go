package repository

import (
	"context"
	"fmt"

	"github.com/bookworm-social/recommendation-service/internal/domain"
)

// GetFavoriteSeeds returns the first page of a user's favorites joined
// with their stored book snapshots, oldest first. No relevance ordering;
// the pipeline takes whatever comes first.
func (r *Repository) GetFavoriteSeeds(ctx context.Context, userID int64, maxCount int) ([]domain.FavoriteSeed, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT f.book_id, b.title, b.author, b.category, b.image
		FROM favorites f
		JOIN books b ON b.id = f.book_id
		WHERE f.user_id = $1
		ORDER BY f.created_at, f.book_id
		LIMIT $2`, userID, maxCount,
	)
	if err != nil {
		return nil, fmt.Errorf("query favorite seeds for user %d: %w", userID, err)
	}
	defer rows.Close()

	var seeds []domain.FavoriteSeed
	for rows.Next() {
		var s domain.FavoriteSeed
		err := rows.Scan(&s.BookID, &s.Book.Title, &s.Book.Author, &s.Book.Category, &s.Book.Image)
		if err != nil {
			return nil, fmt.Errorf("scan favorite seed: %w", err)
		}
		seeds = append(seeds, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite seeds: %w", err)
	}
	return seeds, nil
}

// GetFavoriteIDs returns up to limit favorited book IDs, used to exclude
// already-read books from the candidate pool.
func (r *Repository) GetFavoriteIDs(ctx context.Context, userID int64, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT book_id FROM favorites
		WHERE user_id = $1
		ORDER BY created_at, book_id
		LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query favorite ids for user %d: %w", userID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite ids: %w", err)
	}
	return ids, nil
}
