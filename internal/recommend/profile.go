package recommend

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/bookworm-social/recommendation-service/internal/domain"
)

const (
	maxSeedFavorites    = 8
	subjectsPerFavorite = 6
	maxProfileSubjects  = 10
	authorsPerFavorite  = 2
	maxProfileAuthors   = 8
)

// defaultSubjects seeds the pool for users with no favorites yet, so a
// cold-start request still returns something to browse.
var defaultSubjects = []string{"fiction", "fantasy", "mystery", "romance"}

// SeedProfile is what a user's favorites say about their taste. Built once
// per request, read-only afterward.
type SeedProfile struct {
	FavoriteIDs  map[string]struct{}
	FavoriteKeys map[string]struct{}
	Subjects     []string
	Authors      []string
	TokenSets    []map[string]struct{}
}

// buildProfile derives the seed profile from the user's favorites.
// favoriteIDs may be a longer list than the seeds; all of them feed the
// exclusion set. Work metadata fetches are best effort.
func (r *Recommender) buildProfile(ctx context.Context, favorites []domain.FavoriteSeed, favoriteIDs []string) *SeedProfile {
	if len(favorites) > maxSeedFavorites {
		favorites = favorites[:maxSeedFavorites]
	}

	profile := &SeedProfile{
		FavoriteIDs:  make(map[string]struct{}),
		FavoriteKeys: make(map[string]struct{}),
	}
	for _, id := range favoriteIDs {
		profile.FavoriteIDs[canonicalID(id)] = struct{}{}
	}
	for _, fav := range favorites {
		profile.FavoriteIDs[canonicalID(fav.BookID)] = struct{}{}
		profile.FavoriteKeys[dedupeKey(fav.Book.Title, fav.Book.Author)] = struct{}{}
	}

	if len(favorites) == 0 {
		profile.Subjects = append(profile.Subjects, defaultSubjects...)
		profile.TokenSets = []map[string]struct{}{{}}
		return profile
	}

	metas := make([]*domain.WorkMeta, len(favorites))
	var wg sync.WaitGroup
	for i, fav := range favorites {
		key := domain.NormalizeWorkKey(fav.BookID)
		if key == "" {
			continue
		}
		wg.Add(1)
		go func(idx int, workKey string) {
			defer wg.Done()
			meta, err := r.catalog.GetWork(ctx, workKey)
			if err != nil {
				log.Printf("[recommend] work meta fetch failed for %s: %v", workKey, err)
				return
			}
			metas[idx] = meta
		}(i, key)
	}
	wg.Wait()

	subjectFreq := make(map[string]int)
	var subjectOrder []string
	var authorSeen = make(map[string]struct{})

	for i, fav := range favorites {
		parts := []string{fav.Book.Title}
		if meta := metas[i]; meta != nil {
			parts = append(parts, meta.Subjects...)

			for j, subject := range meta.Subjects {
				if j >= subjectsPerFavorite {
					break
				}
				s := normalizeText(subject)
				if s == "" {
					continue
				}
				if _, seen := subjectFreq[s]; !seen {
					subjectOrder = append(subjectOrder, s)
				}
				subjectFreq[s]++
			}

			for j, authorKey := range meta.AuthorKeys {
				if j >= authorsPerFavorite {
					break
				}
				if _, seen := authorSeen[authorKey]; seen {
					continue
				}
				authorSeen[authorKey] = struct{}{}
				if len(profile.Authors) < maxProfileAuthors {
					profile.Authors = append(profile.Authors, authorKey)
				}
			}
		}
		profile.TokenSets = append(profile.TokenSets, tokenSet(parts...))
	}

	profile.Subjects = rankSubjects(subjectOrder, subjectFreq, maxProfileSubjects)
	return profile
}

// rankSubjects orders subjects by descending frequency; ties keep
// first-seen order.
func rankSubjects(order []string, freq map[string]int, limit int) []string {
	ranked := append([]string(nil), order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return freq[ranked[i]] > freq[ranked[j]]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// canonicalID maps a stored book ID to the form candidate IDs use.
func canonicalID(id string) string {
	if key := domain.NormalizeWorkKey(id); key != "" {
		return key
	}
	return id
}
