package recommend

import (
	"log"
	"math"
	"strconv"

	"github.com/bookworm-social/recommendation-service/internal/domain"
)

// BookMapper optionally overrides the outward mapping of a candidate.
// A mapper that fails, panics or returns an incomplete record is ignored
// in favor of the built-in mapping; it is a convenience, never a
// dependency.
type BookMapper func(c *domain.Candidate) (*domain.Book, error)

func (r *Recommender) formatBooks(selected []scoredCandidate) []domain.Book {
	books := make([]domain.Book, 0, len(selected))
	for _, sc := range selected {
		if r.mapper != nil {
			if mapped := r.applyMapper(sc.cand); mapped != nil {
				books = append(books, *mapped)
				continue
			}
		}
		books = append(books, formatCandidate(sc.cand))
	}
	return books
}

// formatCandidate is the total fallback mapping: it always yields a
// presentable record no matter which fields the catalog left empty.
func formatCandidate(c *domain.Candidate) domain.Book {
	book := domain.Book{
		ID:       c.ID,
		Title:    c.Title,
		Author:   c.Author,
		Image:    c.Image,
		Category: c.SubjectTag,
	}
	if book.Title == "" {
		book.Title = "Untitled"
	}
	if book.Author == "" && len(c.Authors) > 0 {
		book.Author = c.Authors[0]
	}
	if book.Author == "" {
		book.Author = "Unknown"
	}
	if book.Image == "" {
		book.Image = domain.CoverImageURL(c.CoverID)
	}
	if c.RatingsAverage != nil {
		rounded := math.Round(*c.RatingsAverage*100) / 100
		book.Rating = &rounded
	}
	if c.FirstPublishYear > 0 {
		book.PublishedDate = strconv.Itoa(c.FirstPublishYear)
	}
	return book
}

func (r *Recommender) applyMapper(c *domain.Candidate) (book *domain.Book) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[recommend] book mapper panic for %s: %v", c.ID, p)
			book = nil
		}
	}()

	mapped, err := r.mapper(c)
	if err != nil {
		log.Printf("[recommend] book mapper error for %s: %v", c.ID, err)
		return nil
	}
	if mapped == nil || mapped.ID == "" || mapped.Title == "" {
		return nil
	}
	return mapped
}
