package recommend

import (
	"errors"
	"testing"

	"github.com/bookworm-social/recommendation-service/internal/domain"
)

func TestFormatCandidateFallbacks(t *testing.T) {
	book := formatCandidate(&domain.Candidate{ID: "/works/OL1W"})

	if book.Title != "Untitled" {
		t.Errorf("expected Untitled fallback, got %q", book.Title)
	}
	if book.Author != "Unknown" {
		t.Errorf("expected Unknown fallback, got %q", book.Author)
	}
	if book.Image != "" {
		t.Errorf("expected no image without a cover ID, got %q", book.Image)
	}
	if book.Rating != nil {
		t.Error("expected nil rating when no average is known")
	}
}

func TestFormatCandidateAuthorsListFallback(t *testing.T) {
	book := formatCandidate(&domain.Candidate{
		ID:      "/works/OL1W",
		Title:   "Dune",
		Authors: []string{"Frank Herbert", "Someone Else"},
	})

	if book.Author != "Frank Herbert" {
		t.Errorf("expected first listed author, got %q", book.Author)
	}
}

func TestFormatCandidateCoverURL(t *testing.T) {
	book := formatCandidate(&domain.Candidate{
		ID:      "/works/OL1W",
		Title:   "Dune",
		CoverID: 12345,
	})

	want := "https://covers.openlibrary.org/b/id/12345-M.jpg"
	if book.Image != want {
		t.Errorf("expected cover URL %q, got %q", want, book.Image)
	}
}

func TestFormatCandidateRatingRounded(t *testing.T) {
	book := formatCandidate(&domain.Candidate{
		ID:             "/works/OL1W",
		Title:          "Dune",
		RatingsAverage: fptr(4.2357),
	})

	if book.Rating == nil || *book.Rating != 4.24 {
		t.Errorf("expected rating rounded to 4.24, got %v", book.Rating)
	}
}

func TestFormatCandidatePublishedDate(t *testing.T) {
	book := formatCandidate(&domain.Candidate{
		ID:               "/works/OL1W",
		Title:            "Dune",
		FirstPublishYear: 1965,
	})

	if book.PublishedDate != "1965" {
		t.Errorf("expected published date 1965, got %q", book.PublishedDate)
	}
}

func TestFormatBooksMapperOverrides(t *testing.T) {
	mapper := func(c *domain.Candidate) (*domain.Book, error) {
		return &domain.Book{ID: c.ID, Title: "Mapped " + c.Title}, nil
	}
	r := NewRecommender(nil, mapper)

	books := r.formatBooks([]scoredCandidate{
		{cand: &domain.Candidate{ID: "/works/OL1W", Title: "Dune"}},
	})

	if len(books) != 1 || books[0].Title != "Mapped Dune" {
		t.Errorf("expected mapper output, got %+v", books)
	}
}

func TestFormatBooksMapperErrorFallsBack(t *testing.T) {
	mapper := func(c *domain.Candidate) (*domain.Book, error) {
		return nil, errors.New("mapping store down")
	}
	r := NewRecommender(nil, mapper)

	books := r.formatBooks([]scoredCandidate{
		{cand: &domain.Candidate{ID: "/works/OL1W", Title: "Dune"}},
	})

	if len(books) != 1 || books[0].Title != "Dune" {
		t.Errorf("expected built-in mapping after mapper error, got %+v", books)
	}
}

func TestFormatBooksMapperPanicFallsBack(t *testing.T) {
	mapper := func(c *domain.Candidate) (*domain.Book, error) {
		panic("boom")
	}
	r := NewRecommender(nil, mapper)

	books := r.formatBooks([]scoredCandidate{
		{cand: &domain.Candidate{ID: "/works/OL1W", Title: "Dune"}},
	})

	if len(books) != 1 || books[0].Title != "Dune" {
		t.Errorf("expected built-in mapping after mapper panic, got %+v", books)
	}
}

func TestFormatBooksMapperIncompleteRecordIgnored(t *testing.T) {
	mapper := func(c *domain.Candidate) (*domain.Book, error) {
		return &domain.Book{ID: "", Title: ""}, nil
	}
	r := NewRecommender(nil, mapper)

	books := r.formatBooks([]scoredCandidate{
		{cand: &domain.Candidate{ID: "/works/OL1W", Title: "Dune"}},
	})

	if len(books) != 1 || books[0].ID != "/works/OL1W" || books[0].Title != "Dune" {
		t.Errorf("expected built-in mapping for incomplete mapper output, got %+v", books)
	}
}
