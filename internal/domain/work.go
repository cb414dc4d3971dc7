package domain

import (
	"fmt"
	"strings"
)

// WorkMeta is the normalized view of an OpenLibrary work.
type WorkMeta struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	Subjects   []string `json:"subjects"`
	AuthorKeys []string `json:"author_keys"`
}

// RatingSummary carries the popularity signals for a work. Nil fields mean
// the catalog has no data, which is distinct from zero.
type RatingSummary struct {
	Average *float64 `json:"average"`
	Count   *int     `json:"count"`
}

// NormalizeWorkKey returns the canonical "/works/ID" form of a work
// identifier, or "" when the value is not an OpenLibrary work key.
func NormalizeWorkKey(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "works/") {
		id = "/" + id
	}
	if !strings.HasPrefix(id, "/works/") {
		return ""
	}
	return strings.TrimSuffix(id, "/")
}

// CoverImageURL builds the public cover URL for an OpenLibrary cover ID.
func CoverImageURL(coverID int64) string {
	if coverID <= 0 {
		return ""
	}
	return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", coverID)
}
