package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bookworm-social/recommendation-service/internal/cache"
	"github.com/bookworm-social/recommendation-service/internal/domain"
)

const (
	DefaultBaseURL = "https://openlibrary.org"

	defaultTimeout = 10 * time.Second
	maxSubjects    = 30
)

// Client fetches work metadata, author/subject listings and ratings from
// an OpenLibrary-compatible catalog. Every lookup goes through the TTL
// cache first; callers decide what to do with a failed fetch.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *cache.TTLCache
}

func NewClient(baseURL string, timeout time.Duration, c *cache.TTLCache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		cache:      c,
	}
}

type workDoc struct {
	Title    string   `json:"title"`
	Subjects []string `json:"subjects"`
	Covers   []int64  `json:"covers"`
	Authors  []struct {
		Author struct {
			Key string `json:"key"`
		} `json:"author"`
	} `json:"authors"`
}

// GetWork returns the normalized metadata of one work, 24h-cached.
func (c *Client) GetWork(ctx context.Context, workKey string) (*domain.WorkMeta, error) {
	key := domain.NormalizeWorkKey(workKey)
	if key == "" {
		return nil, fmt.Errorf("not an OpenLibrary work key: %q", workKey)
	}
	if v, ok := c.cache.Get(cache.Works, key); ok {
		return v.(*domain.WorkMeta), nil
	}

	var doc workDoc
	if err := c.getJSON(ctx, key+".json", &doc); err != nil {
		return nil, err
	}

	meta := &domain.WorkMeta{
		Key:      key,
		Title:    doc.Title,
		Subjects: doc.Subjects,
	}
	if len(meta.Subjects) > maxSubjects {
		meta.Subjects = meta.Subjects[:maxSubjects]
	}
	for _, a := range doc.Authors {
		if a.Author.Key != "" {
			meta.AuthorKeys = append(meta.AuthorKeys, a.Author.Key)
		}
	}

	c.cache.Set(cache.Works, key, meta)
	return meta, nil
}

type authorWorksDoc struct {
	Name    string `json:"name"`
	Entries []struct {
		Key    string  `json:"key"`
		Title  string  `json:"title"`
		Covers []int64 `json:"covers"`
		// Not part of the upstream works listing for every author, kept
		// for catalogs that inline it.
		EditionCount int `json:"edition_count"`
	} `json:"entries"`
}

// GetAuthorWorks lists up to limit works by one author, 12h-cached.
func (c *Client) GetAuthorWorks(ctx context.Context, authorKey string, limit int) (*domain.AuthorWorks, error) {
	cacheKey := fmt.Sprintf("%s:%d", authorKey, limit)
	if v, ok := c.cache.Get(cache.Authors, cacheKey); ok {
		return v.(*domain.AuthorWorks), nil
	}

	var doc authorWorksDoc
	path := fmt.Sprintf("%s/works.json?limit=%d", authorKey, limit)
	if err := c.getJSON(ctx, path, &doc); err != nil {
		return nil, err
	}

	works := &domain.AuthorWorks{Name: doc.Name}
	for _, e := range doc.Entries {
		entry := domain.AuthorWorkEntry{
			Key:          e.Key,
			Title:        e.Title,
			EditionCount: e.EditionCount,
		}
		if len(e.Covers) > 0 {
			entry.CoverID = e.Covers[0]
		}
		works.Entries = append(works.Entries, entry)
	}

	c.cache.Set(cache.Authors, cacheKey, works)
	return works, nil
}

type subjectDoc struct {
	Name  string `json:"name"`
	Works []struct {
		Key     string `json:"key"`
		Title   string `json:"title"`
		Authors []struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"authors"`
		CoverID          int64    `json:"cover_id"`
		EditionCount     int      `json:"edition_count"`
		FirstPublishYear int      `json:"first_publish_year"`
		RatingsAverage   *float64 `json:"ratings_average"`
	} `json:"works"`
}

// GetSubjectWorks lists up to limit works tagged with a subject, 6h-cached.
func (c *Client) GetSubjectWorks(ctx context.Context, subject string, limit int) ([]domain.SubjectWorkEntry, error) {
	slug := subjectSlug(subject)
	cacheKey := fmt.Sprintf("%s:%d", slug, limit)
	if v, ok := c.cache.Get(cache.Subjects, cacheKey); ok {
		return v.([]domain.SubjectWorkEntry), nil
	}

	var doc subjectDoc
	path := fmt.Sprintf("/subjects/%s.json?limit=%d", url.PathEscape(slug), limit)
	if err := c.getJSON(ctx, path, &doc); err != nil {
		return nil, err
	}

	entries := make([]domain.SubjectWorkEntry, 0, len(doc.Works))
	for _, w := range doc.Works {
		entry := domain.SubjectWorkEntry{
			Key:              w.Key,
			Title:            w.Title,
			CoverID:          w.CoverID,
			EditionCount:     w.EditionCount,
			FirstPublishYear: w.FirstPublishYear,
			RatingsAverage:   w.RatingsAverage,
		}
		for _, a := range w.Authors {
			if a.Name != "" {
				entry.Authors = append(entry.Authors, a.Name)
			}
		}
		entries = append(entries, entry)
	}

	c.cache.Set(cache.Subjects, cacheKey, entries)
	return entries, nil
}

type ratingsDoc struct {
	Summary struct {
		Average *float64 `json:"average"`
		Count   *int     `json:"count"`
	} `json:"summary"`
}

// GetRatings returns the rating summary of one work, 24h-cached. Both
// fields are nil when the catalog has no ratings for the work.
func (c *Client) GetRatings(ctx context.Context, workKey string) (*domain.RatingSummary, error) {
	key := domain.NormalizeWorkKey(workKey)
	if key == "" {
		return nil, fmt.Errorf("not an OpenLibrary work key: %q", workKey)
	}
	if v, ok := c.cache.Get(cache.Ratings, key); ok {
		return v.(*domain.RatingSummary), nil
	}

	var doc ratingsDoc
	if err := c.getJSON(ctx, key+"/ratings.json", &doc); err != nil {
		return nil, err
	}

	summary := &domain.RatingSummary{
		Average: doc.Summary.Average,
		Count:   doc.Summary.Count,
	}
	c.cache.Set(cache.Ratings, key, summary)
	return summary, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func subjectSlug(subject string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(subject)), " ", "_")
}
