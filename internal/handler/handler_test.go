package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookworm-social/recommendation-service/internal/domain"
	"github.com/bookworm-social/recommendation-service/internal/service"
	"github.com/go-chi/chi/v5"
)

type stubRepo struct{}

func (stubRepo) GetUserByID(_ context.Context, userID int64) (*domain.User, error) {
	if userID == 1 {
		return &domain.User{ID: 1, Username: "reader"}, nil
	}
	return nil, domain.ErrUserNotFound
}

func (stubRepo) GetFavoriteSeeds(context.Context, int64, int) ([]domain.FavoriteSeed, error) {
	return nil, nil
}

func (stubRepo) GetFavoriteIDs(context.Context, int64, int) ([]string, error) {
	return nil, nil
}

func (stubRepo) GetUserIDsPaginated(context.Context, int, int) ([]int64, error) {
	return []int64{1}, nil
}

func (stubRepo) CountUsers(context.Context) (int, error) { return 1, nil }

type stubStore struct{}

func (stubStore) Get(context.Context, string) ([]domain.Book, bool, error) {
	return nil, false, nil
}

func (stubStore) Set(context.Context, string, []domain.Book) error { return nil }

type stubRec struct{}

func (stubRec) Recommend(context.Context, []domain.FavoriteSeed, []string, string) []domain.Book {
	return []domain.Book{{ID: "/works/OL1W", Title: "Dune", Author: "Frank Herbert"}}
}

func testRouter() http.Handler {
	svc := service.NewService(stubRepo{}, stubRepo{}, stubStore{}, stubRec{})
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Get("/users/{userID}/recommendations", h.GetRecommendations)
	r.Get("/recommendations/batch", h.GetBatchRecommendations)
	return r
}

func TestGetRecommendationsOK(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/1/recommendations?seed=s", nil)
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}

	var resp RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UserID != 1 {
		t.Errorf("user_id: got %d", resp.UserID)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].Title != "Dune" {
		t.Errorf("recommendations: got %+v", resp.Recommendations)
	}
	if resp.Metadata.TotalCount != 1 {
		t.Errorf("total_count: got %d", resp.Metadata.TotalCount)
	}
}

func TestGetRecommendationsInvalidUserID(t *testing.T) {
	for _, path := range []string{
		"/users/abc/recommendations",
		"/users/0/recommendations",
		"/users/-5/recommendations",
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		testRouter().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rec.Code)
		}
	}
}

func TestGetRecommendationsUserNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/999/recommendations", nil)
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "user_not_found" {
		t.Errorf("error code: got %q", resp.Error)
	}
}

func TestGetBatchRecommendationsOK(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recommendations/batch?page=1&limit=10", nil)
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.BatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Summary.SuccessCount != 1 || resp.Summary.FailedCount != 0 {
		t.Errorf("summary: got %+v", resp.Summary)
	}
}

func TestGetBatchRecommendationsInvalidParams(t *testing.T) {
	for _, query := range []string{
		"page=0", "page=10001", "page=abc",
		"limit=0", "limit=101", "limit=abc",
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/recommendations/batch?"+query, nil)
		testRouter().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}
