package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tlind/bookmarket/internal/domain"
)

// mockBookService implements domain.BookService for testing
type mockBookService struct {
	listCatalogFunc func(ctx context.Context, filter domain.CatalogFilter) (*domain.CatalogPage, error)
	createBookFunc  func(ctx context.Context, params domain.CreateBookParams) (*domain.Book, error)
}

func (m *mockBookService) ListCatalog(ctx context.Context, filter domain.CatalogFilter) (*domain.CatalogPage, error) {
	if m.listCatalogFunc != nil {
		return m.listCatalogFunc(ctx, filter)
	}
	return &domain.CatalogPage{Books: []domain.CatalogItem{}}, nil
}

func (m *mockBookService) CreateBook(ctx context.Context, params domain.CreateBookParams) (*domain.Book, error) {
	if m.createBookFunc != nil {
		return m.createBookFunc(ctx, params)
	}
	return &domain.Book{ID: 1}, nil
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestListBooks(t *testing.T) {
	t.Run("parses query parameters into the filter", func(t *testing.T) {
		var got domain.CatalogFilter
		books := &mockBookService{
			listCatalogFunc: func(_ context.Context, filter domain.CatalogFilter) (*domain.CatalogPage, error) {
				got = filter
				return &domain.CatalogPage{Books: []domain.CatalogItem{}}, nil
			},
		}

		h := NewCatalogHandler(books)
		req := httptest.NewRequest(http.MethodGet,
			"/api/books?search=go&category=textbook&price_min=5&price_max=50&seller_id=7&page=2&limit=6", nil)
		rec := httptest.NewRecorder()
		h.ListBooks(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got.Search != "go" {
			t.Errorf("search = %q, want go", got.Search)
		}
		if got.Category != domain.CategoryTextbook {
			t.Errorf("category = %q, want textbook", got.Category)
		}
		if got.PriceMin.String() != "5" || got.PriceMax.String() != "50" {
			t.Errorf("price bounds = %s..%s, want 5..50", got.PriceMin, got.PriceMax)
		}
		if got.SellerID != 7 || got.Page != 2 || got.Limit != 6 {
			t.Errorf("seller/page/limit = %d/%d/%d, want 7/2/6", got.SellerID, got.Page, got.Limit)
		}
	})

	t.Run("malformed numeric parameters are unconstrained", func(t *testing.T) {
		var got domain.CatalogFilter
		books := &mockBookService{
			listCatalogFunc: func(_ context.Context, filter domain.CatalogFilter) (*domain.CatalogPage, error) {
				got = filter
				return &domain.CatalogPage{Books: []domain.CatalogItem{}}, nil
			},
		}

		h := NewCatalogHandler(books)
		req := httptest.NewRequest(http.MethodGet, "/api/books?price_min=abc&seller_id=xyz&page=nope", nil)
		rec := httptest.NewRecorder()
		h.ListBooks(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !got.PriceMin.IsZero() || got.SellerID != 0 || got.Page != 0 {
			t.Errorf("malformed params should parse to zero values, got %+v", got)
		}
	})

	t.Run("success envelope wraps the page", func(t *testing.T) {
		books := &mockBookService{
			listCatalogFunc: func(_ context.Context, _ domain.CatalogFilter) (*domain.CatalogPage, error) {
				return &domain.CatalogPage{
					Books: []domain.CatalogItem{{ID: 1, Title: "Clean Code", Price: "25.00", AvgRating: "4.5"}},
					Pagination: domain.Pagination{
						CurrentPage: 1,
						TotalPages:  1,
						TotalBooks:  1,
						Limit:       12,
					},
				}, nil
			},
		}

		h := NewCatalogHandler(books)
		rec := httptest.NewRecorder()
		h.ListBooks(rec, httptest.NewRequest(http.MethodGet, "/api/books", nil))

		resp := decodeResponse(t, rec)
		if !resp.Success {
			t.Error("expected success")
		}
		if resp.Message != "Books fetched successfully" {
			t.Errorf("message = %q", resp.Message)
		}

		data, ok := resp.Data.(map[string]any)
		if !ok {
			t.Fatalf("data has unexpected shape: %T", resp.Data)
		}
		if _, ok := data["books"]; !ok {
			t.Error("data missing books key")
		}
		if _, ok := data["pagination"]; !ok {
			t.Error("data missing pagination key")
		}
	})

	t.Run("storage failure yields a generic 500", func(t *testing.T) {
		books := &mockBookService{
			listCatalogFunc: func(_ context.Context, _ domain.CatalogFilter) (*domain.CatalogPage, error) {
				return nil, domain.Internal(errors.New("connection refused"), "catalog.list", "failed to query books")
			},
		}

		h := NewCatalogHandler(books)
		rec := httptest.NewRecorder()
		h.ListBooks(rec, httptest.NewRequest(http.MethodGet, "/api/books", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		resp := decodeResponse(t, rec)
		if resp.Success {
			t.Error("expected failure envelope")
		}
		if resp.Message != "An internal error occurred. Please try again later." {
			t.Errorf("internal detail leaked: %q", resp.Message)
		}
	})
}
