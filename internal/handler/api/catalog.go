package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tlind/bookmarket/internal/domain"
)

// CatalogHandler serves the public book catalog and listing creation.
type CatalogHandler struct {
	books    domain.BookService
	validate *validator.Validate
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(books domain.BookService) *CatalogHandler {
	return &CatalogHandler{books: books, validate: validator.New()}
}

// ListBooks handles GET /api/books. All filters are optional and
// AND-combined; absent or malformed values impose no constraint.
func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.CatalogFilter{
		Search:   q.Get("search"),
		Category: domain.BookCategory(q.Get("category")),
		PriceMin: parseDecimalParam(q.Get("price_min")),
		PriceMax: parseDecimalParam(q.Get("price_max")),
		SellerID: parseInt64Param(q.Get("seller_id")),
		Page:     parseIntParam(q.Get("page")),
		Limit:    parseIntParam(q.Get("limit")),
	}

	page, err := h.books.ListCatalog(r.Context(), filter)
	if err != nil {
		Error(w, r, err)
		return
	}

	OK(w, http.StatusOK, "Books fetched successfully", page)
}

// Malformed numeric parameters fall back to the zero value, which the
// filter treats as unconstrained.

func parseDecimalParam(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseInt64Param(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseIntParam(s string) int {
	return int(parseInt64Param(s))
}
