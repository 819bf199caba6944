package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BookCategory is the closed set of listing categories.
type BookCategory string

const (
	CategoryFiction    BookCategory = "fiction"
	CategoryNonFiction BookCategory = "non-fiction"
	CategoryAcademic   BookCategory = "academic"
	CategoryTextbook   BookCategory = "textbook"
	CategoryNovel      BookCategory = "novel"
)

// Valid reports whether the category is one of the allowed values.
func (c BookCategory) Valid() bool {
	switch c {
	case CategoryFiction, CategoryNonFiction, CategoryAcademic, CategoryTextbook, CategoryNovel:
		return true
	}
	return false
}

// BookCondition is the closed set of physical conditions.
type BookCondition string

const (
	ConditionExcellent BookCondition = "excellent"
	ConditionGood      BookCondition = "good"
	ConditionFair      BookCondition = "fair"
	ConditionPoor      BookCondition = "poor"
)

// Valid reports whether the condition is one of the allowed values.
func (c BookCondition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// BookStatus represents the lifecycle status of a listing.
// Only active books are visible in the catalog or addable to carts.
type BookStatus string

const (
	BookStatusActive   BookStatus = "active"
	BookStatusSold     BookStatus = "sold"
	BookStatusInactive BookStatus = "inactive"
)

// Book represents a listing owned by exactly one seller.
type Book struct {
	ID          int64
	SellerID    int64
	ISBN        *string
	Title       string
	Author      string
	Category    BookCategory
	Price       decimal.Decimal
	Description string
	Condition   BookCondition
	ImagePath   *string
	Status      BookStatus
	CreatedAt   time.Time
}

// Catalog paging defaults, matching the browse page.
const (
	DefaultPageSize = 12

	// MaxPriceSentinel is the effective "no upper bound" for price filters.
	MaxPriceSentinel = 999999
)

// CatalogFilter holds the optional, independently combinable catalog
// query parameters. Zero values impose no constraint.
type CatalogFilter struct {
	Search   string
	Category BookCategory
	PriceMin decimal.Decimal
	PriceMax decimal.Decimal
	SellerID int64
	Page     int
	Limit    int
}

// Normalize fills defaults: page 1, limit 12, price bounds [0, sentinel].
func (f CatalogFilter) Normalize() CatalogFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.PriceMax.IsZero() {
		f.PriceMax = decimal.NewFromInt(MaxPriceSentinel)
	}
	return f
}

// Offset returns the row offset for the normalized filter.
func (f CatalogFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// CatalogItem is one catalog result row: a book joined with its seller's
// display identity and aggregated review data. Price is a fixed
// two-decimal string and AvgRating a fixed one-decimal string ("0.0"
// when no reviews exist); both are part of the response contract.
type CatalogItem struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Category    BookCategory  `json:"category"`
	Price       string        `json:"price"`
	Description string        `json:"description"`
	Condition   BookCondition `json:"condition"`
	ImagePath   *string       `json:"image_path"`
	SellerName  string        `json:"seller_name"`
	SellerEmail string        `json:"seller_email"`
	AvgRating   string        `json:"avg_rating"`
	ReviewCount int64         `json:"review_count"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Pagination describes the page of results for client-side controls.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalBooks  int64 `json:"total_books"`
	Limit       int   `json:"limit"`
}

// CatalogPage is a full catalog query result.
type CatalogPage struct {
	Books      []CatalogItem `json:"books"`
	Pagination Pagination    `json:"pagination"`
}

// PageCount returns ceil(total / limit).
func PageCount(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// CreateBookParams contains parameters for creating a listing.
type CreateBookParams struct {
	SellerID    int64
	ISBN        *string
	Title       string
	Author      string
	Category    BookCategory
	Price       decimal.Decimal
	Description string
	Condition   BookCondition
	ImagePath   *string
}

// BookService provides catalog queries and listing management.
type BookService interface {
	// ListCatalog returns one page of active books matching the filter,
	// enriched with seller name and review aggregates. The status filter
	// applies regardless of any seller_id restriction.
	ListCatalog(ctx context.Context, filter CatalogFilter) (*CatalogPage, error)

	// CreateBook creates an active listing owned by the seller.
	CreateBook(ctx context.Context, params CreateBookParams) (*Book, error)
}
