package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tlind/bookmarket/internal/domain"
)

// BookService implements domain.BookService using PostgreSQL.
type BookService struct {
	db DB
}

// Compile-time check that BookService implements domain.BookService.
var _ domain.BookService = (*BookService)(nil)

// NewBookService creates a new PostgreSQL-backed book service.
func NewBookService(db DB) *BookService {
	return &BookService{db: db}
}

// buildCatalogWhere composes the WHERE clause for a catalog query. Filters
// are AND-combined; absent filters impose no constraint. The status filter
// is unconditional: only active books are ever visible, even when the
// query is restricted to one seller's catalog.
func buildCatalogWhere(filter domain.CatalogFilter) (string, []any) {
	conditions := []string{"b.status = 'active'"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(b.title ILIKE %s OR b.author ILIKE %s OR b.description ILIKE %s)",
			arg(term), arg(term), arg(term)))
	}

	if filter.Category != "" {
		conditions = append(conditions, "b.category = "+arg(string(filter.Category)))
	}

	if filter.PriceMin.IsPositive() {
		conditions = append(conditions, "b.price >= "+arg(filter.PriceMin.StringFixed(2)))
	}

	if filter.PriceMax.LessThan(decimal.NewFromInt(domain.MaxPriceSentinel)) {
		conditions = append(conditions, "b.price <= "+arg(filter.PriceMax.StringFixed(2)))
	}

	if filter.SellerID > 0 {
		conditions = append(conditions, "b.seller_id = "+arg(filter.SellerID))
	}

	return strings.Join(conditions, " AND "), args
}

// ListCatalog returns one page of active books matching the filter, joined
// with seller identity and review aggregates. Either the full page is
// returned or none is.
func (s *BookService) ListCatalog(ctx context.Context, filter domain.CatalogFilter) (*domain.CatalogPage, error) {
	filter = filter.Normalize()
	where, args := buildCatalogWhere(filter)

	var total int64
	countQuery := "SELECT COUNT(*) FROM books b WHERE " + where
	if err := s.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, domain.Internal(err, "catalog.list", "failed to count books")
	}

	query := fmt.Sprintf(`
		SELECT
			b.id, b.title, b.author, b.category, b.price::text, b.description,
			b.condition, b.image_path,
			u.first_name, u.last_name, u.email,
			COALESCE(AVG(r.rating), 0)::float8 AS avg_rating,
			COUNT(r.id) AS review_count,
			b.created_at
		FROM books b
		JOIN users u ON b.seller_id = u.id
		LEFT JOIN reviews r ON r.book_id = b.id
		WHERE %s
		GROUP BY b.id, u.id
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list", "failed to query books")
	}
	defer rows.Close()

	books := make([]domain.CatalogItem, 0, filter.Limit)
	for rows.Next() {
		var (
			item      domain.CatalogItem
			price     string
			firstName string
			lastName  string
			avgRating float64
		)
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Author, &item.Category, &price,
			&item.Description, &item.Condition, &item.ImagePath,
			&firstName, &lastName, &item.SellerEmail,
			&avgRating, &item.ReviewCount, &item.CreatedAt,
		); err != nil {
			return nil, domain.Internal(err, "catalog.list", "failed to scan book row")
		}

		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, domain.Internal(err, "catalog.list", "failed to parse book price")
		}

		item.Price = p.StringFixed(2)
		item.SellerName = firstName + " " + lastName
		item.AvgRating = fmt.Sprintf("%.1f", avgRating)
		books = append(books, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "catalog.list", "failed to read book rows")
	}

	return &domain.CatalogPage{
		Books: books,
		Pagination: domain.Pagination{
			CurrentPage: filter.Page,
			TotalPages:  domain.PageCount(total, filter.Limit),
			TotalBooks:  total,
			Limit:       filter.Limit,
		},
	}, nil
}

// CreateBook creates an active listing owned by the seller.
func (s *BookService) CreateBook(ctx context.Context, params domain.CreateBookParams) (*domain.Book, error) {
	book := domain.Book{
		SellerID:    params.SellerID,
		ISBN:        params.ISBN,
		Title:       params.Title,
		Author:      params.Author,
		Category:    params.Category,
		Price:       params.Price,
		Description: params.Description,
		Condition:   params.Condition,
		ImagePath:   params.ImagePath,
		Status:      domain.BookStatusActive,
	}

	const query = `
		INSERT INTO books (seller_id, isbn, title, author, category, price, description, condition, image_path, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'active')
		RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query,
		params.SellerID, params.ISBN, params.Title, params.Author,
		string(params.Category), params.Price.StringFixed(2), params.Description,
		string(params.Condition), params.ImagePath,
	).Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		return nil, domain.Internal(err, "book.create", "failed to insert book")
	}

	return &book, nil
}
