package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tlind/bookmarket/internal/domain"
)

// CartService implements domain.CartService using PostgreSQL.
//
// The one-active-line-per-(user, book) invariant is enforced by a partial
// unique index on cart_items, so Add never does a check-then-insert: it
// inserts and maps the constraint conflict to ErrAlreadyInCart. Two
// concurrent adds for the same pair therefore cannot both succeed.
type CartService struct {
	db DB
}

// Compile-time check that CartService implements domain.CartService.
var _ domain.CartService = (*CartService)(nil)

// NewCartService creates a new PostgreSQL-backed cart service.
func NewCartService(db DB) *CartService {
	return &CartService{db: db}
}

// Add creates an active line with quantity 1 for the pair.
func (s *CartService) Add(ctx context.Context, userID, bookID int64) error {
	var (
		sellerID int64
		status   domain.BookStatus
	)
	err := s.db.QueryRow(ctx,
		`SELECT seller_id, status FROM books WHERE id = $1`, bookID,
	).Scan(&sellerID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrBookUnavailable
		}
		return domain.Internal(err, "cart.add", "failed to look up book")
	}

	// Self-purchase is forbidden regardless of the book's status.
	if sellerID == userID {
		return domain.ErrSelfPurchase
	}

	if status != domain.BookStatusActive {
		return domain.ErrBookUnavailable
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO cart_items (user_id, book_id, quantity, status) VALUES ($1, $2, 1, 'active')`,
		userID, bookID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyInCart
		}
		return domain.Internal(err, "cart.add", "failed to insert cart line")
	}

	return nil
}

// Remove soft-deletes the active line for the pair.
func (s *CartService) Remove(ctx context.Context, userID, bookID int64) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE cart_items SET status = 'removed' WHERE user_id = $1 AND book_id = $2 AND status = 'active'`,
		userID, bookID,
	)
	if err != nil {
		return domain.Internal(err, "cart.remove", "failed to remove cart line")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotInCart
	}

	return nil
}

// UpdateQuantity sets the active line's quantity. A non-positive quantity
// is a removal request.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, bookID int64, quantity int32) error {
	if quantity <= 0 {
		return s.Remove(ctx, userID, bookID)
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE user_id = $2 AND book_id = $3 AND status = 'active'`,
		quantity, userID, bookID,
	)
	if err != nil {
		return domain.Internal(err, "cart.update_quantity", "failed to update cart line")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotInCart
	}

	return nil
}

// List returns the user's active lines joined with book and seller display
// fields, in insertion order.
func (s *CartService) List(ctx context.Context, userID int64) ([]domain.CartLineDetail, error) {
	const query = `
		SELECT
			ci.id, ci.book_id, ci.quantity,
			b.title, b.author, b.price::text, b.condition, b.image_path,
			u.first_name, u.last_name,
			ci.created_at
		FROM cart_items ci
		JOIN books b ON ci.book_id = b.id
		JOIN users u ON b.seller_id = u.id
		WHERE ci.user_id = $1 AND ci.status = 'active'
		ORDER BY ci.id`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, domain.Internal(err, "cart.list", "failed to query cart lines")
	}
	defer rows.Close()

	var lines []domain.CartLineDetail
	for rows.Next() {
		var (
			line      domain.CartLineDetail
			price     string
			firstName string
			lastName  string
		)
		if err := rows.Scan(
			&line.ID, &line.BookID, &line.Quantity,
			&line.Title, &line.Author, &price, &line.Condition, &line.ImagePath,
			&firstName, &lastName,
			&line.CreatedAt,
		); err != nil {
			return nil, domain.Internal(err, "cart.list", "failed to scan cart line")
		}

		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, domain.Internal(err, "cart.list", "failed to parse line price")
		}

		line.Price = p
		line.SellerName = firstName + " " + lastName
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "cart.list", "failed to read cart lines")
	}

	return lines, nil
}
