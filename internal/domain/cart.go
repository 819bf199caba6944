package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CartStatus represents the lifecycle status of a cart line.
// Removal is a soft delete; removed lines are kept for history and are
// never re-activated. A later add for the same pair creates a fresh line.
type CartStatus string

const (
	CartStatusActive  CartStatus = "active"
	CartStatusRemoved CartStatus = "removed"
)

// CartShippingFlat is the flat shipping charge applied to any non-empty cart.
var CartShippingFlat = decimal.New(599, -2) // 5.99

// CartLine is one (user, book) cart record.
// Invariant: at most one active line per (user, book) pair, enforced by a
// storage-level uniqueness constraint, not an application check.
type CartLine struct {
	ID        int64
	UserID    int64
	BookID    int64
	Quantity  int32
	Status    CartStatus
	CreatedAt time.Time
}

// CartLineDetail is an active cart line joined with the book's display
// fields and its seller's display name.
type CartLineDetail struct {
	ID         int64
	BookID     int64
	Quantity   int32
	Title      string
	Author     string
	Price      decimal.Decimal
	Condition  BookCondition
	ImagePath  *string
	SellerName string
	CreatedAt  time.Time
}

// CartSummary aggregates derived cart totals. It is a pure function of the
// line set: subtotal plus a flat shipping charge whenever the cart is
// non-empty. Checkout enablement follows cart non-emptiness.
type CartSummary struct {
	Subtotal        decimal.Decimal
	Shipping        decimal.Decimal
	Total           decimal.Decimal
	ItemCount       int
	CheckoutEnabled bool
}

// SummarizeCart derives the cart summary from a set of active lines.
func SummarizeCart(lines []CartLineDetail) CartSummary {
	subtotal := decimal.Zero
	itemCount := 0

	for _, line := range lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt32(line.Quantity)))
		itemCount += int(line.Quantity)
	}

	shipping := decimal.Zero
	if len(lines) > 0 {
		shipping = CartShippingFlat
	}

	return CartSummary{
		Subtotal:        subtotal,
		Shipping:        shipping,
		Total:           subtotal.Add(shipping),
		ItemCount:       itemCount,
		CheckoutEnabled: len(lines) > 0,
	}
}

// CartService provides the cart state machine for authenticated users.
type CartService interface {
	// Add creates an active line with quantity 1. The book must exist with
	// status active, must not belong to the requesting user, and no active
	// line may already exist for the pair. Two concurrent adds for the same
	// pair must not both succeed; the loser gets ErrAlreadyInCart.
	Add(ctx context.Context, userID, bookID int64) error

	// Remove soft-deletes the active line for the pair.
	Remove(ctx context.Context, userID, bookID int64) error

	// UpdateQuantity sets the active line's quantity. A non-positive
	// quantity is treated as a removal request, not an error.
	UpdateQuantity(ctx context.Context, userID, bookID int64, quantity int32) error

	// List returns the user's active lines joined with book and seller
	// display fields, in insertion order.
	List(ctx context.Context, userID int64) ([]CartLineDetail, error)
}

// Cart-specific errors. Messages match what the storefront surfaces.
var (
	ErrBookUnavailable = &Error{Code: ENOTFOUND, Message: "Book not found or not available"}
	ErrSelfPurchase    = &Error{Code: EFORBIDDEN, Message: "You cannot add your own book to cart"}
	ErrAlreadyInCart   = &Error{Code: ECONFLICT, Message: "Book already in cart"}
	ErrNotInCart       = &Error{Code: ENOTFOUND, Message: "Book not in cart"}
)
