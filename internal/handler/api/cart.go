package api

import (
	"net/http"
	"strconv"

	"github.com/tlind/bookmarket/internal/domain"
	"github.com/tlind/bookmarket/internal/middleware"
)

// CartHandler serves the authenticated cart endpoints.
type CartHandler struct {
	carts domain.CartService
}

// NewCartHandler creates a cart handler.
func NewCartHandler(carts domain.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// cartItemView is the JSON shape of one cart line.
type cartItemView struct {
	ID         int64   `json:"id"`
	BookID     int64   `json:"book_id"`
	Quantity   int32   `json:"quantity"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Price      string  `json:"price"`
	Condition  string  `json:"condition"`
	ImagePath  *string `json:"image_path"`
	SellerName string  `json:"seller_name"`
	CreatedAt  string  `json:"created_at"`
}

// cartSummaryView is the JSON shape of the derived cart totals.
type cartSummaryView struct {
	Subtotal        string `json:"subtotal"`
	Shipping        string `json:"shipping"`
	Total           string `json:"total"`
	ItemCount       int    `json:"item_count"`
	CheckoutEnabled bool   `json:"checkout_enabled"`
}

// GetCart handles GET /api/cart: the user's active lines plus totals.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		Error(w, r, domain.ErrUnauthenticated)
		return
	}

	lines, err := h.carts.List(r.Context(), user.ID)
	if err != nil {
		Error(w, r, err)
		return
	}

	items := make([]cartItemView, 0, len(lines))
	for _, line := range lines {
		items = append(items, cartItemView{
			ID:         line.ID,
			BookID:     line.BookID,
			Quantity:   line.Quantity,
			Title:      line.Title,
			Author:     line.Author,
			Price:      line.Price.StringFixed(2),
			Condition:  string(line.Condition),
			ImagePath:  line.ImagePath,
			SellerName: line.SellerName,
			CreatedAt:  line.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	summary := domain.SummarizeCart(lines)

	OK(w, http.StatusOK, "Cart items fetched successfully", map[string]any{
		"items": items,
		"summary": cartSummaryView{
			Subtotal:        summary.Subtotal.StringFixed(2),
			Shipping:        summary.Shipping.StringFixed(2),
			Total:           summary.Total.StringFixed(2),
			ItemCount:       summary.ItemCount,
			CheckoutEnabled: summary.CheckoutEnabled,
		},
	})
}

// MutateCart handles POST /api/cart. The form's action field selects the
// operation: add, remove, or update_quantity.
func (h *CartHandler) MutateCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		Error(w, r, domain.ErrUnauthenticated)
		return
	}

	if err := r.ParseForm(); err != nil {
		Error(w, r, domain.Invalid("cart.mutate", "Invalid form data"))
		return
	}

	// A malformed book_id parses to zero, which no book has, so the
	// store reports it as not found rather than a separate input error.
	bookID, _ := strconv.ParseInt(r.PostFormValue("book_id"), 10, 64)

	switch r.PostFormValue("action") {
	case "add":
		if err := h.carts.Add(r.Context(), user.ID, bookID); err != nil {
			Error(w, r, err)
			return
		}
		OK(w, http.StatusOK, "Book added to cart successfully", nil)

	case "remove":
		if err := h.carts.Remove(r.Context(), user.ID, bookID); err != nil {
			Error(w, r, err)
			return
		}
		OK(w, http.StatusOK, "Book removed from cart successfully", nil)

	case "update_quantity":
		quantity, _ := strconv.ParseInt(r.PostFormValue("quantity"), 10, 32)
		if err := h.carts.UpdateQuantity(r.Context(), user.ID, bookID, int32(quantity)); err != nil {
			Error(w, r, err)
			return
		}
		OK(w, http.StatusOK, "Cart updated successfully", nil)

	default:
		Error(w, r, domain.Invalid("cart.mutate", "Invalid action"))
	}
}
