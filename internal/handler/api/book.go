package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tlind/bookmarket/internal/domain"
	"github.com/tlind/bookmarket/internal/middleware"
)

// createBookRequest carries the listing form fields.
type createBookRequest struct {
	Title       string `validate:"required"`
	Author      string `validate:"required"`
	Category    string `validate:"required"`
	Price       string `validate:"required"`
	Description string `validate:"required"`
	Condition   string `validate:"required"`
}

// CreateBook handles POST /api/books: a seller lists a book for sale.
// The cover image arrives as an already-stored reference path; upload
// plumbing lives elsewhere.
func (h *CatalogHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		Error(w, r, domain.ErrUnauthenticated)
		return
	}

	if err := r.ParseForm(); err != nil {
		Error(w, r, domain.Invalid("book.create", "Invalid form data"))
		return
	}

	req := createBookRequest{
		Title:       r.PostFormValue("title"),
		Author:      r.PostFormValue("author"),
		Category:    r.PostFormValue("category"),
		Price:       r.PostFormValue("price"),
		Description: r.PostFormValue("description"),
		Condition:   r.PostFormValue("condition"),
	}

	if err := h.validate.Struct(req); err != nil {
		Error(w, r, domain.Invalid("book.create", "Please fill in all fields"))
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || !price.IsPositive() {
		Error(w, r, domain.Invalid("book.create", "Price must be greater than 0"))
		return
	}

	category := domain.BookCategory(req.Category)
	if !category.Valid() {
		Error(w, r, domain.Invalid("book.create", "Invalid category selected"))
		return
	}

	condition := domain.BookCondition(req.Condition)
	if !condition.Valid() {
		Error(w, r, domain.Invalid("book.create", "Invalid condition selected"))
		return
	}

	params := domain.CreateBookParams{
		SellerID:    user.ID,
		Title:       req.Title,
		Author:      req.Author,
		Category:    category,
		Price:       price,
		Description: req.Description,
		Condition:   condition,
	}
	if isbn := r.PostFormValue("isbn"); isbn != "" {
		params.ISBN = &isbn
	}
	if imagePath := r.PostFormValue("image_path"); imagePath != "" {
		params.ImagePath = &imagePath
	}

	book, err := h.books.CreateBook(r.Context(), params)
	if err != nil {
		Error(w, r, err)
		return
	}

	OK(w, http.StatusCreated, "Book added successfully", map[string]any{
		"book_id": book.ID,
	})
}
