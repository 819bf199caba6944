// Package routes wires handlers onto the router.
package routes

import (
	"github.com/tlind/bookmarket/internal/domain"
	"github.com/tlind/bookmarket/internal/handler/api"
	"github.com/tlind/bookmarket/internal/middleware"
	"github.com/tlind/bookmarket/internal/router"
)

// Deps holds everything route registration needs.
type Deps struct {
	Users         domain.UserService
	Books         domain.BookService
	Carts         domain.CartService
	SecureCookies bool
}

// Register mounts all endpoints on the router. Cart endpoints and
// listing creation sit behind the session gate; everything else is
// public.
func Register(r *router.Router, deps Deps) {
	authHandler := api.NewAuthHandler(deps.Users, deps.SecureCookies)
	catalogHandler := api.NewCatalogHandler(deps.Books)
	cartHandler := api.NewCartHandler(deps.Carts)

	// Public endpoints
	r.Get("/api/books", catalogHandler.ListBooks)
	r.Post("/api/signup", authHandler.Signup)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/logout", authHandler.Logout)

	// Authenticated endpoints
	authed := r.Group(middleware.RequireUser)
	authed.Get("/api/cart", cartHandler.GetCart)
	authed.Post("/api/cart", cartHandler.MutateCart)
	authed.Post("/api/books", catalogHandler.CreateBook)
}
