package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tlind/bookmarket/internal/domain"
)

type contextKey string

const (
	// UserContextKey is the context key for storing the authenticated user
	UserContextKey contextKey = "user"

	// SessionCookieName is the cookie carrying the opaque session token
	SessionCookieName = "bookmarket_session"
)

// WithUser extracts the user from the session cookie and adds it to the request context.
// This middleware is optional - it adds the user if present but doesn't require authentication.
func WithUser(userService domain.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Try to get session cookie
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				// No session cookie, continue without user
				next.ServeHTTP(w, r)
				return
			}

			// Get user from session
			user, err := userService.GetUserBySessionToken(r.Context(), cookie.Value)
			if err != nil {
				// Invalid session, continue without user
				next.ServeHTTP(w, r)
				return
			}

			// Add user to context
			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser is the session gate for the JSON API: it ensures the request
// resolved to an authenticated user and otherwise rejects with the generic
// authentication-required envelope, without reaching the handler.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": domain.ErrUnauthenticated.Message,
				"data":    nil,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext retrieves the user from the request context.
// Returns nil if no user is authenticated.
func GetUserFromContext(ctx context.Context) *domain.User {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// SetSessionCookie sets the session cookie after signup or login.
func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   30 * 24 * 60 * 60,
	})
}

// ClearSessionCookie expires the session cookie on logout.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
