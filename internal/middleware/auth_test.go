package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tlind/bookmarket/internal/domain"
)

// mockUserService implements domain.UserService for testing
type mockUserService struct {
	getUserBySessionTokenFunc func(ctx context.Context, token string) (*domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, params domain.RegisterParams) (*domain.User, error) {
	return nil, nil
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return nil, nil
}

func (m *mockUserService) CreateSession(ctx context.Context, userID int64) (string, error) {
	return "", nil
}

func (m *mockUserService) GetUserBySessionToken(ctx context.Context, token string) (*domain.User, error) {
	if m.getUserBySessionTokenFunc != nil {
		return m.getUserBySessionTokenFunc(ctx, token)
	}
	return nil, domain.ErrUnauthenticated
}

func (m *mockUserService) DeleteSession(ctx context.Context, token string) error {
	return nil
}

func TestWithUser(t *testing.T) {
	tests := []struct {
		name     string
		cookie   *http.Cookie
		service  *mockUserService
		wantUser bool
	}{
		{
			name:     "no cookie continues without user",
			cookie:   nil,
			service:  &mockUserService{},
			wantUser: false,
		},
		{
			name:   "valid session resolves the user",
			cookie: &http.Cookie{Name: SessionCookieName, Value: "good-token"},
			service: &mockUserService{
				getUserBySessionTokenFunc: func(_ context.Context, token string) (*domain.User, error) {
					if token != "good-token" {
						t.Errorf("token = %q", token)
					}
					return &domain.User{ID: 42}, nil
				},
			},
			wantUser: true,
		},
		{
			name:   "invalid session continues without user",
			cookie: &http.Cookie{Name: SessionCookieName, Value: "stale-token"},
			service: &mockUserService{
				getUserBySessionTokenFunc: func(_ context.Context, _ string) (*domain.User, error) {
					return nil, domain.ErrSessionExpired
				},
			},
			wantUser: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser *domain.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = GetUserFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			WithUser(tt.service)(next).ServeHTTP(rec, req)

			if tt.wantUser && gotUser == nil {
				t.Error("expected a user in context")
			}
			if !tt.wantUser && gotUser != nil {
				t.Errorf("expected no user, got %+v", gotUser)
			}
		})
	}
}

func TestRequireUser(t *testing.T) {
	t.Run("blocks anonymous requests with the JSON envelope", func(t *testing.T) {
		reached := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
		})

		rec := httptest.NewRecorder()
		RequireUser(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cart", nil))

		if reached {
			t.Error("handler must not run without a user")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}

		var body map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if body["success"] != false {
			t.Error("success should be false")
		}
		if body["message"] != "Authentication required" {
			t.Errorf("message = %v", body["message"])
		}
		if body["data"] != nil {
			t.Errorf("data = %v, want null", body["data"])
		}
	})

	t.Run("passes authenticated requests through", func(t *testing.T) {
		reached := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
		})

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		ctx := context.WithValue(req.Context(), UserContextKey, &domain.User{ID: 42})
		rec := httptest.NewRecorder()
		RequireUser(next).ServeHTTP(rec, req.WithContext(ctx))

		if !reached {
			t.Error("handler should run for an authenticated request")
		}
	})
}

func TestSessionCookieHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "token-123", true)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookieName || c.Value != "token-123" {
		t.Errorf("cookie = %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || !c.Secure {
		t.Error("session cookie must be http-only and secure")
	}

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec, true)
	c = rec.Result().Cookies()[0]
	if c.MaxAge >= 0 {
		t.Error("cleared cookie should have a negative max age")
	}
}
