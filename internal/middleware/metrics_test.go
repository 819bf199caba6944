package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/books", "/api/books"},
		{"/api/books/", "/api/books"},
		{"/api/cart", "/api/cart"},
		{"/api/login", "/api/login"},
		{"/api/signup", "/api/signup"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/favicon.ico", "other"},
		{"/", "other"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
