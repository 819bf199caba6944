package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	t.Run("generates an id when absent", func(t *testing.T) {
		var ctxID string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxID = GetRequestID(r.Context())
		})

		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		headerID := rec.Header().Get(RequestIDHeader)
		if headerID == "" {
			t.Fatal("response missing request id header")
		}
		if _, err := uuid.Parse(headerID); err != nil {
			t.Errorf("request id %q is not a UUID", headerID)
		}
		if ctxID != headerID {
			t.Errorf("context id %q != header id %q", ctxID, headerID)
		}
	})

	t.Run("preserves an incoming id", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "upstream-id")
		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, req)

		if got := rec.Header().Get(RequestIDHeader); got != "upstream-id" {
			t.Errorf("request id = %q, want upstream-id", got)
		}
	})
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("request id = %q, want empty", got)
	}
}
