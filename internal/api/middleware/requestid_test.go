// internal/api/middleware/requestid_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID_Generated(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	})

	wrapped := RequestID()(handler)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if seen == "" {
		t.Error("expected request ID in context")
	}
	if w.Header().Get(RequestIDHeader) != seen {
		t.Errorf("expected response header %q to match context ID %q",
			w.Header().Get(RequestIDHeader), seen)
	}
}

func TestRequestID_HonorsInbound(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	})

	wrapped := RequestID()(handler)

	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if seen != "abc-123" {
		t.Errorf("expected inbound ID to be kept, got %q", seen)
	}
}

func TestFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if id := FromContext(req.Context()); id != "" {
		t.Errorf("expected empty ID without middleware, got %q", id)
	}
}
