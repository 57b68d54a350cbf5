package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/elib/pkg/web"
)

func TestServeBytes(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		contentType string
	}{
		{"openapi", []byte(`{"openapi":"3.1.0"}`), "application/json"},
		{"scalar page", []byte(`<script id="api-reference"></script>`), "text/html; charset=utf-8"},
		{"empty", []byte{}, "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := web.ServeBytes(tt.data, tt.contentType)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", "/file", nil))

			if rec.Code != http.StatusOK {
				t.Errorf("status: got %d, want 200", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("content-type: got %q, want %q", ct, tt.contentType)
			}
			if rec.Header().Get("ETag") == "" {
				t.Error("missing etag")
			}
			if rec.Body.String() != string(tt.data) {
				t.Errorf("body: got %q, want %q", rec.Body.String(), string(tt.data))
			}
		})
	}
}

func TestServeBytesRevalidation(t *testing.T) {
	handler := web.ServeBytes([]byte(`{"openapi":"3.1.0"}`), "application/json")

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest("GET", "/openapi.json", nil))
	etag := first.Header().Get("ETag")

	req := httptest.NewRequest("GET", "/openapi.json", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Errorf("status: got %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("304 should have no body, got %q", rec.Body.String())
	}

	other := web.ServeBytes([]byte(`{"openapi":"3.0.0"}`), "application/json")
	rec = httptest.NewRecorder()
	other.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("changed content should not match etag, got %d", rec.Code)
	}
}
