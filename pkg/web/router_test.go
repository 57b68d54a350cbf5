package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/elib/pkg/web"
)

func TestRouter(t *testing.T) {
	status := func(code int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(code) }
	}

	tests := []struct {
		name       string
		fallback   bool
		method     string
		path       string
		wantStatus int
	}{
		{"handle func", false, "GET", "/", http.StatusOK},
		{"handle", false, "GET", "/reference", http.StatusAccepted},
		{"method mismatch without fallback", false, "POST", "/reference", http.StatusMethodNotAllowed},
		{"unknown without fallback", false, "GET", "/unknown", http.StatusNotFound},
		{"unknown with fallback", true, "GET", "/unknown", http.StatusFound},
		{"known with fallback", true, "GET", "/reference", http.StatusAccepted},
		{"method mismatch with fallback", true, "DELETE", "/reference", http.StatusMethodNotAllowed},
		{"head served by get", true, "HEAD", "/reference", http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fallback http.Handler
			if tt.fallback {
				fallback = status(http.StatusFound)
			}

			r := web.NewRouter(fallback)
			r.HandleFunc("GET /{$}", status(http.StatusOK))
			r.Handle("GET /reference", status(http.StatusAccepted))

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
