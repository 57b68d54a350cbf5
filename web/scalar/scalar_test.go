package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/elib/web/scalar"
)

func TestNewModule(t *testing.T) {
	m, err := scalar.NewModule("/scalar", "/api/openapi.json")
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	if m.Prefix() != "/scalar" {
		t.Errorf("prefix: got %s", m.Prefix())
	}

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{"root", "/scalar", http.StatusOK, ""},
		{"trailing slash", "/scalar/", http.StatusOK, ""},
		{"unknown path redirects", "/scalar/books", http.StatusFound, "/scalar/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			m.Serve(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" && rec.Header().Get("Location") != tt.wantLocation {
				t.Errorf("location: got %s", rec.Header().Get("Location"))
			}
			if tt.wantStatus == http.StatusOK {
				if !strings.Contains(rec.Body.String(), `data-url="/api/openapi.json"`) {
					t.Error("page does not reference the spec url")
				}
				if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
					t.Errorf("content-type: got %s", ct)
				}
			}
		})
	}
}
