package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/elib/pkg/module"
)

func echoPath(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.URL.Path))
}

func mustNew(t *testing.T, prefix string, h http.Handler) *module.Module {
	t.Helper()
	m, err := module.New(prefix, h)
	if err != nil {
		t.Fatalf("New(%q) error = %v", prefix, err)
	}
	return m
}

func TestNewPrefix(t *testing.T) {
	tests := []struct {
		prefix  string
		wantErr bool
	}{
		{"/api", false},
		{"/scalar", false},
		{"/api/v1", false},
		{"", true},
		{"api", true},
		{"/", true},
		{"/api/", true},
		{"/api//v1", true},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			m, err := module.New(tt.prefix, http.NewServeMux())
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.prefix, err, tt.wantErr)
			}
			if err == nil && m.Prefix() != tt.prefix {
				t.Errorf("prefix: got %s, want %s", m.Prefix(), tt.prefix)
			}
		})
	}
}

func TestServeStripsPrefix(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"collection", "/api/books", "/books"},
		{"nested", "/api/books/b-1", "/books/b-1"},
		{"root", "/api", "/"},
	}

	m := mustNew(t, "/api", http.HandlerFunc(echoPath))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path+"?page=2", nil)
			rec := httptest.NewRecorder()
			m.Serve(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("inner path: got %s, want %s", got, tt.want)
			}
			if req.URL.Path != tt.path {
				t.Errorf("original request mutated: %s", req.URL.Path)
			}
		})
	}
}

func TestModuleMiddleware(t *testing.T) {
	m := mustNew(t, "/api", http.HandlerFunc(echoPath))

	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "api")
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/books", nil))

	if rec.Header().Get("X-Module") != "api" {
		t.Error("module middleware should have run")
	}
}

func TestRouterDispatch(t *testing.T) {
	tag := func(name string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(name + ":" + r.URL.Path))
		})
	}

	router := module.NewRouter()
	for _, m := range []*module.Module{
		mustNew(t, "/api", tag("api")),
		mustNew(t, "/api/v2", tag("v2")),
		mustNew(t, "/scalar", tag("scalar")),
	} {
		if err := router.Mount(m); err != nil {
			t.Fatal(err)
		}
	}
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"api module", "/api/books", http.StatusOK, "api:/books"},
		{"longest prefix wins", "/api/v2/books", http.StatusOK, "v2:/books"},
		{"trailing slash", "/api/books/", http.StatusOK, "api:/books"},
		{"module root with slash", "/scalar/", http.StatusOK, "scalar:/"},
		{"lookalike prefix", "/apiary", http.StatusNotFound, ""},
		{"native fallback", "/healthz", http.StatusOK, "ok"},
		{"unmatched", "/missing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body: got %s, want %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRouterDuplicateMount(t *testing.T) {
	router := module.NewRouter()
	if err := router.Mount(mustNew(t, "/api", http.NewServeMux())); err != nil {
		t.Fatal(err)
	}
	if err := router.Mount(mustNew(t, "/api", http.NewServeMux())); err == nil {
		t.Error("expected error mounting a second module at /api")
	}
}
