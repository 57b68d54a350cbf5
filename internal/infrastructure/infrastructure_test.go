package infrastructure_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JaimeStill/elib/internal/auth"
	"github.com/JaimeStill/elib/internal/config"
	"github.com/JaimeStill/elib/internal/infrastructure"
	"github.com/JaimeStill/elib/pkg/database"
	"github.com/JaimeStill/elib/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func validConfig() *config.Config {
	return &config.Config{
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "elib",
			User:            "elib",
			Password:        "elib",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "books",
			ConnectionString: azuriteConnString,
		},
		Auth: auth.Config{
			Secret:   "0123456789abcdef0123456789abcdef",
			Issuer:   "elib",
			TokenTTL: "1h",
		},
		Version: "0.1.0",
	}
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil {
		t.Error("Lifecycle is nil")
	}
	if infra.Logger == nil {
		t.Error("Logger is nil")
	}
	if infra.Database == nil {
		t.Error("Database is nil")
	}
	if infra.Storage == nil {
		t.Error("Storage is nil")
	}
	if infra.Tokens == nil {
		t.Error("Tokens is nil")
	}
	if infra.Database.Ready() {
		t.Error("database should not be ready before Start")
	}
}

func TestNewStorageURLs(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	url := infra.Storage.URL("books/cover.png")
	if !strings.HasSuffix(url, "/books/books/cover.png") {
		t.Errorf("url: got %s", url)
	}

	key, err := infra.Storage.Key(url)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if key != "books/cover.png" {
		t.Errorf("key: got %s", key)
	}
}

func TestNewTokensRoundTrip(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	token, _, err := infra.Tokens.Issue(auth.Principal{Email: "reader@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	p, err := infra.Tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if p.Email != "reader@example.com" {
		t.Errorf("email: got %s", p.Email)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantDebug bool
		wantJSON  bool
	}{
		{"text info", config.LogConfig{Level: "info", Format: "text"}, false, false},
		{"json debug", config.LogConfig{Level: "debug", Format: "json"}, true, true},
		{"zero value", config.LogConfig{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := infrastructure.NewLogger(&tt.cfg, &buf)

			logger.Debug("probe", "book", "dune")
			if got := buf.Len() > 0; got != tt.wantDebug {
				t.Fatalf("debug emitted: got %v, want %v", got, tt.wantDebug)
			}

			buf.Reset()
			logger.Info("book created", "title", "Dune")
			line := buf.Bytes()

			var entry map[string]any
			isJSON := json.Unmarshal(line, &entry) == nil
			if isJSON != tt.wantJSON {
				t.Errorf("json output: got %v, want %v (%s)", isJSON, tt.wantJSON, line)
			}
			if !bytes.Contains(line, []byte("Dune")) {
				t.Errorf("missing attribute in %s", line)
			}
		})
	}
}
