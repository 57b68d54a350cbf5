package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/elib/pkg/handlers"
)

func TestRespond(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		data        any
		wantSuccess bool
		wantData    string
	}{
		{"created", http.StatusCreated, map[string]string{"title": "Dune"}, true, `{"title":"Dune"}`},
		{"empty list", http.StatusOK, []string{}, true, `[]`},
		{"nil data", http.StatusOK, nil, true, `null`},
		{"client error", http.StatusBadRequest, nil, false, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.Respond(rec, tt.status, tt.data, "done")

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content-type: got %s", ct)
			}

			var body struct {
				StatusCode int             `json:"status_code"`
				Data       json.RawMessage `json:"data"`
				Message    string          `json:"message"`
				Success    bool            `json:"success"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}

			if body.StatusCode != tt.status {
				t.Errorf("status_code: got %d", body.StatusCode)
			}
			if string(body.Data) != tt.wantData {
				t.Errorf("data: got %s, want %s", body.Data, tt.wantData)
			}
			if body.Message != "done" {
				t.Errorf("message: got %s", body.Message)
			}
			if body.Success != tt.wantSuccess {
				t.Errorf("success: got %v, want %v", body.Success, tt.wantSuccess)
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		err         error
		wantMessage string
		wantLevel   string
	}{
		{"client error", http.StatusNotFound, errors.New("book not found"), "book not found", "level=WARN"},
		{"server error", http.StatusInternalServerError, errors.New("upload failed"), "upload failed", "level=ERROR"},
		{"nil error", http.StatusUnauthorized, nil, "Unauthorized", "level=WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			rec := httptest.NewRecorder()
			handlers.RespondError(rec, logger, tt.status, tt.err)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}

			var body handlers.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.status || body.Message != tt.wantMessage {
				t.Errorf("body: got %+v", body)
			}
			if !strings.Contains(logs.String(), tt.wantLevel) {
				t.Errorf("log %q missing %s", logs.String(), tt.wantLevel)
			}
		})
	}
}
