// Package handlers provides the response envelope shared by every HTTP handler.
//
// Successful responses carry a status code, payload, and human-readable message.
// Failures are rendered as a single JSON object with status and message; stack
// traces and wrapped internals never reach the client beyond the error text.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the success envelope written by Respond.
type Response struct {
	StatusCode int    `json:"status_code"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse is the body written by RespondError.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Respond writes data wrapped in the success envelope.
func Respond(w http.ResponseWriter, status int, data any, message string) {
	RespondJSON(w, status, Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// RespondJSON writes data as a bare JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as an ErrorResponse.
// Server-side failures log at error level; client errors at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		message = err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", message)
	} else {
		logger.Warn("request rejected", "status", status, "error", message)
	}

	RespondJSON(w, status, ErrorResponse{
		Status:  status,
		Message: message,
	})
}
