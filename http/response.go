package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/showroom"
	"github.com/sagarc03/showroom/completion"
)

// Messages used in JSON error bodies.
const (
	MsgInputRequired = "Input is required"
	MsgNotFound      = "Not found"
	MsgInternal      = "Internal server error"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type
func HandleError(w http.ResponseWriter, err error) {
	if errors.Is(err, showroom.ErrNotFound) {
		slog.Debug("request error", "error", err)
		WriteError(w, http.StatusNotFound, MsgNotFound)
		return
	}

	if errors.Is(err, showroom.ErrInvalidInput) {
		slog.Debug("request error", "error", err)
		WriteError(w, http.StatusBadRequest, MsgInputRequired)
		return
	}

	var upErr *completion.UpstreamError
	if errors.As(err, &upErr) {
		slog.Warn("completion upstream error", "status", upErr.Status, "error", upErr.Message)
		WriteError(w, upErr.Status, upErr.Message)
		return
	}

	if errors.Is(err, showroom.ErrInternal) {
		slog.Error("internal error", "error", err)
		WriteError(w, http.StatusInternalServerError, MsgInternal)
		return
	}

	// Default internal error
	slog.Error("request error", "error", err)
	WriteError(w, http.StatusInternalServerError, MsgInternal)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

// writeRawJSON writes an already encoded JSON body.
func writeRawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		slog.Debug("failed to write response", "error", err)
	}
}
