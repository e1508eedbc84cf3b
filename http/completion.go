package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sagarc03/showroom"
)

// maxCompletionBody bounds the /gpt-search request body.
const maxCompletionBody = 1 << 20

// CompletionRequest is the /gpt-search request body.
type CompletionRequest struct {
	Input string `json:"input"`
}

func decodeCompletionRequest(r *http.Request) (CompletionRequest, error) {
	var req CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("decode completion request: %w: %w", showroom.ErrInvalidInput, err)
	}
	if req.Input == "" {
		return req, fmt.Errorf("completion request: %w", showroom.ErrInvalidInput)
	}
	return req, nil
}

func (h *Handler) handleCompletion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCompletionBody)

	req, err := decodeCompletionRequest(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	body, err := h.completer.Complete(r.Context(), req.Input)
	if err != nil {
		HandleError(w, err)
		return
	}

	writeRawJSON(w, http.StatusOK, body)
}
