package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagarc03/showroom"
	"github.com/sagarc03/showroom/completion"
	showroomhttp "github.com/sagarc03/showroom/http"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "not found",
			err:      showroom.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Not found"}`,
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("list images cars/: %w", showroom.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Not found"}`,
		},
		{
			name:     "invalid input",
			err:      showroom.ErrInvalidInput,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Input is required"}`,
		},
		{
			name:     "upstream error keeps status and message",
			err:      fmt.Errorf("complete: %w", &completion.UpstreamError{Status: 429, Message: "Rate limit reached"}),
			wantCode: http.StatusTooManyRequests,
			wantBody: `{"error":"Rate limit reached"}`,
		},
		{
			name:     "wrapped internal error",
			err:      fmt.Errorf("decode response: %w: invalid JSON", showroom.ErrInternal),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Internal server error"}`,
		},
		{
			name:     "internal error hides cause",
			err:      errors.New("dial tcp: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			showroomhttp.HandleError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWriteError_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	showroomhttp.WriteError(rec, http.StatusBadRequest, "Input is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Input is required"}`, rec.Body.String())
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	err := showroomhttp.WriteJSON(rec, http.StatusOK, showroom.ImagesResponse{Images: []string{}})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"images":[]}`, rec.Body.String())
}
