package completion

import (
	"errors"
	"fmt"
)

// ErrUpstream is wrapped by every *UpstreamError.
var ErrUpstream = errors.New("upstream error")

// UnknownErrorMessage is used when the upstream error body carries no message.
const UnknownErrorMessage = "Unknown error"

// UpstreamError is a non-success response from the completion API.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}
