package api

import (
	"fmt"
	"net/http"

	"github.com/deckpilot/deckpilot/internal/common"
)

// APIError is a server-reported business error carrying the parsed error
// envelope. It unwraps to the matching sentinel in common so callers can
// branch with errors.Is without inspecting codes.
type APIError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return fmt.Sprintf("request failed: %s", e.Code)
	}
	return fmt.Sprintf("request failed with status %d", e.HTTPStatus)
}

func (e *APIError) Unwrap() error {
	switch e.HTTPStatus {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusNotFound:
		return common.ErrNotFound
	default:
		return nil
	}
}
