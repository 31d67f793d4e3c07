package gateway

import (
	"errors"
	"fmt"
)

// genericFailure is surfaced when the server's error payload carries no
// usable message.
const genericFailure = "request failed, please try again"

var (
	// ErrSessionExpired is returned for any 401 response. The base client has
	// already cleared the local token and fired the unauthorized hook by the
	// time a caller sees it.
	ErrSessionExpired = errors.New("session expired")
)

// StatusError is a non-2xx response from the API, carrying the
// human-readable message from the server's error payload when one was
// present.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Code)
}

// apiErrorBody is the error payload shape the backend uses.
type apiErrorBody struct {
	Message string `json:"message"`
}
