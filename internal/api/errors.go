package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrDecode marks a 2xx response whose body could not be decoded.
var ErrDecode = errors.New("malformed response body")

// StatusError is a non-2xx backend response. Message carries the
// server-supplied message field when the body had one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Code)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// UserMessage maps a gateway error to the single message shown to the
// user: the server's own message when present, a generic fallback
// otherwise.
func UserMessage(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
