package api

import (
	"errors"
	"fmt"
)

// Error is the only error kind the gateway returns. StatusCode is 0 when
// the request never got a response (transport failure).
type Error struct {
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		if e.Err != nil {
			return "API error: " + e.Err.Error()
		}
		return "API error"
	}
	if e.Err != nil {
		return fmt.Sprintf("API error: %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
