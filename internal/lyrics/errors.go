package lyrics

import (
	"errors"
	"net/http"

	"github.com/gndm/lyricsearch/internal/lyricsovh"
)

// CodeUnknown marks failures that carry no transport information.
const CodeUnknown = "UNKNOWN_ERROR"

// ErrEmptyQuery is returned when a search term is blank.
var ErrEmptyQuery = errors.New("please enter a search term")

// Error is the only error shape returned by Gateway methods.
type Error struct {
	Message string `json:"message"`
	Status  *int   `json:"status,omitempty"`
	Code    string `json:"code,omitempty"`

	cause error
}

func (e *Error) Error() string { return e.Message }

// Unwrap returns the failure the Error was normalized from, if any.
func (e *Error) Unwrap() error { return e.cause }

// StatusCode returns the upstream HTTP status, or 0 when there is none.
func (e *Error) StatusCode() int {
	if e.Status == nil {
		return 0
	}
	return *e.Status
}

// Normalize maps any failure to an *Error. defaultMsg is used when the failure
// does not carry a message of its own.
func Normalize(err error, defaultMsg string) *Error {
	if err == nil {
		return &Error{Message: defaultMsg, Code: CodeUnknown}
	}

	var normalized *Error
	if errors.As(err, &normalized) {
		return normalized
	}

	var statusErr *lyricsovh.StatusError
	if errors.As(err, &statusErr) {
		status := statusErr.StatusCode
		return &Error{
			Message: firstNonEmpty(statusErr.ServerMessage, statusErr.Error(), defaultMsg),
			Status:  &status,
			Code:    statusErr.Code,
			cause:   err,
		}
	}

	var transportErr *lyricsovh.TransportError
	if errors.As(err, &transportErr) {
		return &Error{
			Message: firstNonEmpty(transportErr.Error(), defaultMsg),
			Code:    transportErr.Code,
			cause:   err,
		}
	}

	return &Error{Message: firstNonEmpty(err.Error(), defaultMsg), Code: CodeUnknown, cause: err}
}

// UserMessage picks the text shown to a person for a failed request.
func UserMessage(e *Error) string {
	if e == nil {
		return "An unexpected error occurred"
	}
	switch status := e.StatusCode(); {
	case status == http.StatusNotFound:
		return "No results found. Try a different search term."
	case status == http.StatusTooManyRequests:
		return "Too many requests. Please wait a moment and try again."
	case status >= 500:
		return "Server error. Please try again later."
	case e.Message != "":
		return e.Message
	}
	return "An unexpected error occurred"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
