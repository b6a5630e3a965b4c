package lyricsovh

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Transport error codes, named after the codes browsers' HTTP clients report.
const (
	CodeBadRequest  = "ERR_BAD_REQUEST"
	CodeBadResponse = "ERR_BAD_RESPONSE"
	CodeTimeout     = "ETIMEDOUT"
	CodeConnRefused = "ECONNREFUSED"
	CodeCanceled    = "ERR_CANCELED"
	CodeNetwork     = "ERR_NETWORK"
)

// StatusError is returned when the upstream answered with a non-2xx status.
type StatusError struct {
	Op            string
	StatusCode    int
	ServerMessage string // "message" (or "error") field of the response body, if any
	Code          string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// TransportError is returned when no usable response was received.
type TransportError struct {
	Op   string
	Code string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func statusCode(status int) string {
	if status >= 500 {
		return CodeBadResponse
	}
	return CodeBadRequest
}

func transportCode(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeConnRefused
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CodeTimeout
	}
	return CodeNetwork
}
