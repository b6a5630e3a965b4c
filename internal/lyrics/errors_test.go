package lyrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gndm/lyricsearch/internal/lyricsovh"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
		wantStatus  int // 0 means absent
		wantCode    string
	}{
		{
			name:        "status error with server message",
			err:         &lyricsovh.StatusError{StatusCode: 429, ServerMessage: "slow down", Code: lyricsovh.CodeBadRequest},
			wantMessage: "slow down",
			wantStatus:  429,
			wantCode:    lyricsovh.CodeBadRequest,
		},
		{
			name:        "status error falls back to transport message",
			err:         &lyricsovh.StatusError{StatusCode: 503, Code: lyricsovh.CodeBadResponse},
			wantMessage: "request failed with status code 503",
			wantStatus:  503,
			wantCode:    lyricsovh.CodeBadResponse,
		},
		{
			name:        "wrapped status error",
			err:         fmt.Errorf("outer: %w", &lyricsovh.StatusError{StatusCode: 404, Code: lyricsovh.CodeBadRequest}),
			wantMessage: "request failed with status code 404",
			wantStatus:  404,
			wantCode:    lyricsovh.CodeBadRequest,
		},
		{
			name:        "transport error without response",
			err:         &lyricsovh.TransportError{Op: "suggest", Code: lyricsovh.CodeTimeout, Err: context.DeadlineExceeded},
			wantMessage: "suggest: context deadline exceeded",
			wantCode:    lyricsovh.CodeTimeout,
		},
		{
			name:        "generic error",
			err:         errors.New("No lyrics found"),
			wantMessage: "No lyrics found",
			wantCode:    CodeUnknown,
		},
		{
			name:        "generic error without message",
			err:         errors.New(""),
			wantMessage: "default",
			wantCode:    CodeUnknown,
		},
		{
			name:        "no error value",
			err:         nil,
			wantMessage: "default",
			wantCode:    CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.err, "default")
			require.NotNil(t, got)
			assert.Equal(t, tt.wantMessage, got.Message)
			assert.Equal(t, tt.wantCode, got.Code)
			if tt.wantStatus == 0 {
				assert.Nil(t, got.Status)
			} else {
				require.NotNil(t, got.Status)
				assert.Equal(t, tt.wantStatus, *got.Status)
			}
		})
	}
}

func TestNormalize_AlreadyNormalized(t *testing.T) {
	status := 404
	orig := &Error{Message: "gone", Status: &status, Code: lyricsovh.CodeBadRequest}
	assert.Same(t, orig, Normalize(orig, "default"))
}

func TestNormalize_KeepsCause(t *testing.T) {
	statusErr := &lyricsovh.StatusError{StatusCode: 429, Code: lyricsovh.CodeBadRequest}
	got := Normalize(fmt.Errorf("suggest: %w", statusErr), "default")

	var unwrapped *lyricsovh.StatusError
	require.ErrorAs(t, got, &unwrapped)
	assert.Same(t, statusErr, unwrapped)

	assert.ErrorIs(t, Normalize(ErrEmptyQuery, "default"), ErrEmptyQuery)
	assert.ErrorIs(t, Normalize(context.Canceled, "default"), context.Canceled)
}

func TestUserMessage(t *testing.T) {
	withStatus := func(s int) *Error { return &Error{Message: "raw", Status: &s} }

	assert.Equal(t, "No results found. Try a different search term.", UserMessage(withStatus(404)))
	assert.Equal(t, "Too many requests. Please wait a moment and try again.", UserMessage(withStatus(429)))
	assert.Equal(t, "Server error. Please try again later.", UserMessage(withStatus(502)))
	assert.Equal(t, "raw", UserMessage(withStatus(400)))
	assert.Equal(t, "raw", UserMessage(&Error{Message: "raw"}))
	assert.Equal(t, "An unexpected error occurred", UserMessage(&Error{}))
	assert.Equal(t, "An unexpected error occurred", UserMessage(nil))
}
