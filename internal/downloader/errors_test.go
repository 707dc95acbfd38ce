package downloader

import (
	"errors"
	"testing"

	"video-downloader/pkg/models"

	"github.com/stretchr/testify/require"
)

func TestTransportMessage(t *testing.T) {
	tests := []struct {
		detail string
		want   string
	}{
		{"request timeout: context deadline exceeded", MessageTimeout},
		{"request:fail timeout", MessageTimeout},
		{"Client.Timeout exceeded", MessageTimeout},
		{"request:fail", MessageConnectionFailed},
		{"API request failed with status 500", MessageConnectionFailed},
		{"connection reset", MessageNetworkError},
		{"", MessageNetworkError},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, TransportMessage(tt.detail), "detail %q", tt.detail)
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		reason  ValidationReason
		message string
	}{
		{ReasonEmpty, MessageEmptyURL},
		{ReasonMalformed, MessageMalformedURL},
		{ReasonUnsupportedPlatform, MessageUnsupportedPlatform},
	}

	for _, tt := range tests {
		err := &ValidationError{Reason: tt.reason}
		require.Equal(t, tt.message, err.Message())
		require.Contains(t, err.Error(), string(tt.reason))
		require.Equal(t, tt.message, FailureMessage(err))
	}
}

func TestFailureMessage_Unknown(t *testing.T) {
	require.Equal(t, MessageNetworkError, FailureMessage(errors.New("boom")))
}

func TestPresent_TransportError(t *testing.T) {
	result := Present(nil, &models.TransportError{Detail: "request timeout"})
	require.Equal(t, "download failed", result.Title)
	require.Equal(t, MessageTimeout, result.Message)
	require.False(t, result.Success)
	require.False(t, result.CanSave)
}
