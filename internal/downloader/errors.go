package downloader

import (
	"errors"
	"fmt"
	"strings"

	"video-downloader/pkg/models"
)

// User-facing messages
const (
	MessageEmptyURL            = "enter a video link"
	MessageMalformedURL        = "enter a valid video link"
	MessageUnsupportedPlatform = "this platform is not supported yet"
	MessageBusy                = "a download is already in progress"
	MessageTimeout             = "request timed out, retry"
	MessageConnectionFailed    = "network connection failed, check settings"
	MessageNetworkError        = "network error, check your connection"
	MessageDownloadFailed      = "download failed, please retry"
	MessageDownloadSucceeded   = "video downloaded, save to media library?"
	MessageNothingToSave       = "no video to save"
	MessageFetchFailed         = "video download failed, please retry"
	MessagePermissionDenied    = "grant media-library permission in settings"
	MessageSaveFailed          = "save failed, please retry"
	MessageSaved               = "saved to media library"
)

// ErrBusy is returned by Submit while another submit is in flight
var ErrBusy = errors.New("download already in progress")

// ValidationReason names the input check that failed
type ValidationReason string

const (
	ReasonEmpty               ValidationReason = "empty"
	ReasonMalformed           ValidationReason = "malformed"
	ReasonUnsupportedPlatform ValidationReason = "unsupported-platform"
)

// ValidationError is returned before any network activity when the input is rejected
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid video url: %s", e.Reason)
}

// Message returns the text shown to the user
func (e *ValidationError) Message() string {
	switch e.Reason {
	case ReasonEmpty:
		return MessageEmptyURL
	case ReasonMalformed:
		return MessageMalformedURL
	default:
		return MessageUnsupportedPlatform
	}
}

// PreconditionError is returned when saving without a successful outcome
type PreconditionError struct{}

func (e *PreconditionError) Error() string {
	return "no successful download to save"
}

// SaveStage names the step of a media library save that failed
type SaveStage string

const (
	StageFetch SaveStage = "fetch"
	StageStore SaveStage = "store"
)

// SaveError reports a failed media library save
type SaveError struct {
	Stage            SaveStage
	PermissionDenied bool
	Err              error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save video (%s): %v", e.Stage, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// Message returns the text shown to the user
func (e *SaveError) Message() string {
	switch {
	case e.Stage == StageFetch:
		return MessageFetchFailed
	case e.PermissionDenied:
		return MessagePermissionDenied
	default:
		return MessageSaveFailed
	}
}

// TransportMessage maps raw transport error text onto a user-facing message
func TransportMessage(detail string) string {
	lower := strings.ToLower(detail)
	switch {
	case strings.Contains(lower, "timeout"):
		return MessageTimeout
	case strings.Contains(lower, "fail"):
		return MessageConnectionFailed
	default:
		return MessageNetworkError
	}
}

// FailureMessage returns the user-facing message for err
func FailureMessage(err error) string {
	var validationErr *ValidationError
	var transportErr *models.TransportError
	var saveErr *SaveError
	var preconditionErr *PreconditionError

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message()
	case errors.Is(err, ErrBusy):
		return MessageBusy
	case errors.As(err, &transportErr):
		return TransportMessage(transportErr.Detail)
	case errors.As(err, &saveErr):
		return saveErr.Message()
	case errors.As(err, &preconditionErr):
		return MessageNothingToSave
	default:
		return MessageNetworkError
	}
}
