package downloader

import (
	"video-downloader/pkg/models"
)

// Result is what the host shows after a submit
type Result struct {
	Title   string
	Message string
	Success bool
	CanSave bool
}

// Present turns the return values of Submit into a Result
func Present(outcome *models.DownloadOutcome, err error) Result {
	if err != nil {
		return Result{Title: "download failed", Message: FailureMessage(err)}
	}

	if outcome.Success {
		return Result{
			Title:   "download succeeded",
			Message: MessageDownloadSucceeded,
			Success: true,
			CanSave: outcome.Saveable(),
		}
	}

	message := outcome.Message
	if message == "" {
		message = MessageDownloadFailed
	}
	return Result{Title: "download failed", Message: message}
}
