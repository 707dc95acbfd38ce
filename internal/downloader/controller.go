// Package downloader drives a single video download request from input
// validation through the remote call to a presentable result.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"video-downloader/internal/config"
	"video-downloader/internal/platform"
	"video-downloader/pkg/models"
)

// State is a step of the download state machine
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateRequesting State = "requesting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Controller owns the lifecycle of one download request at a time.
// Succeeded and Failed are transient: every Submit returns to Idle.
type Controller struct {
	service   ServiceInterface
	fetcher   FetcherInterface
	library   MediaLibraryInterface
	platforms *platform.Registry
	timeout   time.Duration
	logger    *slog.Logger

	mu    sync.RWMutex
	state State
	last  *models.DownloadOutcome
}

// New creates a controller. platforms is used for input validation only.
func New(service ServiceInterface, fetcher FetcherInterface, library MediaLibraryInterface, platforms *platform.Registry) *Controller {
	return &Controller{
		service:   service,
		fetcher:   fetcher,
		library:   library,
		platforms: platforms,
		timeout:   config.DownloadTimeout,
		logger:    slog.Default(),
		state:     StateIdle,
	}
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// LastOutcome returns the most recent successful outcome, or nil
func (c *Controller) LastOutcome() *models.DownloadOutcome {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

func (c *Controller) transition(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.mu.Unlock()

	c.logger.Debug("Download state changed", "from", from, "to", to)
}

// Submit validates rawURL, sends one download request and waits for its
// outcome. Invalid input returns a *ValidationError without any network call.
// A submit while another is in flight returns ErrBusy. A call that cannot
// complete returns a *models.TransportError. A negative result from the
// service is returned as an outcome with Success false, not as an error.
func (c *Controller) Submit(ctx context.Context, rawURL string, removeWatermark bool, qualityIndex int) (*models.DownloadOutcome, error) {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		c.logger.Warn("Rejected download while another is in progress", "url", rawURL)
		return nil, ErrBusy
	}
	c.state = StateValidating
	c.mu.Unlock()

	req, err := c.Validate(rawURL, removeWatermark, qualityIndex)
	if err != nil {
		c.logger.Info("Rejected download input", "url", rawURL, "error", err)
		c.transition(StateIdle)
		return nil, err
	}

	c.transition(StateRequesting)
	defer c.transition(StateIdle)

	attemptID := newAttemptID()
	logger := c.logger.With("attempt_id", attemptID)
	logger.Info("Starting download",
		"url", req.URL,
		"remove_watermark", req.RemoveWatermark,
		"quality", req.Quality)

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	outcome, err := c.service.Download(requestCtx, req)
	if err != nil {
		c.transition(StateFailed)
		transportErr := asTransportError(err)
		logger.Error("Download request failed", "error", transportErr)
		return nil, transportErr
	}
	if outcome == nil {
		c.transition(StateFailed)
		return nil, &models.TransportError{Detail: "empty response from download service"}
	}

	outcome.AttemptID = attemptID
	if !outcome.Success {
		c.transition(StateFailed)
		logger.Warn("Download service reported failure", "message", outcome.Message)
		return outcome, nil
	}

	if outcome.Platform == "" || outcome.Platform == models.UnknownValue {
		outcome.Platform = c.platforms.DisplayName(req.URL)
	}

	c.mu.Lock()
	c.last = outcome
	c.mu.Unlock()
	c.transition(StateSucceeded)

	logger.Info("Download succeeded",
		"filename", outcome.Filename,
		"platform", outcome.Platform,
		"video_url", outcome.VideoURL)
	return outcome, nil
}

// Validate checks rawURL in order: non-empty after trimming, absolute URL
// with a host, supported platform host. The first failing check is reported.
func (c *Controller) Validate(rawURL string, removeWatermark bool, qualityIndex int) (models.DownloadRequest, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return models.DownloadRequest{}, &ValidationError{Reason: ReasonEmpty}
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || !parsed.IsAbs() {
		return models.DownloadRequest{}, &ValidationError{Reason: ReasonMalformed}
	}
	// Hierarchical URLs need a host; opaque ones such as mailto: do not
	if parsed.Opaque == "" && parsed.Hostname() == "" {
		return models.DownloadRequest{}, &ValidationError{Reason: ReasonMalformed}
	}

	if _, ok := c.platforms.Match(parsed.Hostname()); !ok {
		return models.DownloadRequest{}, &ValidationError{Reason: ReasonUnsupportedPlatform}
	}

	return models.DownloadRequest{
		URL:             trimmed,
		RemoveWatermark: removeWatermark,
		Quality:         models.QualityFromIndex(qualityIndex),
	}, nil
}

// SaveToMediaLibrary fetches the outcome's video and stores it in the media
// library, returning the saved path. Outcomes that did not succeed return a
// *PreconditionError before any network or library call.
func (c *Controller) SaveToMediaLibrary(ctx context.Context, outcome *models.DownloadOutcome) (string, error) {
	if !outcome.Saveable() {
		return "", &PreconditionError{}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tmp, err := c.fetcher.Fetch(fetchCtx, outcome.VideoURL)
	if err != nil {
		c.logger.Error("Failed to fetch video for saving", "video_url", outcome.VideoURL, "error", err)
		return "", &SaveError{Stage: StageFetch, Err: err}
	}
	defer tmp.Cleanup()

	path, err := c.library.Save(tmp.Path, outcome.Filename)
	if err != nil {
		saveErr := &SaveError{
			Stage:            StageStore,
			PermissionDenied: errors.Is(err, models.ErrPermissionDenied),
			Err:              err,
		}
		c.logger.Error("Failed to save video to media library",
			"filename", outcome.Filename,
			"permission_denied", saveErr.PermissionDenied,
			"error", err)
		return "", saveErr
	}

	return path, nil
}

func asTransportError(err error) *models.TransportError {
	var transportErr *models.TransportError
	if errors.As(err, &transportErr) {
		return transportErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &models.TransportError{Detail: fmt.Sprintf("request timeout: %v", err), Timeout: true}
	}
	return &models.TransportError{Detail: err.Error()}
}

func newAttemptID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("attempt-%d", time.Now().UnixNano())
	}
	return id.String()
}
