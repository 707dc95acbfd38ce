package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"video-downloader/internal/videoapi"
)

// TempFile is a fetched video waiting to be handed to the media library.
// The caller removes it with Cleanup.
type TempFile struct {
	Path string
	Size int64
}

// Cleanup removes the temporary file
func (f *TempFile) Cleanup() {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove temporary file", "path", f.Path, "error", err)
	}
}

// TempFilePattern names the temporary files Fetch creates
const TempFilePattern = "video-*.tmp"

// Fetcher downloads remote files into a temporary directory
type Fetcher struct {
	client  HTTPClient
	tempDir string
	logger  *slog.Logger
}

// NewFetcher creates a fetcher writing into tempDir ("" uses os.TempDir)
func NewFetcher(client HTTPClient, tempDir string) *Fetcher {
	return &Fetcher{
		client:  client,
		tempDir: tempDir,
		logger:  slog.Default(),
	}
}

// Fetch downloads url into a new temporary file. Failures to reach the
// server are returned as *models.TransportError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*TempFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, videoapi.NewTransportError("failed to start download", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	file, err := os.CreateTemp(f.tempDir, TempFilePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmp := &TempFile{Path: file.Name()}

	progress := &progressWriter{total: resp.ContentLength, logger: f.logger, url: url}
	written, err := io.Copy(io.MultiWriter(file, progress), resp.Body)
	closeErr := file.Close()
	if err != nil {
		tmp.Cleanup()
		return nil, videoapi.NewTransportError("failed to read from response", err)
	}
	if closeErr != nil {
		tmp.Cleanup()
		return nil, fmt.Errorf("failed to write temporary file: %w", closeErr)
	}

	tmp.Size = written
	f.logger.Info("Fetched video", "url", url, "path", tmp.Path, "bytes", written)
	return tmp, nil
}

type progressWriter struct {
	total      int64
	downloaded int64
	lastLog    time.Time
	logger     *slog.Logger
	url        string
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	pw.downloaded += int64(n)

	if time.Since(pw.lastLog) > 500*time.Millisecond {
		pw.lastLog = time.Now()
		if pw.total > 0 {
			pw.logger.Debug("Fetch progress",
				"url", pw.url,
				"progress", fmt.Sprintf("%.1f%%", float64(pw.downloaded)/float64(pw.total)*100))
		} else {
			pw.logger.Debug("Fetch progress", "url", pw.url, "bytes", pw.downloaded)
		}
	}
	return n, nil
}
