// Package cleanup removes temporary media files left behind by an earlier run
package cleanup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"video-downloader/internal/transport"
)

// Service sweeps a temporary directory for orphaned fetch files
type Service struct {
	tempDir string
	logger  *slog.Logger
	now     func() time.Time
}

// Stats summarizes one sweep
type Stats struct {
	Found        int
	Removed      int
	BytesFreed   int64
	SkippedFresh int
}

// NewService creates a cleanup service for tempDir ("" uses os.TempDir)
func NewService(tempDir string) *Service {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Service{
		tempDir: tempDir,
		logger:  slog.Default(),
		now:     time.Now,
	}
}

// SweepTempFiles removes fetch temp files older than maxAge. Younger files
// may belong to a save still in progress and are kept.
func (s *Service) SweepTempFiles(maxAge time.Duration) (*Stats, error) {
	matches, err := filepath.Glob(filepath.Join(s.tempDir, transport.TempFilePattern))
	if err != nil {
		return nil, fmt.Errorf("failed to list temporary files: %w", err)
	}

	stats := &Stats{Found: len(matches)}
	var failures []string

	for _, path := range matches {
		if !s.isPathSafe(path) {
			s.logger.Warn("Skipping file outside temp directory", "file", path)
			continue
		}

		info, err := os.Lstat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		if s.now().Sub(info.ModTime()) < maxAge {
			stats.SkippedFresh++
			continue
		}

		if err := os.Remove(path); err != nil {
			s.logger.Warn("Failed to remove orphaned temporary file", "file", path, "error", err)
			failures = append(failures, fmt.Sprintf("%s: %s", path, err.Error()))
			continue
		}

		stats.Removed++
		stats.BytesFreed += info.Size()
		s.logger.Info("Removed orphaned temporary file", "file", path, "size", info.Size())
	}

	if stats.Removed > 0 {
		s.logger.Info("Temporary file sweep completed",
			"removed", stats.Removed,
			"bytes_freed", stats.BytesFreed,
			"skipped_fresh", stats.SkippedFresh)
	}

	if len(failures) > 0 {
		return stats, fmt.Errorf("sweep completed with %d errors: %v", len(failures), failures)
	}

	return stats, nil
}

// isPathSafe checks that path sits directly inside the temp directory
func (s *Service) isPathSafe(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(s.tempDir)
	if err != nil {
		return false
	}
	return filepath.Dir(absPath) == absDir
}
