// Package media saves fetched videos into the user's media library directory.
package media

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"video-downloader/pkg/models"
)

// Library is a directory backed media library
type Library struct {
	root   string
	logger *slog.Logger
}

// NewLibrary creates a library rooted at root
func NewLibrary(root string) *Library {
	return &Library{
		root:   root,
		logger: slog.Default(),
	}
}

// Root returns the library directory
func (l *Library) Root() string {
	return l.root
}

// Save copies the file at srcPath into the library under a unique name
// derived from filename. It returns the final path. A refused write returns
// an error wrapping models.ErrPermissionDenied.
func (l *Library) Save(srcPath, filename string) (string, error) {
	if err := os.MkdirAll(l.root, 0o755); err != nil {
		return "", l.wrap("failed to create media library", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to open fetched video: %w", err)
	}
	defer src.Close()

	finalPath, dst, err := l.createUnique(sanitizeFilename(filename))
	if err != nil {
		return "", l.wrap("failed to create media file", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(finalPath)
		return "", l.wrap("failed to write media file", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(finalPath)
		return "", l.wrap("failed to write media file", err)
	}

	l.logger.Info("Saved video to media library", "path", finalPath)
	return finalPath, nil
}

func (l *Library) wrap(action string, err error) error {
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%s: %w: %v", action, models.ErrPermissionDenied, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// createUnique opens a new file, appending (1), (2), ... before the
// extension until the name is free.
func (l *Library) createUnique(filename string) (string, *os.File, error) {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	for i := 0; i < 1000; i++ {
		name := filename
		if i > 0 {
			name = fmt.Sprintf("%s (%d)%s", base, i, ext)
		}
		path := filepath.Join(l.root, name)

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return path, f, nil
		}
		if !os.IsExist(err) {
			return "", nil, err
		}
	}

	return "", nil, fmt.Errorf("no free filename for %s", filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	switch name {
	case "", ".", "..", "/", models.UnknownValue:
		name = "video"
	}
	if filepath.Ext(name) == "" {
		name += ".mp4"
	}
	return name
}
