package downloader

import (
	"context"

	"video-downloader/internal/transport"
	"video-downloader/pkg/models"
)

// ServiceInterface defines the remote download operation used by the controller
//
//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks
type ServiceInterface interface {
	Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadOutcome, error)
}

// FetcherInterface downloads video bytes into a temporary file
type FetcherInterface interface {
	Fetch(ctx context.Context, url string) (*transport.TempFile, error)
}

// MediaLibraryInterface stores a fetched video permanently
type MediaLibraryInterface interface {
	Save(srcPath, filename string) (string, error)
}
