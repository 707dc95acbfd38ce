package history

import (
	"encoding/json"
	"fmt"
	"time"

	"video-downloader/pkg/models"
)

const (
	historyVersion = 1
	historyMagic   = "VIDEO_DOWNLOAD_HISTORY"
)

// jsonHeader carries metadata used to reject foreign or outdated payloads
type jsonHeader struct {
	Version int    `json:"version"`
	Magic   string `json:"magic"`
	Created string `json:"created"`
}

type jsonHistory struct {
	Header jsonHeader            `json:"header"`
	Items  []models.HistoryEntry `json:"items"`
}

func (hdr *jsonHeader) validate() error {
	if hdr.Version != historyVersion {
		return fmt.Errorf("unsupported version: %d", hdr.Version)
	}
	if hdr.Magic != historyMagic {
		return fmt.Errorf("invalid magic: %s", hdr.Magic)
	}
	return nil
}

func decodeEntries(data []byte) ([]models.HistoryEntry, error) {
	var history jsonHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	if err := history.Header.validate(); err != nil {
		return nil, fmt.Errorf("invalid history header: %w", err)
	}

	seen := make(map[int64]struct{}, len(history.Items))
	for _, item := range history.Items {
		if _, exists := seen[item.ID]; exists {
			return nil, fmt.Errorf("duplicate entry id: %d", item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	return history.Items, nil
}

func encodeEntries(entries []models.HistoryEntry, created time.Time) ([]byte, error) {
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	history := jsonHistory{
		Header: jsonHeader{
			Version: historyVersion,
			Magic:   historyMagic,
			Created: created.Format(time.RFC3339),
		},
		Items: entries,
	}

	data, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	return data, nil
}
