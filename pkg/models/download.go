// Package models defines the data structures used throughout the application
package models

import (
	"time"
)

// Quality represents the requested video quality
type Quality string

const (
	QualityBest   Quality = "best"
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
)

// UnknownValue is used for outcome fields the remote service left out
const UnknownValue = "unknown"

// DisplayTimeLayout is the layout used to show when a history entry was recorded
const DisplayTimeLayout = "2006-01-02 15:04"

// QualityFromIndex maps a quality picker index onto a Quality.
// Indexes outside the picker fall back to QualityBest.
func QualityFromIndex(index int) Quality {
	switch index {
	case 0:
		return QualityBest
	case 1:
		return QualityHigh
	case 2:
		return QualityMedium
	default:
		return QualityBest
	}
}

// DownloadRequest is the body sent to the remote download endpoint
type DownloadRequest struct {
	URL             string  `json:"url"`
	RemoveWatermark bool    `json:"remove_watermark"`
	Quality         Quality `json:"quality"`
}

// DownloadOutcome is the result of one completed remote download call
type DownloadOutcome struct {
	Success   bool     `json:"success"`
	Filename  string   `json:"filename,omitempty"`
	Platform  string   `json:"platform,omitempty"`
	VideoURL  string   `json:"video_url,omitempty"`
	FileSize  *int64   `json:"file_size,omitempty"`
	Duration  *float64 `json:"duration,omitempty"`
	Message   string   `json:"message,omitempty"`
	AttemptID string   `json:"-"`
}

// Normalize fills in defaults for fields the remote service omitted and drops
// values that cannot be valid.
func (o *DownloadOutcome) Normalize() {
	if o.Filename == "" {
		o.Filename = UnknownValue
	}
	if o.Platform == "" {
		o.Platform = UnknownValue
	}
	if o.FileSize != nil && *o.FileSize < 0 {
		o.FileSize = nil
	}
	if o.Duration != nil && *o.Duration < 0 {
		o.Duration = nil
	}
	if !o.Success {
		o.VideoURL = ""
	}
}

// Saveable reports whether the outcome points at a video that can be fetched
func (o *DownloadOutcome) Saveable() bool {
	return o != nil && o.Success && o.VideoURL != ""
}

// HistoryEntry is a durable record of one past download attempt
type HistoryEntry struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Platform   string    `json:"platform"`
	URL        string    `json:"url"`
	RecordedAt time.Time `json:"recorded_at"`
	Success    bool      `json:"success"`
	FileSize   *int64    `json:"file_size,omitempty"`
	Duration   *float64  `json:"duration,omitempty"`
}

// NewHistoryEntry derives a history entry from an outcome. The entry copies
// every value it needs so it never refers back to the outcome.
func NewHistoryEntry(id int64, outcome *DownloadOutcome, recordedAt time.Time) HistoryEntry {
	entry := HistoryEntry{
		ID:         id,
		Title:      outcome.Filename,
		Platform:   outcome.Platform,
		URL:        outcome.VideoURL,
		RecordedAt: recordedAt,
		Success:    outcome.Success,
	}
	if entry.Title == "" {
		entry.Title = UnknownValue
	}
	if entry.Platform == "" {
		entry.Platform = UnknownValue
	}
	if outcome.FileSize != nil {
		size := *outcome.FileSize
		entry.FileSize = &size
	}
	if outcome.Duration != nil {
		duration := *outcome.Duration
		entry.Duration = &duration
	}
	return entry
}

// FormattedTime returns RecordedAt in the display layout
func (e HistoryEntry) FormattedTime() string {
	return e.RecordedAt.Format(DisplayTimeLayout)
}
