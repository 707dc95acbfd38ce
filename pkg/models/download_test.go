package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQuality_Constants(t *testing.T) {
	require.Equal(t, Quality("best"), QualityBest)
	require.Equal(t, Quality("high"), QualityHigh)
	require.Equal(t, Quality("medium"), QualityMedium)
}

func TestQualityFromIndex(t *testing.T) {
	tests := []struct {
		index int
		want  Quality
	}{
		{0, QualityBest},
		{1, QualityHigh},
		{2, QualityMedium},
		{3, QualityBest},
		{-1, QualityBest},
		{99, QualityBest},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, QualityFromIndex(tt.index), "index %d", tt.index)
	}
}

func TestDownloadRequest_JSON(t *testing.T) {
	req := DownloadRequest{
		URL:             "https://www.douyin.com/video/123",
		RemoveWatermark: true,
		Quality:         QualityFromIndex(0),
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)
	require.JSONEq(t, `{"url":"https://www.douyin.com/video/123","remove_watermark":true,"quality":"best"}`, string(data))
}

func TestDownloadOutcome_Normalize(t *testing.T) {
	t.Run("fills unknown defaults", func(t *testing.T) {
		outcome := &DownloadOutcome{Success: true, VideoURL: "https://cdn/x.mp4"}
		outcome.Normalize()
		require.Equal(t, UnknownValue, outcome.Filename)
		require.Equal(t, UnknownValue, outcome.Platform)
		require.Equal(t, "https://cdn/x.mp4", outcome.VideoURL)
	})

	t.Run("drops negative optional values", func(t *testing.T) {
		size := int64(-1)
		duration := -2.5
		outcome := &DownloadOutcome{Success: true, FileSize: &size, Duration: &duration}
		outcome.Normalize()
		require.Nil(t, outcome.FileSize)
		require.Nil(t, outcome.Duration)
	})

	t.Run("failed outcome carries no video url", func(t *testing.T) {
		outcome := &DownloadOutcome{Success: false, VideoURL: "https://cdn/x.mp4", Message: "nope"}
		outcome.Normalize()
		require.Empty(t, outcome.VideoURL)
		require.False(t, outcome.Saveable())
	})
}

func TestDownloadOutcome_Saveable(t *testing.T) {
	var nilOutcome *DownloadOutcome
	require.False(t, nilOutcome.Saveable())
	require.False(t, (&DownloadOutcome{Success: true}).Saveable())
	require.False(t, (&DownloadOutcome{Success: false, VideoURL: "https://cdn/x.mp4"}).Saveable())
	require.True(t, (&DownloadOutcome{Success: true, VideoURL: "https://cdn/x.mp4"}).Saveable())
}

func TestNewHistoryEntry(t *testing.T) {
	size := int64(1048576)
	outcome := &DownloadOutcome{
		Success:  true,
		Filename: "a.mp4",
		Platform: "抖音",
		VideoURL: "https://cdn/x.mp4",
		FileSize: &size,
	}
	at := time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC)

	entry := NewHistoryEntry(42, outcome, at)
	require.Equal(t, int64(42), entry.ID)
	require.Equal(t, "a.mp4", entry.Title)
	require.Equal(t, "抖音", entry.Platform)
	require.Equal(t, "https://cdn/x.mp4", entry.URL)
	require.True(t, entry.Success)
	require.NotNil(t, entry.FileSize)
	require.Equal(t, int64(1048576), *entry.FileSize)
	require.Nil(t, entry.Duration)
	require.Equal(t, "2024-03-05 09:07", entry.FormattedTime())

	// The entry must not share storage with the outcome
	*outcome.FileSize = 1
	require.Equal(t, int64(1048576), *entry.FileSize)
}

func TestNewHistoryEntry_Defaults(t *testing.T) {
	entry := NewHistoryEntry(1, &DownloadOutcome{Success: false}, time.Now())
	require.Equal(t, UnknownValue, entry.Title)
	require.Equal(t, UnknownValue, entry.Platform)
	require.False(t, entry.Success)
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
		{2048 * 1024 * 1024 * 1024, "2048.00 GB"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatFileSize(tt.bytes))
	}
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, UnknownValue, FormatDuration(0))
	require.Equal(t, "0:05", FormatDuration(5))
	require.Equal(t, "1:05", FormatDuration(65.9))
	require.Equal(t, "12:00", FormatDuration(720))
}

func TestTransportError(t *testing.T) {
	err := &TransportError{Detail: "request timeout", Timeout: true}
	require.Equal(t, "request timeout", err.Error())
}
