package templates

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"video-downloader/internal/downloader"
	"video-downloader/pkg/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestHome(t *testing.T) {
	entries := []models.HistoryEntry{
		{ID: 2, Title: "<b>clip</b>", Platform: "抖音", RecordedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)},
	}

	html := render(t, Base("Video Downloader", Home(HomeData{
		Platforms: []string{"抖音", "快手"},
		Entries:   entries,
		Reachable: true,
	})))

	require.Contains(t, html, "<title>Video Downloader</title>")
	require.Contains(t, html, `hx-post="/download"`)
	require.Contains(t, html, "抖音, 快手")
	require.Contains(t, html, `hx-get="/history/2"`)
	require.Contains(t, html, "&lt;b&gt;clip&lt;/b&gt;")
	require.NotContains(t, html, "<b>clip</b>")
	require.Contains(t, html, "2024-05-01 09:30")
	require.NotContains(t, html, "network connection lost")
}

func TestHome_Empty(t *testing.T) {
	html := render(t, Home(HomeData{Reachable: false}))
	require.Contains(t, html, "no downloads yet")
	require.Contains(t, html, "network connection lost")
}

func TestResultModal(t *testing.T) {
	html := render(t, ResultModal(downloader.Result{Title: "download succeeded", Message: "ok", Success: true, CanSave: true}))
	require.Contains(t, html, `hx-post="/save"`)

	html = render(t, ResultModal(downloader.Result{Title: "download failed", Message: "nope"}))
	require.NotContains(t, html, `hx-post="/save"`)
	require.Contains(t, html, "nope")
}

func TestHistoryList_OOB(t *testing.T) {
	html := render(t, HistoryList(nil, true))
	require.Contains(t, html, `hx-swap-oob="true"`)
}

func TestToast(t *testing.T) {
	require.Contains(t, render(t, Toast("saved", true)), "bg-green-600")
	require.Contains(t, render(t, Toast("failed", false)), "bg-red-600")
}

func TestConfirmClear(t *testing.T) {
	require.Contains(t, render(t, ConfirmClear()), `"confirm":"yes"`)
}

func TestHistoryDetail(t *testing.T) {
	html := render(t, HistoryDetail(models.HistoryEntry{ID: 7}, "Title: a\nPlatform: b"))
	require.Contains(t, html, `data-entry="7"`)
	require.Contains(t, html, "Title: a\nPlatform: b")
}
