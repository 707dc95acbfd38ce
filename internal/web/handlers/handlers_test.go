package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"video-downloader/internal/database"
	"video-downloader/internal/downloader"
	dlmocks "video-downloader/internal/downloader/mocks"
	"video-downloader/internal/history"
	"video-downloader/internal/network"
	"video-downloader/internal/platform"
	"video-downloader/internal/transport"
	"video-downloader/internal/videoapi/mocks"
	"video-downloader/pkg/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testEnv struct {
	handlers *Handlers
	service  *dlmocks.MockServiceInterface
	fetcher  *dlmocks.MockFetcherInterface
	library  *dlmocks.MockMediaLibraryInterface
	api      *mocks.MockVideoService
	store    *history.Store
	db       *database.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	env := &testEnv{
		service: dlmocks.NewMockServiceInterface(ctrl),
		fetcher: dlmocks.NewMockFetcherInterface(ctrl),
		library: dlmocks.NewMockMediaLibraryInterface(ctrl),
		api:     mocks.NewMockVideoService(ctrl),
		store:   history.New(db),
		db:      db,
	}
	env.store.Load()

	registry := platform.Default()
	controller := downloader.New(env.service, env.fetcher, env.library, registry)
	catalog := platform.NewCatalog(env.api, registry.Names())
	monitor := network.NewMonitor(env.api, time.Minute)

	env.handlers = NewHandlers(controller, env.store, catalog, monitor)
	return env
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func successOutcome() *models.DownloadOutcome {
	size := int64(1048576)
	return &models.DownloadOutcome{
		Success:  true,
		Filename: "a.mp4",
		Platform: "抖音",
		VideoURL: "https://cdn/x.mp4",
		FileSize: &size,
	}
}

func TestNewHandlers(t *testing.T) {
	env := newTestEnv(t)
	require.NotNil(t, env.handlers)
	require.Equal(t, env.store, env.handlers.history)
	require.NotNil(t, env.handlers.logger)
}

func TestHandlers_Home(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	env.handlers.Home(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.Contains(t, w.Body.String(), "抖音")
	require.Contains(t, w.Body.String(), "no downloads yet")
}

func TestHandlers_HomeShowsNetworkLoss(t *testing.T) {
	env := newTestEnv(t)
	env.api.EXPECT().CheckHealth(gomock.Any()).Return(errors.New("failed to make request"))

	env.handlers.monitor.Check(context.Background())

	w := httptest.NewRecorder()
	env.handlers.Home(w, httptest.NewRequest("GET", "/", nil))
	require.Contains(t, w.Body.String(), `class="toast`)
	require.Contains(t, w.Body.String(), MessageNetworkLost)

	// The toast is shown once, the banner stays
	w = httptest.NewRecorder()
	env.handlers.Home(w, httptest.NewRequest("GET", "/", nil))
	require.NotContains(t, w.Body.String(), `class="toast`)
	require.Contains(t, w.Body.String(), MessageNetworkLost)
}

func TestHandlers_SubmitDownload(t *testing.T) {
	env := newTestEnv(t)

	env.service.EXPECT().
		Download(gomock.Any(), models.DownloadRequest{
			URL:             "https://www.douyin.com/video/123",
			RemoveWatermark: true,
			Quality:         models.QualityBest,
		}).
		Return(successOutcome(), nil)

	form := url.Values{}
	form.Set("url", "https://www.douyin.com/video/123")
	form.Set("remove_watermark", "true")
	form.Set("quality", "0")

	w := httptest.NewRecorder()
	env.handlers.SubmitDownload(w, postForm("/download", form))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, downloader.MessageDownloadSucceeded)
	require.Contains(t, body, `hx-post="/save"`)
	require.Contains(t, body, `hx-swap-oob="true"`)
	require.Contains(t, body, "a.mp4")

	entries := env.store.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "a.mp4", entries[0].Title)
	require.Equal(t, int64(1048576), *entries[0].FileSize)

	// Persisted through to storage
	reloaded := history.New(env.db).Load()
	require.Equal(t, entries, reloaded)
}

func TestHandlers_SubmitDownloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		message string
	}{
		{name: "empty", url: "", message: downloader.MessageEmptyURL},
		{name: "malformed", url: "not a url", message: downloader.MessageMalformedURL},
		{name: "unsupported", url: "https://vimeo.com/1", message: downloader.MessageUnsupportedPlatform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			form := url.Values{}
			form.Set("url", tt.url)

			w := httptest.NewRecorder()
			env.handlers.SubmitDownload(w, postForm("/download", form))

			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Contains(t, w.Body.String(), tt.message)
			require.Empty(t, env.store.Entries())
		})
	}
}

func TestHandlers_SubmitDownloadBusinessFailure(t *testing.T) {
	env := newTestEnv(t)
	env.service.EXPECT().Download(gomock.Any(), gomock.Any()).
		Return(&models.DownloadOutcome{Success: false, Message: "video is private"}, nil)

	form := url.Values{}
	form.Set("url", "https://www.kuaishou.com/short-video/1")

	w := httptest.NewRecorder()
	env.handlers.SubmitDownload(w, postForm("/download", form))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "video is private")
	require.NotContains(t, w.Body.String(), `hx-post="/save"`)
	require.Empty(t, env.store.Entries())
}

func TestHandlers_SubmitDownloadTransportError(t *testing.T) {
	env := newTestEnv(t)
	env.service.EXPECT().Download(gomock.Any(), gomock.Any()).
		Return(nil, &models.TransportError{Detail: "request timeout: deadline exceeded", Timeout: true})

	form := url.Values{}
	form.Set("url", "https://www.youtube.com/watch?v=1")

	w := httptest.NewRecorder()
	env.handlers.SubmitDownload(w, postForm("/download", form))

	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Contains(t, w.Body.String(), downloader.MessageTimeout)
}

func TestHandlers_SubmitDownloadBusy(t *testing.T) {
	env := newTestEnv(t)

	release := make(chan struct{})
	env.service.EXPECT().Download(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req models.DownloadRequest) (*models.DownloadOutcome, error) {
			<-release
			return successOutcome(), nil
		})

	form := url.Values{}
	form.Set("url", "https://www.douyin.com/video/1")

	first := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		env.handlers.SubmitDownload(first, postForm("/download", form))
		close(done)
	}()

	require.Eventually(t, func() bool {
		return env.handlers.controller.State() == downloader.StateRequesting
	}, time.Second, 5*time.Millisecond)

	second := httptest.NewRecorder()
	env.handlers.SubmitDownload(second, postForm("/download", form))
	require.Equal(t, http.StatusConflict, second.Code)
	require.Contains(t, second.Body.String(), downloader.MessageBusy)

	close(release)
	<-done
	require.Equal(t, http.StatusOK, first.Code)
	require.Len(t, env.store.Entries(), 1)
}

func TestHandlers_SaveVideo(t *testing.T) {
	t.Run("nothing to save", func(t *testing.T) {
		env := newTestEnv(t)

		w := httptest.NewRecorder()
		env.handlers.SaveVideo(w, httptest.NewRequest("POST", "/save", nil))

		require.Equal(t, http.StatusConflict, w.Code)
		require.Contains(t, w.Body.String(), downloader.MessageNothingToSave)
	})

	t.Run("saved", func(t *testing.T) {
		env := newTestEnv(t)
		env.service.EXPECT().Download(gomock.Any(), gomock.Any()).Return(successOutcome(), nil)

		_, err := env.handlers.controller.Submit(context.Background(), "https://www.douyin.com/video/1", false, 0)
		require.NoError(t, err)

		tmpPath := filepath.Join(t.TempDir(), "video.tmp")
		require.NoError(t, os.WriteFile(tmpPath, []byte("x"), 0o644))
		env.fetcher.EXPECT().Fetch(gomock.Any(), "https://cdn/x.mp4").
			Return(&transport.TempFile{Path: tmpPath, Size: 1}, nil)
		env.library.EXPECT().Save(tmpPath, "a.mp4").Return("/media/videos/a.mp4", nil)

		w := httptest.NewRecorder()
		env.handlers.SaveVideo(w, httptest.NewRequest("POST", "/save", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), downloader.MessageSaved)
	})

	t.Run("permission denied", func(t *testing.T) {
		env := newTestEnv(t)
		env.service.EXPECT().Download(gomock.Any(), gomock.Any()).Return(successOutcome(), nil)

		_, err := env.handlers.controller.Submit(context.Background(), "https://www.douyin.com/video/1", false, 0)
		require.NoError(t, err)

		tmpPath := filepath.Join(t.TempDir(), "video.tmp")
		require.NoError(t, os.WriteFile(tmpPath, []byte("x"), 0o644))
		env.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
			Return(&transport.TempFile{Path: tmpPath, Size: 1}, nil)
		env.library.EXPECT().Save(gomock.Any(), gomock.Any()).Return("", models.ErrPermissionDenied)

		w := httptest.NewRecorder()
		env.handlers.SaveVideo(w, httptest.NewRequest("POST", "/save", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Contains(t, w.Body.String(), downloader.MessagePermissionDenied)
	})
}

func TestHandlers_HistoryDetail(t *testing.T) {
	env := newTestEnv(t)
	entries := env.store.Record(successOutcome())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /history/{id}", env.handlers.HistoryDetail)

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{name: "known", path: "/history/" + jsonNumber(entries[0].ID), wantCode: http.StatusOK},
		{name: "unknown", path: "/history/1", wantCode: http.StatusNotFound},
		{name: "invalid", path: "/history/abc", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))
			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				require.Contains(t, w.Body.String(), "Title: a.mp4")
				require.Contains(t, w.Body.String(), "Size: 1.00 MB")
			}
		})
	}
}

func jsonNumber(id int64) string {
	data, _ := json.Marshal(id)
	return string(data)
}

func TestHandlers_ClearHistory(t *testing.T) {
	env := newTestEnv(t)
	env.store.Record(successOutcome())

	w := httptest.NewRecorder()
	env.handlers.ConfirmClearHistory(w, httptest.NewRequest("GET", "/history/clear", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"confirm":"yes"`)

	w = httptest.NewRecorder()
	env.handlers.ClearHistory(w, postForm("/history/clear", url.Values{}))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.store.Entries(), 1)

	form := url.Values{}
	form.Set("confirm", "yes")
	w = httptest.NewRecorder()
	env.handlers.ClearHistory(w, postForm("/history/clear", form))
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, env.store.Entries())
	require.Empty(t, history.New(env.db).Load())
}

func TestHandlers_Refresh(t *testing.T) {
	env := newTestEnv(t)
	env.api.EXPECT().SupportedPlatforms(gomock.Any()).Return([]string{"抖音", "Vimeo"}, nil)

	// Written by another store sharing the same storage
	history.New(env.db).Record(successOutcome())

	w := httptest.NewRecorder()
	env.handlers.Refresh(w, httptest.NewRequest("POST", "/refresh", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "a.mp4")
	require.Len(t, env.store.Entries(), 1)
	require.Equal(t, []string{"抖音", "Vimeo"}, env.handlers.catalog.Names())
}

func TestHandlers_JSONEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.store.Record(successOutcome())

	w := httptest.NewRecorder()
	env.handlers.GetHistory(w, httptest.NewRequest("GET", "/api/history", nil))
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var entries []models.HistoryEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)

	w = httptest.NewRecorder()
	env.handlers.GetPlatforms(w, httptest.NewRequest("GET", "/api/platforms", nil))
	var platforms struct {
		Platforms []string `json:"platforms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &platforms))
	require.Contains(t, platforms.Platforms, "抖音")

	w = httptest.NewRecorder()
	env.handlers.GetStatus(w, httptest.NewRequest("GET", "/api/status", nil))
	var status struct {
		State        string `json:"state"`
		Reachable    bool   `json:"reachable"`
		HistoryCount int    `json:"history_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.Equal(t, "idle", status.State)
	require.True(t, status.Reachable)
	require.Equal(t, 1, status.HistoryCount)
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "on", "1", "YES"} {
		require.True(t, parseBool(v), v)
	}
	for _, v := range []string{"", "false", "off", "0"} {
		require.False(t, parseBool(v), v)
	}
}
