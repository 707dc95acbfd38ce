package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Match(t *testing.T) {
	registry := Default()

	tests := []struct {
		name     string
		host     string
		wantName string
		wantOK   bool
	}{
		{name: "www subdomain", host: "www.douyin.com", wantName: "抖音", wantOK: true},
		{name: "bare domain", host: "bilibili.com", wantName: "B站", wantOK: true},
		{name: "uppercase host", host: "WWW.YOUTUBE.COM", wantName: "YouTube", wantOK: true},
		{name: "mobile subdomain", host: "v.kuaishou.com", wantName: "快手", wantOK: true},
		{name: "substring over-match is preserved", host: "kuaishou.com.example.org", wantName: "快手", wantOK: true},
		{name: "unsupported host", host: "vimeo.com", wantOK: false},
		{name: "empty host", host: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := registry.Match(tt.host)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.wantName, p.Name)
			}
		})
	}
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	registry := NewRegistry([]Platform{
		{Domain: "video.com", Name: "first"},
		{Domain: "shortvideo.com", Name: "second"},
	})

	p, ok := registry.Match("www.shortvideo.com")
	require.True(t, ok)
	require.Equal(t, "first", p.Name)
}

func TestRegistry_DisplayName(t *testing.T) {
	registry := Default()

	require.Equal(t, "抖音", registry.DisplayName("https://www.douyin.com/video/123"))
	require.Equal(t, "TikTok", registry.DisplayName("https://www.tiktok.com/@user/video/1"))
	require.Equal(t, UnknownName, registry.DisplayName("https://example.com/video"))
	require.Equal(t, UnknownName, registry.DisplayName("://bad"))
}

func TestRegistry_Names(t *testing.T) {
	names := Default().Names()
	require.Len(t, names, len(DefaultPlatforms))
	require.Equal(t, "抖音", names[0])
	require.Equal(t, "西瓜视频", names[len(names)-1])
}

type stubSource struct {
	names []string
	err   error
}

func (s *stubSource) SupportedPlatforms(ctx context.Context) ([]string, error) {
	return s.names, s.err
}

func TestCatalog_Refresh(t *testing.T) {
	t.Run("replaces list on success", func(t *testing.T) {
		catalog := NewCatalog(&stubSource{names: []string{"抖音", "快手"}}, Default().Names())
		catalog.Refresh(context.Background())
		require.Equal(t, []string{"抖音", "快手"}, catalog.Names())
	})

	t.Run("keeps stale list on error", func(t *testing.T) {
		catalog := NewCatalog(&stubSource{err: errors.New("connection refused")}, []string{"抖音"})
		catalog.Refresh(context.Background())
		require.Equal(t, []string{"抖音"}, catalog.Names())
	})

	t.Run("keeps stale list when response has no list", func(t *testing.T) {
		catalog := NewCatalog(&stubSource{}, []string{"抖音"})
		catalog.Refresh(context.Background())
		require.Equal(t, []string{"抖音"}, catalog.Names())
	})
}

func TestCatalog_NamesIsACopy(t *testing.T) {
	catalog := NewCatalog(&stubSource{}, []string{"抖音"})
	names := catalog.Names()
	names[0] = "mutated"
	require.Equal(t, []string{"抖音"}, catalog.Names())
}
