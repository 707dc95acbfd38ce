// Package platform matches video URLs against the supported sites and keeps
// the display list of supported platforms.
package platform

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
)

// UnknownName is returned by DisplayName when no platform matches
const UnknownName = "unknown platform"

// Platform pairs a domain fragment with its display name
type Platform struct {
	Domain string
	Name   string
}

// DefaultPlatforms lists the supported sites in match order
var DefaultPlatforms = []Platform{
	{Domain: "douyin.com", Name: "抖音"},
	{Domain: "kuaishou.com", Name: "快手"},
	{Domain: "weibo.com", Name: "微博"},
	{Domain: "bilibili.com", Name: "B站"},
	{Domain: "youtube.com", Name: "YouTube"},
	{Domain: "instagram.com", Name: "Instagram"},
	{Domain: "tiktok.com", Name: "TikTok"},
	{Domain: "xiaohongshu.com", Name: "小红书"},
	{Domain: "ixigua.com", Name: "西瓜视频"},
}

// Registry is an immutable ordered list of platforms. Matching is substring
// containment on the lowercased host, first match wins, so a host such as
// "notkuaishou.com.evil" also matches "kuaishou.com".
type Registry struct {
	platforms []Platform
}

// NewRegistry creates a registry, keeping the given order
func NewRegistry(platforms []Platform) *Registry {
	list := make([]Platform, len(platforms))
	for i, p := range platforms {
		list[i] = Platform{Domain: strings.ToLower(p.Domain), Name: p.Name}
	}
	return &Registry{platforms: list}
}

// Default returns a registry over DefaultPlatforms
func Default() *Registry {
	return NewRegistry(DefaultPlatforms)
}

// Match returns the first platform whose domain is contained in host
func (r *Registry) Match(host string) (Platform, bool) {
	host = strings.ToLower(host)
	if host == "" {
		return Platform{}, false
	}

	for _, p := range r.platforms {
		if strings.Contains(host, p.Domain) {
			return p, true
		}
	}
	return Platform{}, false
}

// DisplayName returns the platform name for rawURL or UnknownName
func (r *Registry) DisplayName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return UnknownName
	}

	if p, ok := r.Match(parsed.Hostname()); ok {
		return p.Name
	}
	return UnknownName
}

// Names returns the display names in match order
func (r *Registry) Names() []string {
	names := make([]string, len(r.platforms))
	for i, p := range r.platforms {
		names[i] = p.Name
	}
	return names
}

// Source provides the remote list of supported platform names
type Source interface {
	SupportedPlatforms(ctx context.Context) ([]string, error)
}

// Catalog holds the display-only list of supported platforms. A failed
// refresh keeps the previous list.
type Catalog struct {
	mu     sync.RWMutex
	names  []string
	source Source
	logger *slog.Logger
}

// NewCatalog creates a catalog seeded with initial
func NewCatalog(source Source, initial []string) *Catalog {
	names := make([]string, len(initial))
	copy(names, initial)

	return &Catalog{
		names:  names,
		source: source,
		logger: slog.Default(),
	}
}

// Names returns the current display list
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Refresh replaces the list with the remote one. Errors are logged and ignored.
func (c *Catalog) Refresh(ctx context.Context) {
	names, err := c.source.SupportedPlatforms(ctx)
	if err != nil {
		c.logger.Warn("Failed to refresh supported platforms, keeping current list", "error", err)
		return
	}
	if names == nil {
		c.logger.Warn("Supported platforms response had no list, keeping current list")
		return
	}

	c.mu.Lock()
	c.names = names
	c.mu.Unlock()

	c.logger.Info("Refreshed supported platforms", "count", len(names))
}
