// Package web provides the HTTP server and routing
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"video-downloader/internal/config"
	"video-downloader/internal/downloader"
	"video-downloader/internal/history"
	"video-downloader/internal/network"
	"video-downloader/internal/platform"
	"video-downloader/internal/web/handlers"
)

// Server represents the HTTP server
type Server struct {
	server   *http.Server
	handlers *handlers.Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, controller *downloader.Controller, store *history.Store, catalog *platform.Catalog, monitor *network.Monitor) *Server {
	handlers := handlers.NewHandlers(controller, store, catalog, monitor)

	mux := http.NewServeMux()

	// Routes
	mux.HandleFunc("GET /{$}", handlers.Home)

	// HTMX partial endpoints
	mux.HandleFunc("POST /download", handlers.SubmitDownload)
	mux.HandleFunc("POST /save", handlers.SaveVideo)
	mux.HandleFunc("GET /history/clear", handlers.ConfirmClearHistory)
	mux.HandleFunc("POST /history/clear", handlers.ClearHistory)
	mux.HandleFunc("GET /history/{id}", handlers.HistoryDetail)
	mux.HandleFunc("POST /refresh", handlers.Refresh)

	// JSON API
	mux.HandleFunc("GET /api/history", handlers.GetHistory)
	mux.HandleFunc("GET /api/platforms", handlers.GetPlatforms)
	mux.HandleFunc("GET /api/status", handlers.GetStatus)

	// A submit holds its response open for up to DownloadTimeout
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: config.DownloadTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		server:   server,
		handlers: handlers,
		logger:   slog.Default(),
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	localIP := getLocalIP()
	port := strings.TrimPrefix(s.server.Addr, ":")

	s.logger.Info("Starting HTTP server",
		"addr", s.server.Addr,
		"local_ip", localIP,
		"port", port,
		"url", fmt.Sprintf("http://%s:%s", localIP, port))

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// getLocalIP returns the local network IP address (192.168.0.* range)
func getLocalIP() string {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "localhost"
	}

	for _, iface := range interfaces {
		// Skip loopback and down interfaces
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			if ip == nil || ip.IsLoopback() {
				continue
			}

			// Check for IPv4 private network ranges
			if ip.To4() != nil {
				ipStr := ip.String()
				// Check for 192.168.0.* range specifically
				if strings.HasPrefix(ipStr, "192.168.") {
					return ipStr
				}
				// Fallback to other private ranges (10.*, 172.16-31.*)
				if strings.HasPrefix(ipStr, "10.") ||
					(strings.HasPrefix(ipStr, "172.") && isInRange172(ipStr)) {
					return ipStr
				}
			}
		}
	}

	return "localhost"
}

// isInRange172 checks if IP is in 172.16.0.0/12 range (172.16.0.0 - 172.31.255.255)
func isInRange172(ipStr string) bool {
	parts := strings.Split(ipStr, ".")
	if len(parts) < 2 {
		return false
	}

	if parts[0] != "172" {
		return false
	}

	// Parse second octet
	var secondOctet int
	if _, err := fmt.Sscanf(parts[1], "%d", &secondOctet); err != nil {
		return false
	}

	return secondOctet >= 16 && secondOctet <= 31
}
