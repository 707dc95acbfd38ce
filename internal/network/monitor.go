// Package network tracks whether the download service is reachable
package network

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// CheckTimeout bounds a single reachability check
const CheckTimeout = 10 * time.Second

// HealthChecker checks that the remote service answers
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// Monitor checks the service on an interval and notifies subscribers when
// reachability changes
type Monitor struct {
	checker  HealthChecker
	interval time.Duration
	logger   *slog.Logger

	mu          sync.RWMutex
	reachable   bool
	checked     bool
	subscribers []func(reachable bool)
}

// NewMonitor creates a monitor. The service is assumed reachable until the
// first check says otherwise.
func NewMonitor(checker HealthChecker, interval time.Duration) *Monitor {
	return &Monitor{
		checker:   checker,
		interval:  interval,
		logger:    slog.Default(),
		reachable: true,
	}
}

// Reachable reports the result of the latest check
func (m *Monitor) Reachable() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reachable
}

// Subscribe registers fn to be called on every reachability change
func (m *Monitor) Subscribe(fn func(reachable bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Start checks immediately and then on every tick until ctx is cancelled
func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Network monitor shutting down")
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check runs one health check and records the result
func (m *Monitor) Check(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, CheckTimeout)
	defer cancel()

	err := m.checker.CheckHealth(checkCtx)
	reachable := err == nil

	m.mu.Lock()
	changed := !m.checked || m.reachable != reachable
	wasReachable := m.reachable
	m.reachable = reachable
	m.checked = true
	subscribers := append([]func(bool){}, m.subscribers...)
	m.mu.Unlock()

	switch {
	case !reachable && wasReachable:
		m.logger.Warn("Network connection lost", "error", err)
	case reachable && !wasReachable:
		m.logger.Info("Network connection restored")
	case !reachable:
		m.logger.Debug("Service still unreachable", "error", err)
	}

	if changed {
		for _, fn := range subscribers {
			fn(reachable)
		}
	}

	return reachable
}
