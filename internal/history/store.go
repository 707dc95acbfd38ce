// Package history keeps the bounded, durable log of past download attempts.
package history

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"video-downloader/internal/config"
	"video-downloader/internal/database"
	"video-downloader/pkg/models"
)

// Storage is the durable key-value capability the store writes through to
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Store owns the ordered history sequence, newest first. It is the only
// writer of its storage key. Every mutation is persisted before returning.
type Store struct {
	mu       sync.RWMutex
	storage  Storage
	key      string
	capacity int
	entries  []models.HistoryEntry
	lastID   int64
	now      func() time.Time
	logger   *slog.Logger
}

// New creates a store over storage. Call Load to read persisted entries.
func New(storage Storage) *Store {
	return &Store{
		storage:  storage,
		key:      config.HistoryStorageKey,
		capacity: config.MaxHistoryCount,
		now:      time.Now,
		logger:   slog.Default(),
	}
}

// Load replaces the in-memory sequence with the persisted one. Missing or
// corrupt data yields an empty history; corruption is logged.
func (s *Store) Load() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.read()
	for _, entry := range s.entries {
		if entry.ID > s.lastID {
			s.lastID = entry.ID
		}
	}

	s.logger.Info("Loaded download history", "count", len(s.entries))
	return s.snapshot()
}

func (s *Store) read() []models.HistoryEntry {
	data, err := s.storage.Get(s.key)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			s.logger.Error("Failed to read download history", "key", s.key, "error", err)
		}
		return nil
	}

	entries, err := decodeEntries(data)
	if err != nil {
		s.logger.Error("Discarding corrupt download history", "key", s.key, "error", err)
		return nil
	}

	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	return entries
}

// Record derives an entry from outcome, prepends it, evicts the oldest
// entries beyond capacity, persists and returns the new sequence. Failed
// outcomes are recorded as well. If the write fails the error is logged and
// the in-memory sequence is kept, so it differs from storage until the next
// successful write.
func (s *Store) Record(outcome *models.DownloadOutcome) []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	// UTC, no monotonic reading: must survive a JSON round trip unchanged
	now := s.now().UTC()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	entry := models.NewHistoryEntry(id, outcome, now)

	entries := make([]models.HistoryEntry, 0, min(len(s.entries)+1, s.capacity))
	entries = append(entries, entry)
	entries = append(entries, s.entries...)
	if len(entries) > s.capacity {
		evicted := len(entries) - s.capacity
		entries = entries[:s.capacity]
		s.logger.Debug("Evicted oldest history entries", "count", evicted)
	}
	s.entries = entries

	s.persist()
	return s.snapshot()
}

// Clear empties the history unconditionally. Confirmation belongs to the caller.
// A failed write leaves storage holding the old sequence until the next save.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.persist()
	s.logger.Info("Cleared download history")
}

// Entries returns a copy of the current sequence
func (s *Store) Entries() []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Get looks up an entry by id
func (s *Store) Get(id int64) (models.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return models.HistoryEntry{}, false
}

// Describe formats entry for the detail view
func (s *Store) Describe(entry models.HistoryEntry) string {
	return Describe(entry)
}

// Describe returns title, platform and time lines, followed by size and
// duration lines when those values are known.
func Describe(entry models.HistoryEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\nPlatform: %s\nTime: %s", entry.Title, entry.Platform, entry.FormattedTime())

	if entry.FileSize != nil && *entry.FileSize > 0 {
		fmt.Fprintf(&b, "\nSize: %s", models.FormatFileSize(*entry.FileSize))
	}

	if entry.Duration != nil && *entry.Duration > 0 {
		fmt.Fprintf(&b, "\nDuration: %s", models.FormatDuration(*entry.Duration))
	}

	return b.String()
}

// persist writes the current sequence. Storage faults are logged, never returned.
func (s *Store) persist() {
	data, err := encodeEntries(s.entries, s.now())
	if err != nil {
		s.logger.Error("Failed to encode download history", "error", err)
		return
	}

	if err := s.storage.Set(s.key, data); err != nil {
		s.logger.Error("Failed to save download history", "key", s.key, "error", err)
		return
	}

	s.logger.Debug("Saved download history", "count", len(s.entries))
}

func (s *Store) snapshot() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
