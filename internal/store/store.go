// Package store holds the session-scoped uploaded datasets that overlay
// the generated baseline. State lives in memory only: restarting the
// process returns the dashboard to its synthetic baseline.
package store

import (
	"log/slog"
	"sync"
	"time"

	"csatpulse/pkg/contracts/domain"
)

// UploadStore accumulates uploaded daily and event tables in arrival
// order. Reads return snapshots so callers can merge and filter without
// holding the lock.
type UploadStore struct {
	mu     sync.RWMutex
	logger *slog.Logger

	dailyTables [][]domain.DailyRecord
	eventTables [][]domain.EventRecord
	processed   []domain.ProcessedFile
	lastUpload  time.Time
}

// NewUploadStore creates an empty store.
func NewUploadStore(logger *slog.Logger) *UploadStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadStore{
		logger: logger.With(slog.String("component", "upload_store")),
	}
}

// Batch is the outcome of one multi-file upload, applied atomically.
type Batch struct {
	DailyTables [][]domain.DailyRecord
	EventTables [][]domain.EventRecord
	Processed   []domain.ProcessedFile
}

// Apply appends a batch under a single lock so a reader never observes
// half of an upload request.
func (s *UploadStore) Apply(batch Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dailyTables = append(s.dailyTables, batch.DailyTables...)
	s.eventTables = append(s.eventTables, batch.EventTables...)
	s.processed = append(s.processed, batch.Processed...)
	s.lastUpload = time.Now().UTC()

	s.logger.Info("applied upload batch",
		slog.Int("daily_tables", len(batch.DailyTables)),
		slog.Int("event_tables", len(batch.EventTables)),
		slog.Int("files", len(batch.Processed)))
}

// DailyTables returns the uploaded daily tables in arrival order.
func (s *UploadStore) DailyTables() [][]domain.DailyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([][]domain.DailyRecord, len(s.dailyTables))
	copy(tables, s.dailyTables)
	return tables
}

// EventTables returns the uploaded event tables in arrival order.
func (s *UploadStore) EventTables() [][]domain.EventRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([][]domain.EventRecord, len(s.eventTables))
	copy(tables, s.eventTables)
	return tables
}

// Status reports what has been uploaded so far.
func (s *UploadStore) Status() domain.UploadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := domain.UploadStatus{
		Files:       make([]domain.ProcessedFile, len(s.processed)),
		DailyTables: len(s.dailyTables),
		EventTables: len(s.eventTables),
	}
	copy(status.Files, s.processed)
	if !s.lastUpload.IsZero() {
		status.LastUploadAt = &s.lastUpload
	}
	return status
}

// FileCount returns how many files have been accepted.
func (s *UploadStore) FileCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processed)
}

// Clear drops all uploaded data, returning the dashboard to the
// generated baseline.
func (s *UploadStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dailyTables = nil
	s.eventTables = nil
	s.processed = nil
	s.lastUpload = time.Time{}

	s.logger.Info("cleared uploaded data")
}
