package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"csatpulse/internal/dataprocessing"
	"csatpulse/internal/infrastructure"
	"csatpulse/internal/store"
	"csatpulse/internal/validation"
	"csatpulse/pkg/contracts/domain"
)

// UploadService runs the ingestion pipeline: validate, parse, classify
// and coerce each file, then apply the accepted tables to the store as
// one atomic batch. A failing file never affects its batch siblings.
type UploadService struct {
	parser    *dataprocessing.Parser
	validator *validation.UploadValidator
	uploads   *store.UploadStore
	metrics   *infrastructure.Metrics
	maxBatch  int
	logger    *slog.Logger
}

// NewUploadService creates an upload service.
func NewUploadService(
	parser *dataprocessing.Parser,
	validator *validation.UploadValidator,
	uploads *store.UploadStore,
	metrics *infrastructure.Metrics,
	maxBatch int,
	logger *slog.Logger,
) *UploadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{
		parser:    parser,
		validator: validator,
		uploads:   uploads,
		metrics:   metrics,
		maxBatch:  maxBatch,
		logger:    logger.With(slog.String("component", "upload_service")),
	}
}

// UploadFile is one file of an upload batch.
type UploadFile struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// UploadResult reports the per-file outcome of a batch.
type UploadResult struct {
	Processed []domain.ProcessedFile `json:"processed"`
	Rejected  []domain.RejectedFile  `json:"rejected"`
}

// ProcessBatch ingests an upload batch. The store is only touched when
// at least one file survives, and then exactly once.
func (s *UploadService) ProcessBatch(ctx context.Context, files []UploadFile) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, ErrEmptyBatch
	}
	if s.maxBatch > 0 && len(files) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d files exceeds the limit of %d", ErrBatchTooLarge, len(files), s.maxBatch)
	}

	result := &UploadResult{}
	batch := store.Batch{}

	for _, file := range files {
		processed, err := s.processFile(ctx, file, &batch)
		if err != nil {
			s.metrics.UploadsRejected.Inc()
			s.logger.WarnContext(ctx, "rejected upload",
				slog.String("file", file.Name),
				slog.String("reason", err.Error()))
			result.Rejected = append(result.Rejected, domain.RejectedFile{
				Name:   file.Name,
				Reason: err.Error(),
			})
			continue
		}

		s.metrics.UploadsAccepted.Inc()
		batch.Processed = append(batch.Processed, *processed)
		result.Processed = append(result.Processed, *processed)
	}

	if len(result.Processed) == 0 {
		return result, ErrAllFilesRejected
	}

	s.uploads.Apply(batch)

	s.logger.InfoContext(ctx, "processed upload batch",
		slog.Int("accepted", len(result.Processed)),
		slog.Int("rejected", len(result.Rejected)))

	return result, nil
}

func (s *UploadService) processFile(ctx context.Context, file UploadFile, batch *store.Batch) (*domain.ProcessedFile, error) {
	if err := s.validator.Validate(file.Name, file.Size); err != nil {
		return nil, err
	}

	// The spreadsheet reader needs a seekable stream, so buffer the
	// already size-bounded content.
	content, err := io.ReadAll(io.LimitReader(file.Reader, file.Size))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read upload: %w", file.Name, err)
	}

	table, err := s.parser.ParseUpload(file.Name, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	kind := s.parser.Classify(table, file.Name)
	processed := &domain.ProcessedFile{
		Name:         file.Name,
		Kind:         kind,
		AutoDetected: !table.HasColumn("satisfaction_score") && !table.HasColumn("severity"),
		Columns:      len(table.Columns),
	}

	switch kind {
	case domain.DatasetDaily:
		records, warnings, err := s.parser.CoerceDaily(table)
		if err != nil {
			return nil, err
		}
		batch.DailyTables = append(batch.DailyTables, records)
		processed.Rows = len(records)
		processed.Warnings = warnings

	case domain.DatasetEvents:
		records, warnings, err := s.parser.CoerceEvents(table)
		if err != nil {
			return nil, err
		}
		batch.EventTables = append(batch.EventTables, records)
		processed.Rows = len(records)
		processed.Warnings = warnings

	default:
		return nil, fmt.Errorf("%s: %w", file.Name, dataprocessing.ErrUnknownDataset)
	}

	return processed, nil
}

// Status reports the accumulated upload collection.
func (s *UploadService) Status(ctx context.Context) domain.UploadStatus {
	return s.uploads.Status()
}

// Clear drops all uploaded data, returning every view to the generated
// baseline.
func (s *UploadService) Clear(ctx context.Context) {
	s.uploads.Clear()
	s.logger.InfoContext(ctx, "cleared uploaded datasets")
}
