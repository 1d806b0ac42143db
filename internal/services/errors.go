package services

import "errors"

// Service-level errors surfaced to the transport layer.
var (
	// Dashboard errors
	ErrUnknownMetric  = errors.New("unknown metric")
	ErrUnknownPeriod  = errors.New("unknown period")
	ErrNoDataSelected = errors.New("no data matches the selected filters")

	// Upload errors
	ErrEmptyBatch       = errors.New("no files in upload batch")
	ErrBatchTooLarge    = errors.New("too many files in upload batch")
	ErrAllFilesRejected = errors.New("no uploaded file could be processed")

	// Export errors
	ErrUnknownDataset = errors.New("unknown export dataset")
)
