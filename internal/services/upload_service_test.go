package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csatpulse/internal/dataprocessing"
	"csatpulse/internal/infrastructure"
	"csatpulse/internal/store"
	"csatpulse/internal/validation"
	"csatpulse/pkg/contracts/domain"
)

func newTestUploadService(t *testing.T, maxBatch int) (*UploadService, *store.UploadStore) {
	t.Helper()
	logger := testLogger()
	uploads := store.NewUploadStore(logger)
	svc := NewUploadService(
		dataprocessing.NewParser(logger),
		validation.NewUploadValidator(logger, 1<<20),
		uploads,
		infrastructure.NewMetrics(),
		maxBatch,
		logger,
	)
	return svc, uploads
}

func uploadFile(name, content string) UploadFile {
	return UploadFile{
		Name:   name,
		Size:   int64(len(content)),
		Reader: strings.NewReader(content),
	}
}

func TestUploadService_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("empty batch", func(t *testing.T) {
		svc, _ := newTestUploadService(t, 10)
		_, err := svc.ProcessBatch(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyBatch)
	})

	t.Run("batch too large", func(t *testing.T) {
		svc, _ := newTestUploadService(t, 2)
		files := []UploadFile{
			uploadFile("a.csv", "date,satisfaction_score\n2025-06-01,7.5\n"),
			uploadFile("b.csv", "date,satisfaction_score\n2025-06-02,7.6\n"),
			uploadFile("c.csv", "date,satisfaction_score\n2025-06-03,7.7\n"),
		}
		_, err := svc.ProcessBatch(ctx, files)
		assert.ErrorIs(t, err, ErrBatchTooLarge)
	})

	t.Run("daily upload is accepted", func(t *testing.T) {
		svc, uploads := newTestUploadService(t, 10)
		result, err := svc.ProcessBatch(ctx, []UploadFile{
			uploadFile("daily.csv", "date,satisfaction_score\n2025-06-01,7.5\n2025-06-02,8.1\n"),
		})
		require.NoError(t, err)
		require.Len(t, result.Processed, 1)
		assert.Empty(t, result.Rejected)

		processed := result.Processed[0]
		assert.Equal(t, domain.DatasetDaily, processed.Kind)
		assert.Equal(t, 2, processed.Rows)
		assert.False(t, processed.AutoDetected)

		assert.Len(t, uploads.DailyTables(), 1)
		assert.Equal(t, 1, uploads.FileCount())
	})

	t.Run("events upload is accepted", func(t *testing.T) {
		svc, uploads := newTestUploadService(t, 10)
		result, err := svc.ProcessBatch(ctx, []UploadFile{
			uploadFile("incidents.csv", "date,severity,failure_percentage\n2025-06-10,High,62.5\n"),
		})
		require.NoError(t, err)
		require.Len(t, result.Processed, 1)
		assert.Equal(t, domain.DatasetEvents, result.Processed[0].Kind)
		assert.Len(t, uploads.EventTables(), 1)
	})

	t.Run("date column heuristic marks auto detection", func(t *testing.T) {
		svc, _ := newTestUploadService(t, 10)
		result, err := svc.ProcessBatch(ctx, []UploadFile{
			uploadFile("metrics.csv", "date,score_a,score_b\n2025-06-01,1,2\n"),
		})
		require.NoError(t, err)
		require.Len(t, result.Processed, 1)
		assert.Equal(t, domain.DatasetDaily, result.Processed[0].Kind)
		assert.True(t, result.Processed[0].AutoDetected)
	})

	t.Run("rejection reasons are per file", func(t *testing.T) {
		svc, uploads := newTestUploadService(t, 10)
		result, err := svc.ProcessBatch(ctx, []UploadFile{
			uploadFile("good.csv", "date,satisfaction_score\n2025-06-01,7.5\n"),
			uploadFile("notes.txt", "hello"),
			uploadFile("mystery.csv", "alpha,beta\n1,2\n"),
		})
		require.NoError(t, err, "one accepted file keeps the batch successful")
		assert.Len(t, result.Processed, 1)
		require.Len(t, result.Rejected, 2)
		assert.Contains(t, result.Rejected[0].Reason, "unsupported file format")
		assert.Contains(t, result.Rejected[1].Reason, "could not determine file type")

		assert.Equal(t, 1, uploads.FileCount())
	})

	t.Run("all rejected leaves the store untouched", func(t *testing.T) {
		svc, uploads := newTestUploadService(t, 10)
		result, err := svc.ProcessBatch(ctx, []UploadFile{
			uploadFile("notes.txt", "hello"),
			uploadFile("empty.csv", "date,satisfaction_score\n"),
		})
		assert.ErrorIs(t, err, ErrAllFilesRejected)
		assert.Len(t, result.Rejected, 2)
		assert.Zero(t, uploads.FileCount())
	})

	t.Run("path traversal is rejected", func(t *testing.T) {
		svc, _ := newTestUploadService(t, 10)
		result, err := svc.ProcessBatch(ctx, []UploadFile{
			uploadFile("../../etc/passwd.csv", "date,satisfaction_score\n2025-06-01,7.5\n"),
		})
		assert.ErrorIs(t, err, ErrAllFilesRejected)
		require.Len(t, result.Rejected, 1)
		assert.Contains(t, result.Rejected[0].Reason, "invalid filename")
	})
}

func TestUploadService_StatusAndClear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUploadService(t, 10)

	_, err := svc.ProcessBatch(ctx, []UploadFile{
		uploadFile("daily.csv", "date,satisfaction_score\n2025-06-01,7.5\n"),
	})
	require.NoError(t, err)

	status := svc.Status(ctx)
	assert.Len(t, status.Files, 1)
	assert.Equal(t, 1, status.DailyTables)
	assert.NotNil(t, status.LastUploadAt)

	svc.Clear(ctx)
	status = svc.Status(ctx)
	assert.Empty(t, status.Files)
	assert.Zero(t, status.DailyTables)
}
