// Package validation guards the upload boundary: file names, formats
// and size limits are checked before any parsing happens.
package validation

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// allowedExtensions are the upload formats the parser understands.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// UploadValidator validates uploaded files before parsing.
type UploadValidator struct {
	logger      *slog.Logger
	maxFileSize int64
}

// NewUploadValidator creates an upload validator enforcing the given
// per-file size limit.
func NewUploadValidator(logger *slog.Logger, maxFileSize int64) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadValidator{
		logger:      logger.With(slog.String("component", "upload_validator")),
		maxFileSize: maxFileSize,
	}
}

// ValidateFilename rejects empty names, path traversal attempts and
// unsupported extensions.
func (v *UploadValidator) ValidateFilename(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("empty filename")
	}

	// The upload arrives as a bare name; anything with separators is a
	// traversal attempt.
	if strings.ContainsAny(trimmed, `/\`) || strings.Contains(trimmed, "..") {
		v.logger.Warn("rejected suspicious upload filename", slog.String("filename", trimmed))
		return fmt.Errorf("invalid filename %q", trimmed)
	}

	ext := strings.ToLower(filepath.Ext(trimmed))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%s: unsupported file format (extension %q)", trimmed, ext)
	}

	return nil
}

// ValidateSize rejects empty and oversized files.
func (v *UploadValidator) ValidateSize(name string, size int64) error {
	if size <= 0 {
		return fmt.Errorf("%s: file is empty", name)
	}
	if size > v.maxFileSize {
		v.logger.Warn("rejected oversized upload",
			slog.String("filename", name),
			slog.Int64("size", size),
			slog.Int64("limit", v.maxFileSize))
		return fmt.Errorf("%s: file exceeds the %d byte limit", name, v.maxFileSize)
	}
	return nil
}

// Validate runs all checks for one upload.
func (v *UploadValidator) Validate(name string, size int64) error {
	if err := v.ValidateFilename(name); err != nil {
		return err
	}
	return v.ValidateSize(name, size)
}
