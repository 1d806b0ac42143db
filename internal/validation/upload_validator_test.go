package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFilename(t *testing.T) {
	v := NewUploadValidator(nil, 1024)

	tests := []struct {
		name     string
		filename string
		wantErr  string
	}{
		{name: "csv accepted", filename: "daily_data.csv"},
		{name: "xlsx accepted", filename: "events.xlsx"},
		{name: "xls accepted", filename: "legacy.xls"},
		{name: "uppercase extension accepted", filename: "DAILY.CSV"},
		{name: "empty name", filename: "  ", wantErr: "empty filename"},
		{name: "path traversal", filename: "../etc/passwd.csv", wantErr: "invalid filename"},
		{name: "path separator", filename: "dir/file.csv", wantErr: "invalid filename"},
		{name: "unsupported extension", filename: "report.pdf", wantErr: "unsupported file format"},
		{name: "no extension", filename: "data", wantErr: "unsupported file format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFilename(tt.filename)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateSize(t *testing.T) {
	v := NewUploadValidator(nil, 100)

	assert.NoError(t, v.ValidateSize("ok.csv", 100))
	assert.Error(t, v.ValidateSize("empty.csv", 0))
	assert.Error(t, v.ValidateSize("big.csv", 101))
}

func TestValidate(t *testing.T) {
	v := NewUploadValidator(nil, 100)

	assert.NoError(t, v.Validate("daily.csv", 50))
	assert.Error(t, v.Validate("daily.pdf", 50))
	assert.Error(t, v.Validate("daily.csv", 0))
}
