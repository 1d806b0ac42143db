package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthService_Check(t *testing.T) {
	svc := NewHealthService(testLogger())

	report := svc.Check(context.Background())
	assert.Equal(t, "healthy", report.Status)
	assert.NotEmpty(t, report.Version)
	assert.NotEmpty(t, report.Uptime)
	assert.NotZero(t, report.Goroutines)
	assert.NotEmpty(t, report.GoVersion)
}
