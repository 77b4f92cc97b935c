package services

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	svc := NewHealthService("1.2.3", "2026-01-01T00:00:00Z", nil)

	status := svc.Health(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.False(t, status.Timestamp.IsZero())
	assert.Contains(t, status.Runtime, "uptime_seconds")
	assert.Contains(t, status.Runtime, "goroutines")
}

func TestVersion(t *testing.T) {
	svc := NewHealthService("1.2.3", "2026-01-01T00:00:00Z", nil)

	info := svc.Version()

	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "2026-01-01T00:00:00Z", info.BuildTime)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}
