package security_test

import (
	"context"
	"testing"

	"jobkit-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", security.MaskEmail("john@example.com"))
	assert.Equal(t, "***", security.MaskEmail("ab"))
	assert.Equal(t, "***@x.com", security.MaskEmail("a@x.com"))
}

func TestSecurityLoggerMasksIdentifiers(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sl := security.NewSecurityLogger(zap.New(core), "jobkit", "test")

	sl.LogLoginFailed(context.Background(), "john@example.com", "10.0.0.1", "ua", "req-1", "invalid_password")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "login_failed", entry.Message)
	assert.Equal(t, "j***@example.com", fields["subject_value"])
	assert.Equal(t, "email", fields["subject_type"])
	assert.Equal(t, "10.0.0.1", fields["ip"])
}

func TestLoginTrackerWithoutRedis(t *testing.T) {
	tracker := security.NewLoginTracker(nil, security.DefaultLoginTrackerConfig(), nil)
	ctx := context.Background()

	blocked, err := tracker.IsBlocked(ctx, "alice", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)

	blocked, count, err := tracker.RecordFailedAttempt(ctx, "alice", "10.0.0.1", "ua", "req", "invalid_password")
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.Zero(t, count)

	assert.NoError(t, tracker.ClearAttempts(ctx, "alice", "10.0.0.1"))
}

func TestSeverityDrivesLevel(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sl := security.NewSecurityLogger(zap.New(core), "jobkit", "test")
	ctx := context.Background()

	sl.LogOTPVerified(ctx, 7)
	sl.LogLoginBlocked(ctx, "alice", "10.0.0.1", "ua", "req")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "INFO", entries[0].ContextMap()["severity"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, security.SeverityHIGH, security.GetSeverity(security.EventBlockCreated))
	assert.Equal(t, security.SeverityWARN, security.GetSeverity("unknown"))
}
