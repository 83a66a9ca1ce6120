package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevoker(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewMemoryRevoker()
	r.now = func() time.Time { return now }
	ctx := context.Background()

	assert.False(t, r.IsRevoked(ctx, "a"))

	require.NoError(t, r.Revoke(ctx, "a", now.Add(time.Hour)))
	assert.True(t, r.IsRevoked(ctx, "a"))
	assert.False(t, r.IsRevoked(ctx, "b"))

	// 过期后不再视为吊销
	now = now.Add(2 * time.Hour)
	assert.False(t, r.IsRevoked(ctx, "a"))
}

func TestMemoryRevoker_IgnoresExpiredAndPurges(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewMemoryRevoker()
	r.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, "old", now.Add(-time.Minute)))
	assert.False(t, r.IsRevoked(ctx, "old"))

	require.NoError(t, r.Revoke(ctx, "short", now.Add(time.Minute)))
	now = now.Add(time.Hour)
	require.NoError(t, r.Revoke(ctx, "fresh", now.Add(time.Minute)))
	assert.NotContains(t, r.revoked, "short")
	assert.Contains(t, r.revoked, "fresh")
}
