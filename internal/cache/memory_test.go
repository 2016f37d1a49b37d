package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlacklist(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBlacklist()

	ok, err := b.Contains(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Add(ctx, "t1", time.Minute))
	ok, _ = b.Contains(ctx, "t1")
	assert.True(t, ok)

	require.NoError(t, b.Add(ctx, "t2", -time.Second))
	ok, _ = b.Contains(ctx, "t2")
	assert.False(t, ok, "already expired tokens are not stored")
}

func TestMemoryBlacklistExpiry(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBlacklist()

	require.NoError(t, b.Add(ctx, "short", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	ok, err := b.Contains(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}
