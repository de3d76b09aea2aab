package pricecache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBatchRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	err := m.MSet(ctx, map[string]string{
		"price:ethereum": "3000",
		"price:solana":   "150",
	}, time.Minute)
	require.NoError(t, err)

	got, err := m.MGet(ctx, []string{"price:ethereum", "price:solana", "price:missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"price:ethereum": "3000",
		"price:solana":   "150",
	}, got)
}

func TestMemoryEntriesExpire(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.MSet(ctx, map[string]string{"price:ethereum": "3000"}, 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	got, err := m.MGet(ctx, []string{"price:ethereum"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryEmptyKeySet(t *testing.T) {
	m := NewMemory()

	got, err := m.MGet(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
