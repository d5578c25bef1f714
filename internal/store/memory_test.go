package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_PutGetRoundtrip(t *testing.T) {
	ctx := context.Background()
	client := NewMemoryClient()

	require.NoError(t, client.Put(ctx, "/usage/user-1/2026-08-30/count", 3))

	raw, err := client.Get(ctx, "/usage/user-1/2026-08-30/count")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`3`), raw)

	assert.Equal(t, 1, client.Len())
}

func TestMemoryClient_GetAbsent(t *testing.T) {
	client := NewMemoryClient()

	raw, err := client.Get(context.Background(), "/missing")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestNopClient_AbsorbsEverything(t *testing.T) {
	ctx := context.Background()
	client := NewNopClient()

	require.NoError(t, client.Put(ctx, "/usage/user-1/2026-08-30/count", 3))

	// the write went nowhere
	raw, err := client.Get(ctx, "/usage/user-1/2026-08-30/count")
	require.NoError(t, err)
	assert.Nil(t, raw)
}
