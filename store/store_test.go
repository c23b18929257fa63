package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpay/hr-engine/store"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, store.Save(ctx, m, store.AdminKey, payload{Name: "roster", Count: 3}))

	var got payload
	found, err := store.Load(ctx, m, store.AdminKey, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, payload{Name: "roster", Count: 3}, got)
}

func TestLoad_MissingKey(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	var got payload
	found, err := store.Load(ctx, m, store.SessionKey("emp-1"), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoad_MalformedPayloadDiscarded(t *testing.T) {
	// GIVEN: a cache entry that no longer parses
	// THEN: the load reports not-found with the parse error and the entry is
	//       dropped, so the next load is a clean miss

	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.Put(ctx, store.AdminKey, []byte("{not json")))

	var got payload
	found, err := store.Load(ctx, m, store.AdminKey, &got)
	assert.False(t, found)
	assert.Error(t, err)

	_, stillThere, err := m.Get(ctx, store.AdminKey)
	require.NoError(t, err)
	assert.False(t, stillThere, "malformed entry is discarded")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, store.Save(ctx, m, store.SessionKey("emp-1"), payload{Name: "s"}))

	require.NoError(t, m.Delete(ctx, store.SessionKey("emp-1")))

	var got payload
	found, err := store.Load(ctx, m, store.SessionKey("emp-1"), &got)
	require.NoError(t, err)
	assert.False(t, found)
}
