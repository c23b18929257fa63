package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutosaver_StopIsIdempotent(t *testing.T) {
	// GIVEN: a started autosaver
	// WHEN: stopping it twice
	// THEN: the second call is a no-op and the final snapshot was saved

	f := newFixture(t)
	saver := NewAutosaver(f.cache, f.roster, f.handler.Register, f.handler.Sessions)
	saver.Interval = time.Hour
	saver.Start()

	saver.Stop()
	assert.NotPanics(t, func() { saver.Stop() })

	found, err := LoadAdminSnapshot(context.Background(), f.cache, f.roster, f.handler.Register)
	require.NoError(t, err)
	assert.True(t, found)
}
