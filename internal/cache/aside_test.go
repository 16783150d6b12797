package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideMissThenHit(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	loads := 0
	loader := func(dest *testPayload) func() error {
		return func() error {
			loads++
			*dest = testPayload{Name: "cached", Count: 7}
			return nil
		}
	}

	var first testPayload
	require.NoError(t, Aside(ctx, "profile:1", &first, time.Minute, loader(&first)))
	assert.Equal(t, 1, loads)
	assert.True(t, mr.Exists("profile:1"))

	var second testPayload
	require.NoError(t, Aside(ctx, "profile:1", &second, time.Minute, loader(&second)))
	assert.Equal(t, 1, loads, "hit must not invoke the loader")
	assert.Equal(t, first, second)
}

func TestAsideCorruptEntryFallsBackToLoader(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("profile:2", "{not json"))

	var out testPayload
	err := Aside(ctx, "profile:2", &out, time.Minute, func() error {
		out = testPayload{Name: "fresh"}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "fresh", out.Name)

	// Corrupt entry was replaced with the loader result.
	raw, err := mr.Get("profile:2")
	require.NoError(t, err)
	assert.Contains(t, raw, "fresh")
}

func TestAsideLoaderErrorPropagates(t *testing.T) {
	setupMiniredis(t)

	var out testPayload
	wantErr := errors.New("store down")
	err := Aside(context.Background(), "profile:3", &out, time.Minute, func() error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
}

func TestAsideWithoutClientAlwaysLoads(t *testing.T) {
	SetClient(nil)

	loads := 0
	var out testPayload
	for i := 0; i < 3; i++ {
		require.NoError(t, Aside(context.Background(), "profile:4", &out, time.Minute, func() error {
			loads++
			return nil
		}))
	}
	assert.Equal(t, 3, loads)
}

func TestInvalidateUserViews(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(ProfileKey(9), "{}"))
	require.NoError(t, mr.Set(DashboardKey(9), "{}"))

	InvalidateUserViews(ctx, 9)

	assert.False(t, mr.Exists(ProfileKey(9)))
	assert.False(t, mr.Exists(DashboardKey(9)))
}

func TestAsideTTLApplied(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var out testPayload
	require.NoError(t, Aside(ctx, "dashboard:1", &out, 30*time.Second, func() error {
		out = testPayload{Name: "view"}
		return nil
	}))

	mr.FastForward(time.Minute)
	assert.False(t, mr.Exists("dashboard:1"))
}
