package catalogstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
)

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	_, ok, err := store.Get(context.Background())
	require.NoError(t, err)
	require.False(t, ok)

	saved := forecast.Catalog{Sectors: []string{"Men"}}
	require.NoError(t, store.Save(context.Background(), saved, time.Minute))

	got, ok, err := store.Get(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"Men"}, got.Sectors)

	got.Sectors[0] = "mutated"
	again, _, _ := store.Get(context.Background())
	require.Equal(t, "Men", again.Sectors[0])

	now = now.Add(time.Minute)
	_, ok, err = store.Get(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}
