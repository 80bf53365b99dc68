package catalogstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
)

func newValkeyStoreUnderTest(t *testing.T, prefix string) (*ValkeyStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{server.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return NewValkeyStore(client, prefix), server
}

func TestValkeyStoreRoundTrip(t *testing.T) {
	store, server := newValkeyStoreUnderTest(t, "console")
	ctx := context.Background()

	_, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	saved := forecast.Catalog{Sectors: []string{"Families", "Men"}}
	require.NoError(t, store.Save(ctx, saved, time.Minute))
	require.True(t, server.Exists("console:catalog"))
	require.Equal(t, time.Minute, server.TTL("console:catalog"))

	got, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, saved.Sectors, got.Sectors)

	server.FastForward(2 * time.Minute)
	_, ok, err = store.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValkeyStoreTTLFloorAndDefaultPrefix(t *testing.T) {
	store, server := newValkeyStoreUnderTest(t, "")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, forecast.Catalog{Sectors: []string{"Youth"}}, 10*time.Millisecond))
	require.Equal(t, time.Second, server.TTL("shelter:catalog"))

	require.NoError(t, store.Save(ctx, forecast.Catalog{Sectors: []string{"Youth"}}, 0))
	require.Zero(t, server.TTL("shelter:catalog"))
}

func TestValkeyStoreRejectsCorruptPayload(t *testing.T) {
	store, server := newValkeyStoreUnderTest(t, "console")
	require.NoError(t, server.Set("console:catalog", "{not json"))

	_, ok, err := store.Get(context.Background())
	require.Error(t, err)
	require.False(t, ok)
}
