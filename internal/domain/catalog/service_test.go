package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/shelter-console/internal/domain/catalog"
	"github.com/yanqian/shelter-console/internal/domain/forecast"
	"github.com/yanqian/shelter-console/internal/infra/catalogstore"
)

func TestCatalogFetchesThenCaches(t *testing.T) {
	fetcher := &stubFetcher{result: forecast.Catalog{Sectors: []string{"Families", "Men"}}}
	svc := catalog.NewService(catalog.Config{CacheTTL: time.Minute}, fetcher, catalogstore.NewMemoryStore(), newTestLogger())

	first := svc.Catalog(context.Background())
	require.Equal(t, []string{"Families", "Men"}, first.Sectors)
	require.Equal(t, catalog.Defaults().Temperature, first.Temperature)

	second := svc.Catalog(context.Background())
	require.Equal(t, first, second)
	require.Equal(t, 1, fetcher.calls)
}

func TestCatalogFallsBackOnFetchError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	store := catalogstore.NewMemoryStore()
	svc := catalog.NewService(catalog.Config{CacheTTL: time.Minute}, fetcher, store, newTestLogger())

	require.Equal(t, catalog.Defaults(), svc.Catalog(context.Background()))

	_, cached, err := store.Get(context.Background())
	require.NoError(t, err)
	require.False(t, cached)
}

type stubFetcher struct {
	result forecast.Catalog
	err    error
	calls  int
}

func (s *stubFetcher) Info(ctx context.Context) (forecast.Catalog, error) {
	s.calls++
	if s.err != nil {
		return forecast.Catalog{}, s.err
	}
	return s.result, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
