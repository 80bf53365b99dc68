package historyrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
	"github.com/yanqian/shelter-console/internal/domain/submission"
)

func TestMemoryRepositoryRecentNewestFirst(t *testing.T) {
	repo := NewMemoryRepository(3)
	ctx := context.Background()
	base := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	for i, sector := range []string{"Families", "Men", "Women", "Youth"} {
		require.NoError(t, repo.Save(ctx, submission.Record{
			ID:          sector,
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
			Request:     forecast.PredictionRequest{Date: "2024-01-15", Sector: sector},
			Outcome:     submission.StatusSucceeded,
		}))
	}

	all, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Youth", all[0].ID)
	require.Equal(t, "Men", all[2].ID)

	two, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"Youth", "Women"}, []string{two[0].ID, two[1].ID})
}

func TestMemoryRepositoryCopiesDemand(t *testing.T) {
	repo := NewMemoryRepository(0)
	demand := 120
	require.NoError(t, repo.Save(context.Background(), submission.Record{ID: "a", Demand: &demand}))
	demand = 7

	records, err := repo.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 120, *records[0].Demand)
}
