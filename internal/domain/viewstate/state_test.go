package viewstate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
)

var sample = forecast.PredictionResult{Date: "2024-01-15", Sector: "north", MinTempCelsius: 5, PredictedShelterDemand: 1200}

func TestNewViewIsIdleAndUnknown(t *testing.T) {
	snap := New().Snapshot()
	require.Equal(t, Idle, snap.State)
	require.Equal(t, forecast.HealthUnknown, snap.Health)
	require.False(t, snap.InputsDisabled)
	require.Nil(t, snap.Result)
	require.Zero(t, snap.Revision)
}

func TestLoadingTakesPrecedence(t *testing.T) {
	v := New()
	v.ShowResult(sample)
	v.ShowLoading()

	snap := v.Snapshot()
	require.Equal(t, Loading, snap.State)
	require.True(t, snap.InputsDisabled)
	require.NotNil(t, snap.Result)

	v.ClearLoading()
	require.Equal(t, ShowingResult, v.Snapshot().State)
}

func TestShowResultFormatsAndFocuses(t *testing.T) {
	v := New()
	v.ShowError("boom")
	v.ShowResult(sample)

	snap := v.Snapshot()
	require.Equal(t, ShowingResult, snap.State)
	require.Empty(t, snap.Error)
	require.Equal(t, PanelResult, snap.Focus)
	require.Equal(t, "north", snap.Result.Sector)
	require.Equal(t, "5°C", snap.Result.Temperature)
	require.Equal(t, "1,200 beds", snap.Result.Demand)
	require.Equal(t, sample, *snap.Prediction)
}

func TestShowErrorHidesResult(t *testing.T) {
	v := New()
	v.ShowResult(sample)
	v.ShowError("no data")

	snap := v.Snapshot()
	require.Equal(t, ShowingError, snap.State)
	require.Equal(t, "no data", snap.Error)
	require.Nil(t, snap.Result)
	require.Equal(t, PanelError, snap.Focus)

	v.ClearError()
	snap = v.Snapshot()
	require.Equal(t, Idle, snap.State)
	require.Equal(t, PanelNone, snap.Focus)
}

func TestOperationsAreIdempotent(t *testing.T) {
	v := New()
	v.ShowResult(sample)
	rev := v.Snapshot().Revision
	v.ShowResult(sample)
	require.Equal(t, rev, v.Snapshot().Revision)

	v.ShowError("no data")
	rev = v.Snapshot().Revision
	v.ShowError("no data")
	v.ClearLoading()
	require.Equal(t, rev, v.Snapshot().Revision)

	v.SetHealth(forecast.HealthOnline)
	rev = v.Snapshot().Revision
	v.SetHealth(forecast.HealthOnline)
	require.Equal(t, rev, v.Snapshot().Revision)

	v.ClearError()
	rev = v.Snapshot().Revision
	v.ClearError()
	require.Equal(t, rev, v.Snapshot().Revision)
}

func TestHealthNeverTouchesPanels(t *testing.T) {
	v := New()
	v.ShowError("no data")
	v.SetHealth(forecast.HealthOffline)

	snap := v.Snapshot()
	require.Equal(t, ShowingError, snap.State)
	require.Equal(t, "no data", snap.Error)
	require.Equal(t, "🔴 Offline", snap.HealthLabel)
}

func TestSubscribeReceivesLatest(t *testing.T) {
	v := New()
	ch, cancel := v.Subscribe()

	initial := <-ch
	require.Zero(t, initial.Revision)

	v.SetHealth(forecast.HealthOnline)
	v.ShowLoading()
	v.ClearLoading()

	latest := <-ch
	require.Equal(t, uint64(3), latest.Revision)
	require.False(t, latest.Loading)

	cancel()
	cancel()
	_, open := <-ch
	require.False(t, open)
}
