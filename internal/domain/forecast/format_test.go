package forecast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresent(t *testing.T) {
	view := Present(PredictionResult{Date: "2024-01-15", Sector: "north", MinTempCelsius: 5, PredictedShelterDemand: 1200})
	require.Equal(t, "Monday, January 15, 2024", view.Date)
	require.Equal(t, "north", view.Sector)
	require.Equal(t, "5°C", view.Temperature)
	require.Equal(t, "1,200 beds", view.Demand)
	require.Equal(t, "Moderate", view.Description)
}

func TestFormatHelpers(t *testing.T) {
	require.Equal(t, "-10.5°C", FormatTemperature(-10.5))
	require.Equal(t, "0 beds", FormatDemand(0))
	require.Equal(t, "1,234,567 beds", FormatDemand(1234567))
	require.Equal(t, "not-a-date", FormatDate("not-a-date"))

	require.Equal(t, "Cold", DescribeTemperature(-10.5))
	require.Equal(t, "Cool", DescribeTemperature(-10))
	require.Equal(t, "Moderate", DescribeTemperature(14.9))
	require.Equal(t, "Warm", DescribeTemperature(15))
}

func TestServiceHealthBadge(t *testing.T) {
	require.Equal(t, "unknown", HealthUnknown.String())
	require.Equal(t, "🟢 Online", HealthOnline.Label())
	require.Equal(t, "#ef4444", HealthOffline.Color())
}
