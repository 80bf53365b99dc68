package forecast

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/yanqian/shelter-console/pkg/util"
)

// ResultView is a PredictionResult prepared for display.
type ResultView struct {
	Date        string `json:"date"`
	Sector      string `json:"sector"`
	Temperature string `json:"temperature"`
	Demand      string `json:"demand"`
	Description string `json:"description"`
}

// Present formats every field of a result the way the result panel shows it.
func Present(r PredictionResult) ResultView {
	return ResultView{
		Date:        FormatDate(r.Date),
		Sector:      r.Sector,
		Temperature: FormatTemperature(r.MinTempCelsius),
		Demand:      FormatDemand(r.PredictedShelterDemand),
		Description: DescribeTemperature(r.MinTempCelsius),
	}
}

// FormatDate renders YYYY-MM-DD as "Monday, January 15, 2024". The date is
// treated as a calendar day, so no timezone shift applies. Unparseable input
// is returned as is.
func FormatDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	day, err := time.Parse(util.DateLayout, trimmed)
	if err != nil {
		return trimmed
	}
	return day.Format("Monday, January 2, 2006")
}

// FormatTemperature renders the shortest exact decimal with a Celsius suffix.
func FormatTemperature(celsius float64) string {
	return strconv.FormatFloat(celsius, 'f', -1, 64) + "°C"
}

// FormatDemand renders a bed count with thousands separators.
func FormatDemand(beds int) string {
	return humanize.Comma(int64(beds)) + " beds"
}

// DescribeTemperature buckets a minimum temperature into a coarse label.
func DescribeTemperature(celsius float64) string {
	switch {
	case celsius < -10:
		return "Cold"
	case celsius < 5:
		return "Cool"
	case celsius < 15:
		return "Moderate"
	default:
		return "Warm"
	}
}
