package analytics

import "time"

// Timeframe selects the labeled display window of a heatmap. It is a hint
// for the caption only: the grid always spans January 1 of the current year
// through today.
type Timeframe string

const (
	TimeframeMonth      Timeframe = "1m"
	TimeframeQuarter    Timeframe = "3m"
	TimeframeHalfYear   Timeframe = "6m"
	defaultTimeframeLen           = 3
)

func (tf Timeframe) months() int {
	switch tf {
	case TimeframeMonth:
		return 1
	case TimeframeQuarter:
		return 3
	case TimeframeHalfYear:
		return 6
	}
	return defaultTimeframeLen
}

// HeatmapCell is one day of the grid. Padding cells (before January 1) have
// an empty date. Level 0 means padding, future, or no data; levels 1-4 are
// increasing intensity bands (≤25, ≤50, ≤75, >75).
type HeatmapCell struct {
	Date  string `json:"date,omitempty"`
	Level int    `json:"level"`
}

// Heatmap is a calendar grid of week columns, seven weekday cells each
// (Sunday first), plus the timeframe caption.
type Heatmap struct {
	Weeks [][]HeatmapCell `json:"weeks"`
	Label string          `json:"label"`
}

// Bucketize maps daily completion percentages onto the current-year calendar
// grid. The timeframe restricts nothing; it only drives the label.
func Bucketize(daily []DailyCompletion, tf Timeframe, today time.Time) Heatmap {
	day := startOfDay(today)
	jan1 := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	byDate := make(map[string]float64, len(daily))
	for _, d := range daily {
		byDate[d.Date] = d.Percentage
	}

	pad := int(jan1.Weekday()) // Sunday = 0, left padding before Jan 1
	total := pad + daysBetween(jan1, day) + 1
	weekCount := (total + 6) / 7

	weeks := make([][]HeatmapCell, weekCount)
	for w := range weeks {
		weeks[w] = make([]HeatmapCell, 7)
		for r := 0; r < 7; r++ {
			idx := w*7 + r - pad
			if idx < 0 {
				continue // padding cell, stays zero
			}
			date := jan1.AddDate(0, 0, idx)
			cell := HeatmapCell{Date: FormatDate(date)}
			if !date.After(day) {
				if pct, ok := byDate[cell.Date]; ok {
					cell.Level = level(pct)
				}
			}
			weeks[w][r] = cell
		}
	}

	start := day.AddDate(0, -tf.months(), 0)
	return Heatmap{
		Weeks: weeks,
		Label: start.Format("Jan 2, 2006") + " — Present",
	}
}

// level classifies a percentage into intensity bands, inclusive on the upper
// bound of each tier except the last.
func level(pct float64) int {
	switch {
	case pct <= 25:
		return 1
	case pct <= 50:
		return 2
	case pct <= 75:
		return 3
	default:
		return 4
	}
}
