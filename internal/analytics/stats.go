package analytics

import (
	"math"
	"sort"
)

// DailyCompletion is the completion percentage for one active day. The
// percentage is kept as a precise float; rounding happens at the
// presentation boundary.
type DailyCompletion struct {
	Date       string  `json:"date"`
	Percentage float64 `json:"percentage"`
}

// Statistics is derived on demand from completion events; it has no
// independent lifecycle. The weekly and monthly averages are both the
// average over active days, meaning days with at least one completion.
// Days with no activity are absent, not zero-filled.
type Statistics struct {
	DailyCompletions []DailyCompletion `json:"dailyCompletions"`
	WeeklyAverage    int               `json:"weeklyAverage"`
	MonthlyAverage   int               `json:"monthlyAverage"`
}

// Calculate aggregates completion events (one event per habit completed per
// day, duplicates across habits expected) against the number of habits being
// measured. totalHabits == 0 yields all-zero statistics.
func Calculate(events []string, totalHabits int) Statistics {
	if totalHabits == 0 {
		return Statistics{DailyCompletions: []DailyCompletion{}}
	}

	counts := make(map[string]int)
	for _, d := range events {
		if _, ok := ParseDate(d); !ok {
			continue
		}
		counts[d]++
	}

	daily := make([]DailyCompletion, 0, len(counts))
	sum := 0.0
	for date, n := range counts {
		// Clamp guards a stale habit count undercounting the day's
		// distinct completions.
		pct := math.Min(100, float64(n)/float64(totalHabits)*100)
		daily = append(daily, DailyCompletion{Date: date, Percentage: pct})
		sum += pct
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	avg := 0
	if len(daily) > 0 {
		avg = int(math.Round(sum / float64(len(daily))))
	}

	return Statistics{
		DailyCompletions: daily,
		WeeklyAverage:    avg,
		MonthlyAverage:   avg,
	}
}
