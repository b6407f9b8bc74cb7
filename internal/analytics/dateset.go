// Package analytics derives streaks, completion statistics, and heatmap
// grids from sets of completion dates. Everything here is pure and
// synchronous: malformed or empty input degrades to zero values, it never
// returns an error.
package analytics

import (
	"sort"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD form of a completion date.
const DateLayout = "2006-01-02"

// ParseDate parses a canonical completion date. The bool reports whether the
// string was a valid calendar date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t's calendar day in canonical form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// normalize parses, de-duplicates, and sorts dates ascending. Invalid
// entries are dropped. Input order is irrelevant; completedDates is a set.
func normalize(dates []string) []time.Time {
	seen := make(map[string]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		if seen[s] {
			continue
		}
		t, ok := ParseDate(s)
		if !ok {
			continue
		}
		seen[s] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// daysBetween counts whole calendar days from a to b. Both values come from
// ParseDate, so they sit at UTC midnight and the division is exact.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// startOfDay truncates t to its calendar day in t's location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
