package analytics

import "time"

// CurrentStreak counts consecutive completion days ending at today or
// yesterday. A most recent date that is neither today nor yesterday,
// whether stale or in the future, means the streak is broken and the
// result is 0. today is the caller's local calendar day.
func CurrentStreak(dates []string, today time.Time) int {
	ds := normalize(dates)
	if len(ds) == 0 {
		return 0
	}

	day := startOfDay(today)
	latest := ds[len(ds)-1]
	if gap := daysBetween(latest, day); gap > 1 || gap < 0 {
		return 0
	}

	streak := 1
	for i := len(ds) - 2; i >= 0; i-- {
		if daysBetween(ds[i], ds[i+1]) != 1 {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the historical maximum run of consecutive completion
// days. Unlike CurrentStreak it is independent of today.
func LongestStreak(dates []string) int {
	ds := normalize(dates)
	if len(ds) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(ds); i++ {
		if daysBetween(ds[i-1], ds[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
