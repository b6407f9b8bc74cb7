package analytics

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		today string
		want  int
	}{
		{"empty", nil, "2024-01-03", 0},
		{"three consecutive ending today", []string{"2024-01-01", "2024-01-02", "2024-01-03"}, "2024-01-03", 3},
		{"gap resets to latest run", []string{"2024-01-01", "2024-01-02", "2024-01-10"}, "2024-01-10", 1},
		{"latest is yesterday", []string{"2024-01-01", "2024-01-02"}, "2024-01-03", 2},
		{"broken streak", []string{"2024-01-01", "2024-01-02"}, "2024-01-05", 0},
		{"single date today", []string{"2024-01-03"}, "2024-01-03", 1},
		{"single date yesterday", []string{"2024-01-02"}, "2024-01-03", 1},
		{"single stale date", []string{"2023-12-25"}, "2024-01-03", 0},
		{"single future date", []string{"2024-01-04"}, "2024-01-03", 0},
		{"run ending in the future", []string{"2024-01-02", "2024-01-03", "2024-01-04"}, "2024-01-03", 0},
		{"unsorted with duplicates", []string{"2024-01-03", "2024-01-01", "2024-01-02", "2024-01-02"}, "2024-01-03", 3},
		{"malformed entries ignored", []string{"2024-01-02", "not-a-date", "2024-01-03"}, "2024-01-03", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.dates, day(tt.today)); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"single date", []string{"2020-06-15"}, 1},
		{"three consecutive", []string{"2024-01-01", "2024-01-02", "2024-01-03"}, 3},
		{"run before a gap", []string{"2024-01-01", "2024-01-02", "2024-01-10"}, 2},
		{"independent of today", []string{"2019-03-01", "2019-03-02", "2019-03-03", "2019-03-04"}, 4},
		{"duplicates collapse", []string{"2024-01-01", "2024-01-01", "2024-01-02"}, 2},
		{"later run wins", []string{"2024-01-01", "2024-01-05", "2024-01-06", "2024-01-07"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestStreak(tt.dates); got != tt.want {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLongestAtLeastCurrent(t *testing.T) {
	sets := [][]string{
		{"2024-01-01", "2024-01-02", "2024-01-03"},
		{"2024-01-01", "2024-01-02", "2024-01-10"},
		{"2023-11-01", "2023-11-02", "2023-11-03", "2024-01-02", "2024-01-03"},
		{},
	}
	today := day("2024-01-03")
	for _, dates := range sets {
		if l, c := LongestStreak(dates), CurrentStreak(dates, today); l < c {
			t.Errorf("LongestStreak = %d < CurrentStreak = %d for %v", l, c, dates)
		}
	}
}
