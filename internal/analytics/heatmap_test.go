package analytics

import (
	"testing"
	"time"
)

func TestBucketizeGridShape(t *testing.T) {
	// 2024-01-01 is a Monday, so the first column has one padding cell.
	today := day("2024-01-10")
	hm := Bucketize(nil, TimeframeQuarter, today)

	// Jan 1-10 plus one day of padding = 11 cells, two week columns.
	if len(hm.Weeks) != 2 {
		t.Fatalf("weeks = %d, want 2", len(hm.Weeks))
	}
	for i, w := range hm.Weeks {
		if len(w) != 7 {
			t.Fatalf("week %d has %d cells, want 7", i, len(w))
		}
	}

	if hm.Weeks[0][0].Date != "" {
		t.Errorf("expected Sunday padding cell before Jan 1, got %q", hm.Weeks[0][0].Date)
	}
	if hm.Weeks[0][1].Date != "2024-01-01" {
		t.Errorf("Jan 1 misaligned: row 1 = %q, want 2024-01-01", hm.Weeks[0][1].Date)
	}
}

func TestBucketizeLevels(t *testing.T) {
	today := day("2024-01-10")
	daily := []DailyCompletion{
		{Date: "2024-01-01", Percentage: 10},
		{Date: "2024-01-02", Percentage: 25},
		{Date: "2024-01-03", Percentage: 50},
		{Date: "2024-01-04", Percentage: 75},
		{Date: "2024-01-05", Percentage: 76},
	}
	hm := Bucketize(daily, TimeframeQuarter, today)

	wantLevels := map[string]int{
		"2024-01-01": 1,
		"2024-01-02": 1, // inclusive upper bound
		"2024-01-03": 2,
		"2024-01-04": 3,
		"2024-01-05": 4,
		"2024-01-06": 0, // no data
	}
	got := map[string]int{}
	for _, w := range hm.Weeks {
		for _, c := range w {
			if c.Date != "" {
				got[c.Date] = c.Level
			}
		}
	}
	for date, want := range wantLevels {
		if got[date] != want {
			t.Errorf("level(%s) = %d, want %d", date, got[date], want)
		}
	}
}

func TestBucketizeFutureCellsAreEmpty(t *testing.T) {
	today := day("2024-01-10")
	// Data past today must not light up: the grid classifies future days as
	// level 0 regardless of input.
	daily := []DailyCompletion{{Date: "2024-01-12", Percentage: 100}}
	hm := Bucketize(daily, TimeframeQuarter, today)
	for _, w := range hm.Weeks {
		for _, c := range w {
			if c.Date == "2024-01-12" && c.Level != 0 {
				t.Errorf("future cell has level %d, want 0", c.Level)
			}
		}
	}
}

func TestBucketizeTimeframeOnlyChangesLabel(t *testing.T) {
	today := day("2024-06-15")
	daily := []DailyCompletion{{Date: "2024-01-02", Percentage: 100}}

	short := Bucketize(daily, TimeframeMonth, today)
	long := Bucketize(daily, TimeframeHalfYear, today)

	if len(short.Weeks) != len(long.Weeks) {
		t.Errorf("timeframe truncated the grid: %d vs %d weeks", len(short.Weeks), len(long.Weeks))
	}
	if short.Label == long.Label {
		t.Errorf("labels should differ across timeframes, both %q", short.Label)
	}
	if want := "May 15, 2024 — Present"; short.Label != want {
		t.Errorf("label = %q, want %q", short.Label, want)
	}

	// January data stays in the grid even when the window starts in May.
	found := false
	for _, w := range short.Weeks {
		for _, c := range w {
			if c.Date == "2024-01-02" && c.Level == 4 {
				found = true
			}
		}
	}
	if !found {
		t.Error("data outside the labeled window was dropped from the grid")
	}
}

func TestBucketizeSpansYearToToday(t *testing.T) {
	today := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	hm := Bucketize(nil, TimeframeQuarter, today)

	var last string
	for _, w := range hm.Weeks {
		for _, c := range w {
			if c.Date > last {
				last = c.Date
			}
		}
	}
	// The final week is filled through Saturday; it must reach at least today.
	if last < "2024-03-01" {
		t.Errorf("grid ends at %s, want at least 2024-03-01", last)
	}
}
