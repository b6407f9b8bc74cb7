package analytics

import "testing"

func TestCalculateZeroHabits(t *testing.T) {
	got := Calculate([]string{"2024-01-01"}, 0)
	if len(got.DailyCompletions) != 0 || got.WeeklyAverage != 0 || got.MonthlyAverage != 0 {
		t.Errorf("expected all-zero statistics, got %+v", got)
	}
}

func TestCalculateNoEvents(t *testing.T) {
	got := Calculate(nil, 3)
	if len(got.DailyCompletions) != 0 {
		t.Errorf("expected empty daily list, got %v", got.DailyCompletions)
	}
	if got.WeeklyAverage != 0 || got.MonthlyAverage != 0 {
		t.Errorf("expected zero averages, got %d/%d", got.WeeklyAverage, got.MonthlyAverage)
	}
}

func TestCalculatePerDayPercentages(t *testing.T) {
	// Two habits: both done on the 1st, one on the 2nd.
	events := []string{"2024-01-01", "2024-01-01", "2024-01-02"}
	got := Calculate(events, 2)

	if len(got.DailyCompletions) != 2 {
		t.Fatalf("expected 2 active days, got %d", len(got.DailyCompletions))
	}
	if got.DailyCompletions[0].Date != "2024-01-01" || got.DailyCompletions[0].Percentage != 100 {
		t.Errorf("day 1 = %+v, want 100%% on 2024-01-01", got.DailyCompletions[0])
	}
	if got.DailyCompletions[1].Date != "2024-01-02" || got.DailyCompletions[1].Percentage != 50 {
		t.Errorf("day 2 = %+v, want 50%% on 2024-01-02", got.DailyCompletions[1])
	}
	// Average over active days only: (100 + 50) / 2 = 75.
	if got.WeeklyAverage != 75 || got.MonthlyAverage != 75 {
		t.Errorf("averages = %d/%d, want 75/75", got.WeeklyAverage, got.MonthlyAverage)
	}
}

func TestCalculateClampsStaleHabitCount(t *testing.T) {
	// Three completions against a stale count of 2 must clamp to 100.
	events := []string{"2024-01-01", "2024-01-01", "2024-01-01"}
	got := Calculate(events, 2)
	if len(got.DailyCompletions) != 1 {
		t.Fatalf("expected 1 active day, got %d", len(got.DailyCompletions))
	}
	if got.DailyCompletions[0].Percentage != 100 {
		t.Errorf("percentage = %v, want clamped 100", got.DailyCompletions[0].Percentage)
	}
}

func TestCalculateSkipsMalformedEvents(t *testing.T) {
	got := Calculate([]string{"2024-01-01", "garbage", ""}, 1)
	if len(got.DailyCompletions) != 1 {
		t.Fatalf("expected 1 active day, got %d", len(got.DailyCompletions))
	}
}

func TestCalculateAverageRounding(t *testing.T) {
	// 1/3 and 2/3 of 3 habits: (33.33 + 66.67) / 2 = 50.
	events := []string{"2024-01-01", "2024-01-02", "2024-01-02"}
	got := Calculate(events, 3)
	if got.WeeklyAverage != 50 {
		t.Errorf("WeeklyAverage = %d, want 50", got.WeeklyAverage)
	}
}
