package stats

import (
	"testing"

	"cadence/pkg/habit"
)

func TestCompletionRateDaily(t *testing.T) {
	h := dailyHabit("2026-08-01")
	dates := []string{"2026-08-21", "2026-08-23", "2026-08-25", "2026-08-27"}

	got := CompletionRate(h, dates, 7, Day("2026-08-27"))
	if got.Completed != 4 || got.Expected != 7 {
		t.Fatalf("expected 4/7, got %d/%d", got.Completed, got.Expected)
	}
	if got.Percentage != 57 {
		t.Errorf("expected 57%%, got %d%%", got.Percentage)
	}
}

func TestCompletionRateWindowClippedToCreation(t *testing.T) {
	h := dailyHabit("2026-08-25")
	dates := []string{"2026-08-25", "2026-08-26"}

	// 7-day window, but the habit is only 3 days old.
	got := CompletionRate(h, dates, 7, Day("2026-08-27"))
	if got.Expected != 3 {
		t.Fatalf("expected window of 3 days, got %d", got.Expected)
	}
	if got.Completed != 2 {
		t.Errorf("expected 2 completed, got %d", got.Completed)
	}
}

func TestCompletionRateClampedAt100(t *testing.T) {
	// Monday-only habit with completions on off-schedule days, e.g. after the
	// schedule was edited. More completions than expected must not exceed 100%.
	h := habit.Habit{
		Frequency:     habit.Custom,
		FrequencyDays: []int{1},
		CreatedAt:     Day("2026-08-01"),
	}
	dates := []string{"2026-08-24", "2026-08-25", "2026-08-26"}

	got := CompletionRate(h, dates, 3, Day("2026-08-26"))
	if got.Expected != 1 || got.Completed != 3 {
		t.Fatalf("expected 3/1 raw counts, got %d/%d", got.Completed, got.Expected)
	}
	if got.Rate != 1 || got.Percentage != 100 {
		t.Errorf("rate must clamp to 100%%, got %v / %d%%", got.Rate, got.Percentage)
	}
}

func TestCompletionRateWeekly(t *testing.T) {
	h := habit.Habit{Frequency: habit.Weekly, CreatedAt: Day("2026-08-01")}
	// 14-day window back from Aug 26 overlaps the weeks of Aug 10, 17, 24.
	dates := []string{"2026-08-14", "2026-08-19"}

	got := CompletionRate(h, dates, 14, Day("2026-08-26"))
	if got.Expected != 3 || got.Completed != 2 {
		t.Fatalf("expected 2/3, got %d/%d", got.Completed, got.Expected)
	}
	if got.Percentage != 67 {
		t.Errorf("expected 67%%, got %d%%", got.Percentage)
	}
}

func TestCompletionRateWeeklyCountsWeeksNotCompletions(t *testing.T) {
	h := habit.Habit{Frequency: habit.Weekly, CreatedAt: Day("2026-08-17")}
	dates := []string{"2026-08-24", "2026-08-25", "2026-08-26"}

	got := CompletionRate(h, dates, 7, Day("2026-08-27"))
	if got.Completed != 1 {
		t.Errorf("three completions in one week count once, got %d", got.Completed)
	}
}

func TestCompletionRateAllTime(t *testing.T) {
	h := dailyHabit("2026-08-24")
	dates := []string{"2026-08-24", "2026-08-25"}

	got := CompletionRate(h, dates, AllTime, Day("2026-08-27"))
	if got.Expected != 4 || got.Completed != 2 {
		t.Fatalf("expected 2/4, got %d/%d", got.Completed, got.Expected)
	}
	if got.Percentage != 50 {
		t.Errorf("expected 50%%, got %d%%", got.Percentage)
	}
}

func TestCompletionRateNoExpectedDays(t *testing.T) {
	h := habit.Habit{Frequency: habit.Custom, CreatedAt: Day("2026-08-01")}
	got := CompletionRate(h, nil, 30, Day("2026-08-27"))
	if got.Expected != 0 || got.Rate != 0 || got.Percentage != 0 {
		t.Errorf("expected all-zero result, got %+v", got)
	}
}

func TestCompletionRateInvalidWindowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero-day window")
		}
	}()
	CompletionRate(dailyHabit("2026-08-01"), nil, 0, Day("2026-08-27"))
}
