package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cadence/internal/stats"
	"cadence/pkg/habit"
)

func mockRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestCreateHabit(t *testing.T) {
	s := New(newMemStore())

	w := mockRequest(t, s, "POST", "/habits", CreateHabitRequest{Name: "Read", Frequency: habit.Daily})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := decode[CreateHabitResponse](t, w)
	if resp.Habit.ID == "" {
		t.Error("expected a generated habit ID")
	}
	if resp.Habit.Color != "#6366f1" || resp.Habit.Icon != "circle-check" {
		t.Errorf("expected display defaults, got %q / %q", resp.Habit.Color, resp.Habit.Icon)
	}

	// The first habit unlocks the creation achievement.
	found := false
	for _, a := range resp.AchievementsUnlocked {
		if a.ID == "habit-creator" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected habit-creator unlock, got %+v", resp.AchievementsUnlocked)
	}
}

func TestCreateHabitAssignsNextPosition(t *testing.T) {
	s := New(newMemStore())

	first := decode[CreateHabitResponse](t, mockRequest(t, s, "POST", "/habits",
		CreateHabitRequest{Name: "One", Frequency: habit.Daily}))
	second := decode[CreateHabitResponse](t, mockRequest(t, s, "POST", "/habits",
		CreateHabitRequest{Name: "Two", Frequency: habit.Daily}))

	if first.Habit.Position != 0 || second.Habit.Position != 1 {
		t.Errorf("expected positions 0 and 1, got %d and %d", first.Habit.Position, second.Habit.Position)
	}
}

func TestCreateHabitValidation(t *testing.T) {
	s := New(newMemStore())

	cases := []CreateHabitRequest{
		{Name: "", Frequency: habit.Daily},
		{Name: "X", Frequency: "fortnightly"},
		{Name: "X", Frequency: habit.Custom},                            // custom needs days
		{Name: "X", Frequency: habit.Daily, FrequencyDays: []int{1}},    // days only for custom
		{Name: "X", Frequency: habit.Custom, FrequencyDays: []int{9}},   // bad weekday index
	}
	for i, req := range cases {
		if w := mockRequest(t, s, "POST", "/habits", req); w.Code != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d", i, w.Code)
		}
	}
}

func TestListHabitsExcludesArchivedByDefault(t *testing.T) {
	store := newMemStore()
	store.habits["a"] = habit.Habit{ID: "a", Name: "Active"}
	store.habits["b"] = habit.Habit{ID: "b", Name: "Gone", Archived: true}
	s := New(store)

	resp := decode[HabitListResponse](t, mockRequest(t, s, "GET", "/habits", nil))
	if len(resp.Habits) != 1 || resp.Habits[0].ID != "a" {
		t.Errorf("expected only the active habit, got %+v", resp.Habits)
	}

	resp = decode[HabitListResponse](t, mockRequest(t, s, "GET", "/habits?include_archived=true", nil))
	if len(resp.Habits) != 2 {
		t.Errorf("expected both habits, got %+v", resp.Habits)
	}
}

func TestArchiveHabit(t *testing.T) {
	store := newMemStore()
	store.habits["a"] = habit.Habit{ID: "a"}
	s := New(store)

	if w := mockRequest(t, s, "DELETE", "/habits/a", nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if !store.habits["a"].Archived {
		t.Error("habit should be archived")
	}
	if w := mockRequest(t, s, "DELETE", "/habits/missing", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestToggleCompletionAwardsXP(t *testing.T) {
	store := newMemStore()
	store.habits["h1"] = habit.Habit{ID: "h1", Frequency: habit.Daily, CreatedAt: time.Now()}
	s := New(store)

	today := stats.FormatDay(time.Now())
	w := mockRequest(t, s, "POST", "/habits/h1/toggle", ToggleCompletionRequest{Date: today})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decode[ToggleCompletionResponse](t, w)
	if !resp.Completed || resp.Completion == nil {
		t.Fatalf("expected a recorded completion, got %+v", resp)
	}
	if resp.Gamification == nil {
		t.Fatal("expected gamification events")
	}
	// One-day streak: 10 base + 1×2 bonus.
	if resp.Gamification.XPGained != 12 {
		t.Errorf("expected 12 XP, got %d", resp.Gamification.XPGained)
	}

	found := false
	for _, a := range resp.Gamification.AchievementsUnlocked {
		if a.ID == "first-step" {
			found = true
		}
	}
	if !found {
		t.Errorf("first completion should unlock first-step, got %+v", resp.Gamification.AchievementsUnlocked)
	}
}

func TestToggleCompletionOffRemovesWithoutClawback(t *testing.T) {
	store := newMemStore()
	store.habits["h1"] = habit.Habit{ID: "h1", Frequency: habit.Daily, CreatedAt: time.Now()}
	s := New(store)

	today := stats.FormatDay(time.Now())
	mockRequest(t, s, "POST", "/habits/h1/toggle", ToggleCompletionRequest{Date: today})

	w := mockRequest(t, s, "POST", "/habits/h1/toggle", ToggleCompletionRequest{Date: today})
	resp := decode[ToggleCompletionResponse](t, w)
	if resp.Completed {
		t.Error("second toggle should remove the completion")
	}
	if resp.Gamification != nil {
		t.Error("uncompleting must not report gamification events")
	}

	// XP earned for the original completion stays earned.
	progress := decode[ProgressResponse](t, mockRequest(t, s, "GET", "/gamification/progress", nil))
	if progress.TotalXP != 12 {
		t.Errorf("expected XP to survive the uncomplete, got %d", progress.TotalXP)
	}
}

func TestToggleCompletionValidation(t *testing.T) {
	store := newMemStore()
	store.habits["h1"] = habit.Habit{ID: "h1", Frequency: habit.Daily, CreatedAt: time.Now()}
	s := New(store)

	if w := mockRequest(t, s, "POST", "/habits/h1/toggle", ToggleCompletionRequest{Date: "27-08-2026"}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad date, got %d", w.Code)
	}
	if w := mockRequest(t, s, "POST", "/habits/nope/toggle", ToggleCompletionRequest{Date: "2026-08-27"}); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown habit, got %d", w.Code)
	}
}

func TestToggleCompletionSurvivesGamificationFailure(t *testing.T) {
	store := newMemStore()
	store.habits["h1"] = habit.Habit{ID: "h1", Frequency: habit.Daily, CreatedAt: time.Now()}
	store.failOn["GetUserStats"] = errBroken
	s := New(store)

	today := stats.FormatDay(time.Now())
	w := mockRequest(t, s, "POST", "/habits/h1/toggle", ToggleCompletionRequest{Date: today})
	if w.Code != http.StatusOK {
		t.Fatalf("completion must stand despite gamification failure, got %d", w.Code)
	}

	resp := decode[ToggleCompletionResponse](t, w)
	if !resp.Completed {
		t.Error("expected the completion to be recorded")
	}
	if resp.Gamification != nil {
		t.Error("failed gamification should report no events")
	}
	if _, err := store.GetCompletion("h1", today); err != nil {
		t.Errorf("completion should be persisted, got %v", err)
	}
}

func TestUpdateCompletionNotes(t *testing.T) {
	store := newMemStore()
	store.habits["h1"] = habit.Habit{ID: "h1", Frequency: habit.Daily, CreatedAt: time.Now()}
	s := New(store)

	// No completion yet: the notes write creates one.
	w := mockRequest(t, s, "PUT", "/habits/h1/completions/2026-08-27/notes", UpdateNotesRequest{Notes: "felt great"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Second write updates in place.
	w = mockRequest(t, s, "PUT", "/habits/h1/completions/2026-08-27/notes", UpdateNotesRequest{Notes: "revised"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	c := decode[habit.Completion](t, w)
	if c.Notes != "revised" {
		t.Errorf("expected revised notes, got %q", c.Notes)
	}

	if w := mockRequest(t, s, "PUT", "/habits/h1/completions/bad-date/notes", UpdateNotesRequest{}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad date, got %d", w.Code)
	}
}

func TestGetHabitSummary(t *testing.T) {
	store := newMemStore()
	store.habits["h1"] = habit.Habit{ID: "h1", Frequency: habit.Daily, CreatedAt: stats.Day("2026-08-24")}
	for _, date := range []string{"2026-08-24", "2026-08-25", "2026-08-26"} {
		store.completions["h1/"+date] = habit.Completion{HabitID: "h1", Date: date}
	}
	s := New(store)

	w := mockRequest(t, s, "GET", "/habits/h1/summary?date=2026-08-27", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decode[HabitSummaryResponse](t, w)
	if resp.Streaks.CurrentStreak != 3 || resp.Streaks.BestStreak != 3 {
		t.Errorf("expected 3/3 streaks, got %+v", resp.Streaks)
	}
	if resp.RateAllTime.Completed != 3 || resp.RateAllTime.Expected != 4 {
		t.Errorf("expected 3/4 all-time, got %+v", resp.RateAllTime)
	}

	if w := mockRequest(t, s, "GET", "/habits/h1/summary?date=tomorrow", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad date, got %d", w.Code)
	}
}

func TestGetHeatmapReport(t *testing.T) {
	store := newMemStore()
	store.habits["h1"] = habit.Habit{ID: "h1", Frequency: habit.Daily, CreatedAt: stats.Day("2026-08-01")}
	store.completions["h1/2026-08-26"] = habit.Completion{HabitID: "h1", Date: "2026-08-26"}
	s := New(store)

	w := mockRequest(t, s, "GET", "/reports/heatmap?date=2026-08-27", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decode[HeatmapResponse](t, w)
	if len(resp.Days) != 365 {
		t.Errorf("expected 365 days, got %d", len(resp.Days))
	}
	if resp.MaxCount != 1 {
		t.Errorf("expected max count 1, got %d", resp.MaxCount)
	}
}

func TestReportWindowValidation(t *testing.T) {
	s := New(newMemStore())

	for _, path := range []string{
		"/reports/weekly?weeks=0",
		"/reports/monthly?months=-2",
		"/reports/trend?weeks=abc",
		"/reports/comparison?top=0",
		"/reports/weekday?days=x",
	} {
		if w := mockRequest(t, s, "GET", path, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestWeeklyReport(t *testing.T) {
	store := newMemStore()
	store.habits["h1"] = habit.Habit{ID: "h1", Name: "Read", Frequency: habit.Daily, CreatedAt: stats.Day("2026-08-17")}
	for _, date := range []string{"2026-08-24", "2026-08-25", "2026-08-26"} {
		store.completions["h1/"+date] = habit.Completion{HabitID: "h1", Date: date}
	}
	s := New(store)

	w := mockRequest(t, s, "GET", "/reports/weekly?weeks=2&date=2026-08-27", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decode[[]stats.WeeklySummary](t, w)
	if len(resp) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(resp))
	}
	if resp[0].TotalCompleted != 3 || resp[0].TotalExpected != 4 {
		t.Errorf("expected 3/4 current week, got %d/%d", resp[0].TotalCompleted, resp[0].TotalExpected)
	}
}

func TestComparisonReport(t *testing.T) {
	store := newMemStore()
	created := stats.Day("2026-07-01")
	store.habits["a"] = habit.Habit{ID: "a", Name: "Strong", Frequency: habit.Daily, CreatedAt: created}
	store.habits["b"] = habit.Habit{ID: "b", Name: "Weak", Frequency: habit.Daily, CreatedAt: created}
	for i := 0; i < 30; i++ {
		date := stats.FormatDay(stats.Day("2026-08-27").AddDate(0, 0, -i))
		store.completions["a/"+date] = habit.Completion{HabitID: "a", Date: date}
	}
	s := New(store)

	w := mockRequest(t, s, "GET", "/reports/comparison?top=1&date=2026-08-27", nil)
	resp := decode[ComparisonResponse](t, w)
	if len(resp.Best) != 1 || resp.Best[0].HabitID != "a" {
		t.Errorf("expected best = [a], got %+v", resp.Best)
	}
	if len(resp.Struggling) != 1 || resp.Struggling[0].HabitID != "b" {
		t.Errorf("expected struggling = [b], got %+v", resp.Struggling)
	}
}

func TestAchievementEndpoints(t *testing.T) {
	store := newMemStore()
	store.achievements["first-step"] = habit.UnlockedAchievement{
		AchievementID: "first-step",
		UnlockedAt:    time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}
	store.achievements["retired-id"] = habit.UnlockedAchievement{AchievementID: "retired-id"}
	s := New(store)

	resp := decode[AchievementListResponse](t, mockRequest(t, s, "GET", "/gamification/achievements", nil))
	if len(resp.Achievements) != 1 {
		t.Fatalf("expected 1 achievement (orphan skipped), got %d", len(resp.Achievements))
	}
	if resp.Achievements[0].Achievement.ID != "first-step" {
		t.Errorf("unexpected achievement: %+v", resp.Achievements[0])
	}

	catalog := decode[[]map[string]any](t, mockRequest(t, s, "GET", "/gamification/catalog", nil))
	if len(catalog) != 16 {
		t.Errorf("expected the full 16-entry catalog, got %d", len(catalog))
	}
}

func TestVersionEndpoint(t *testing.T) {
	s := New(newMemStore())
	w := mockRequest(t, s, "GET", "/version", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestLevelUpReported(t *testing.T) {
	store := newMemStore()
	store.habits["h1"] = habit.Habit{ID: "h1", Frequency: habit.Daily, CreatedAt: time.Now()}
	store.userStats = &habit.UserStats{TotalXP: 195, Level: 1, UpdatedAt: time.Now()}
	s := New(store)

	today := stats.FormatDay(time.Now())
	w := mockRequest(t, s, "POST", "/habits/h1/toggle", ToggleCompletionRequest{Date: today})
	resp := decode[ToggleCompletionResponse](t, w)
	if resp.Gamification == nil {
		t.Fatal("expected gamification events")
	}
	// 195 + 12 = 207 XP crosses the 200 XP threshold for level 2.
	if !resp.Gamification.LeveledUp || resp.Gamification.NewLevel != 2 || resp.Gamification.PreviousLevel != 1 {
		t.Errorf("expected level up 1 -> 2, got %+v", resp.Gamification)
	}
}
