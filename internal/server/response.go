package server

import (
	"time"

	"cadence/internal/gamification"
	"cadence/internal/stats"
	"cadence/pkg/habit"
)

type HabitListResponse struct {
	Habits []habit.Habit `json:"habits"`
}

type CreateHabitRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Frequency     habit.Frequency `json:"frequency"`
	FrequencyDays []int           `json:"frequency_days"`
	Color         string          `json:"color"`
	Icon          string          `json:"icon"`
}

type CreateHabitResponse struct {
	Habit                habit.Habit                          `json:"habit"`
	AchievementsUnlocked []gamification.AchievementDefinition `json:"achievements_unlocked"`
}

type HabitGetResponse struct {
	Habit       habit.Habit        `json:"habit"`
	Completions []habit.Completion `json:"completions"`
}

type HabitSummaryResponse struct {
	HabitID     string                     `json:"habit_id"`
	Streaks     stats.StreakResult         `json:"streaks"`
	RateWeek    stats.CompletionRateResult `json:"rate_week"`
	RateMonth   stats.CompletionRateResult `json:"rate_month"`
	RateAllTime stats.CompletionRateResult `json:"rate_all_time"`
}

type ToggleCompletionRequest struct {
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

type ToggleCompletionResponse struct {
	Completed  bool              `json:"completed"`
	Completion *habit.Completion `json:"completion,omitempty"`
	// Gamification is nil when the toggle removed a completion, and also
	// when gamification processing failed (the completion still stands).
	Gamification *gamification.Events `json:"gamification,omitempty"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

type HeatmapResponse struct {
	Days     []stats.HeatmapDay `json:"days"`
	MaxCount int                `json:"max_count"`
}

type ComparisonResponse struct {
	Best       []stats.HabitComparisonItem `json:"best"`
	Struggling []stats.HabitComparisonItem `json:"struggling"`
}

type ProgressResponse struct {
	TotalXP  int                     `json:"total_xp"`
	Progress gamification.XPProgress `json:"progress"`
}

type UnlockedAchievementResponse struct {
	Achievement gamification.AchievementDefinition `json:"achievement"`
	UnlockedAt  time.Time                          `json:"unlocked_at"`
}

type AchievementListResponse struct {
	Achievements []UnlockedAchievementResponse `json:"achievements"`
}
