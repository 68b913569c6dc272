package habit

import "time"

// Frequency describes how often a habit is expected to be completed.
type Frequency string

const (
	Daily  Frequency = "daily"
	Weekly Frequency = "weekly"
	Custom Frequency = "custom"
)

// Valid reports whether f is one of the known frequency tags.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Custom:
		return true
	}
	return false
}

type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   Frequency `json:"frequency"`
	// FrequencyDays holds weekday indices (0=Sunday..6=Saturday) and is only
	// meaningful when Frequency is Custom.
	FrequencyDays []int     `json:"frequency_days,omitempty"`
	Color         string    `json:"color"`
	Icon          string    `json:"icon"`
	Position      int       `json:"position"`
	Archived      bool      `json:"archived"`
	CreatedAt     time.Time `json:"created_at"`
}

// Completion records that a habit was done on a calendar date. Date is a
// "YYYY-MM-DD" string with no time component; at most one completion exists
// per (HabitID, Date) pair.
type Completion struct {
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStats is the single gamification state row. TotalXP only ever grows.
type UserStats struct {
	TotalXP   int       `json:"total_xp"`
	Level     int       `json:"level"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UnlockedAchievement struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}
