package storage

import (
	"errors"
	"time"

	"cadence/pkg/habit"
)

// ErrDuplicateCompletion is returned by PutCompletion when a completion
// already exists for the same habit and date.
var ErrDuplicateCompletion = errors.New("completion already exists for this date")

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence boundary. The stats and gamification engines never
// touch it directly; handlers fetch a snapshot, compute, and write back.
type Store interface {
	PutHabit(h habit.Habit) error
	GetHabit(id string) (habit.Habit, error)
	ListHabits(includeArchived bool) ([]habit.Habit, error)
	ArchiveHabit(id string) error

	// PutCompletion inserts a completion; at most one may exist per
	// (HabitID, Date), enforced with ErrDuplicateCompletion.
	PutCompletion(c habit.Completion) error
	DeleteCompletion(habitID, date string) error
	GetCompletion(habitID, date string) (habit.Completion, error)
	// UpdateCompletionNotes replaces the notes on an existing completion.
	UpdateCompletionNotes(habitID, date, notes string) error
	// ListCompletions returns a habit's completions sorted ascending by date.
	ListCompletions(habitID string) ([]habit.Completion, error)
	// ListAllCompletions returns completions of all non-archived habits,
	// sorted ascending by date.
	ListAllCompletions() ([]habit.Completion, error)
	CountCompletions() (int, error)
	// CountDistinctHabitsOn counts how many different habits have a
	// completion on the given date.
	CountDistinctHabitsOn(date string) (int, error)

	// GetUserStats lazily creates the single stats row (0 XP, level 1).
	GetUserStats() (habit.UserStats, error)
	PutUserStats(s habit.UserStats) error

	ListAchievements() ([]habit.UnlockedAchievement, error)
	// PutAchievement unlocks an achievement at most once; unlocking an
	// already-unlocked ID is a no-op, never an error.
	PutAchievement(id string, unlockedAt time.Time) error

	Close() error
}
