// Package digest builds a periodic email summary of habit progress from a
// storage snapshot: the last few weekly report rows plus current streak
// highlights.
package digest

import (
	"fmt"
	"time"

	"cadence/internal/stats"
	"cadence/internal/storage"
)

type StreakHighlight struct {
	HabitName     string
	CurrentStreak int
	BestStreak    int
}

type Digest struct {
	Generated  time.Time
	Weeks      []stats.WeeklySummary
	Highlights []StreakHighlight
}

// Notifier delivers a rendered digest. The resend subpackage provides the
// production implementation.
type Notifier interface {
	SendDigest(d Digest) error
}

// Build assembles a digest covering the last `weeks` weeks as of now.
func Build(store storage.Store, weeks int, now time.Time) (Digest, error) {
	if weeks < 1 {
		weeks = 1
	}

	habits, err := store.ListHabits(false)
	if err != nil {
		return Digest{}, fmt.Errorf("list habits: %w", err)
	}
	completions, err := store.ListAllCompletions()
	if err != nil {
		return Digest{}, fmt.Errorf("list completions: %w", err)
	}

	d := Digest{
		Generated: now,
		Weeks:     stats.GenerateWeeklySummaries(habits, completions, weeks, now),
	}

	byHabit := make(map[string][]string)
	for _, c := range completions {
		byHabit[c.HabitID] = append(byHabit[c.HabitID], c.Date)
	}
	for _, h := range habits {
		streaks := stats.CalculateStreaks(h, byHabit[h.ID], now)
		if streaks.CurrentStreak == 0 && streaks.BestStreak == 0 {
			continue
		}
		d.Highlights = append(d.Highlights, StreakHighlight{
			HabitName:     h.Name,
			CurrentStreak: streaks.CurrentStreak,
			BestStreak:    streaks.BestStreak,
		})
	}

	return d, nil
}

// Send builds and delivers the digest in one step.
func Send(store storage.Store, n Notifier, weeks int, now time.Time) error {
	d, err := Build(store, weeks, now)
	if err != nil {
		return err
	}
	return n.SendDigest(d)
}
