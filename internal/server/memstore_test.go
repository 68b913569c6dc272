package server

import (
	"errors"
	"sort"
	"time"

	"cadence/internal/storage"
	"cadence/pkg/habit"
)

// memStore is an in-memory Store double for handler tests. failOn lets a test
// break a single method to exercise error paths.
type memStore struct {
	habits       map[string]habit.Habit
	completions  map[string]habit.Completion // keyed habitID + "/" + date
	userStats    *habit.UserStats
	achievements map[string]habit.UnlockedAchievement

	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		habits:       make(map[string]habit.Habit),
		completions:  make(map[string]habit.Completion),
		achievements: make(map[string]habit.UnlockedAchievement),
		failOn:       make(map[string]error),
	}
}

func (m *memStore) fail(method string) error {
	return m.failOn[method]
}

func (m *memStore) PutHabit(h habit.Habit) error {
	if err := m.fail("PutHabit"); err != nil {
		return err
	}
	m.habits[h.ID] = h
	return nil
}

func (m *memStore) GetHabit(id string) (habit.Habit, error) {
	if err := m.fail("GetHabit"); err != nil {
		return habit.Habit{}, err
	}
	h, ok := m.habits[id]
	if !ok {
		return habit.Habit{}, storage.ErrNotFound
	}
	return h, nil
}

func (m *memStore) ListHabits(includeArchived bool) ([]habit.Habit, error) {
	if err := m.fail("ListHabits"); err != nil {
		return nil, err
	}
	var out []habit.Habit
	for _, h := range m.habits {
		if h.Archived && !includeArchived {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memStore) ArchiveHabit(id string) error {
	h, ok := m.habits[id]
	if !ok {
		return storage.ErrNotFound
	}
	h.Archived = true
	m.habits[id] = h
	return nil
}

func (m *memStore) PutCompletion(c habit.Completion) error {
	if err := m.fail("PutCompletion"); err != nil {
		return err
	}
	key := c.HabitID + "/" + c.Date
	if _, exists := m.completions[key]; exists {
		return storage.ErrDuplicateCompletion
	}
	m.completions[key] = c
	return nil
}

func (m *memStore) DeleteCompletion(habitID, date string) error {
	delete(m.completions, habitID+"/"+date)
	return nil
}

func (m *memStore) GetCompletion(habitID, date string) (habit.Completion, error) {
	c, ok := m.completions[habitID+"/"+date]
	if !ok {
		return habit.Completion{}, storage.ErrNotFound
	}
	return c, nil
}

func (m *memStore) UpdateCompletionNotes(habitID, date, notes string) error {
	key := habitID + "/" + date
	c, ok := m.completions[key]
	if !ok {
		return storage.ErrNotFound
	}
	c.Notes = notes
	m.completions[key] = c
	return nil
}

func (m *memStore) ListCompletions(habitID string) ([]habit.Completion, error) {
	var out []habit.Completion
	for _, c := range m.completions {
		if c.HabitID == habitID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *memStore) ListAllCompletions() ([]habit.Completion, error) {
	if err := m.fail("ListAllCompletions"); err != nil {
		return nil, err
	}
	var out []habit.Completion
	for _, c := range m.completions {
		if h, ok := m.habits[c.HabitID]; ok && !h.Archived {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *memStore) CountCompletions() (int, error) {
	return len(m.completions), nil
}

func (m *memStore) CountDistinctHabitsOn(date string) (int, error) {
	seen := make(map[string]bool)
	for _, c := range m.completions {
		if c.Date == date {
			seen[c.HabitID] = true
		}
	}
	return len(seen), nil
}

func (m *memStore) GetUserStats() (habit.UserStats, error) {
	if err := m.fail("GetUserStats"); err != nil {
		return habit.UserStats{}, err
	}
	if m.userStats == nil {
		m.userStats = &habit.UserStats{TotalXP: 0, Level: 1, UpdatedAt: time.Now()}
	}
	return *m.userStats, nil
}

func (m *memStore) PutUserStats(s habit.UserStats) error {
	m.userStats = &s
	return nil
}

func (m *memStore) ListAchievements() ([]habit.UnlockedAchievement, error) {
	if err := m.fail("ListAchievements"); err != nil {
		return nil, err
	}
	var out []habit.UnlockedAchievement
	for _, a := range m.achievements {
		out = append(out, a)
	}
	return out, nil
}

func (m *memStore) PutAchievement(id string, unlockedAt time.Time) error {
	if _, exists := m.achievements[id]; exists {
		return nil
	}
	m.achievements[id] = habit.UnlockedAchievement{AchievementID: id, UnlockedAt: unlockedAt}
	return nil
}

func (m *memStore) Close() error { return nil }

var _ storage.Store = (*memStore)(nil)

var errBroken = errors.New("store broken")
