package bolt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"cadence/internal/storage"
	"cadence/pkg/habit"
)

const (
	habitsBucket       = "habits"
	completionsBucket  = "completions"
	statsBucket        = "stats"
	achievementsBucket = "achievements"

	userStatsKey = "user"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, b := range []string{habitsBucket, completionsBucket, statsBucket, achievementsBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(b)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) PutHabit(h habit.Habit) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		val, err := json.Marshal(h)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(habitsBucket)).Put([]byte(h.ID), val)
	})
}

func (s *Store) GetHabit(id string) (habit.Habit, error) {
	var h habit.Habit
	err := s.db.View(func(tx *bbolt.Tx) error {
		val := tx.Bucket([]byte(habitsBucket)).Get([]byte(id))
		if val == nil {
			return storage.ErrNotFound
		}
		return json.Unmarshal(val, &h)
	})
	return h, err
}

func (s *Store) ListHabits(includeArchived bool) ([]habit.Habit, error) {
	var out []habit.Habit
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(habitsBucket)).ForEach(func(_, v []byte) error {
			var h habit.Habit
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}
			if h.Archived && !includeArchived {
				return nil
			}
			out = append(out, h)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *Store) ArchiveHabit(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(habitsBucket))
		val := bucket.Get([]byte(id))
		if val == nil {
			return storage.ErrNotFound
		}
		var h habit.Habit
		if err := json.Unmarshal(val, &h); err != nil {
			return err
		}
		h.Archived = true
		updated, err := json.Marshal(h)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(id), updated)
	})
}

// completionKey orders completions by habit then date within the bucket, so
// a habit's completions come back date-sorted from a prefix scan.
func completionKey(habitID, date string) []byte {
	return fmt.Appendf(nil, "%s/%s", habitID, date)
}

func (s *Store) PutCompletion(c habit.Completion) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(completionsBucket))
		key := completionKey(c.HabitID, c.Date)
		if bucket.Get(key) != nil {
			return storage.ErrDuplicateCompletion
		}
		val, err := json.Marshal(c)
		if err != nil {
			return err
		}
		return bucket.Put(key, val)
	})
}

func (s *Store) UpdateCompletionNotes(habitID, date, notes string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(completionsBucket))
		key := completionKey(habitID, date)
		val := bucket.Get(key)
		if val == nil {
			return storage.ErrNotFound
		}
		var c habit.Completion
		if err := json.Unmarshal(val, &c); err != nil {
			return err
		}
		c.Notes = notes
		updated, err := json.Marshal(c)
		if err != nil {
			return err
		}
		return bucket.Put(key, updated)
	})
}

func (s *Store) DeleteCompletion(habitID, date string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(completionsBucket)).Delete(completionKey(habitID, date))
	})
}

func (s *Store) GetCompletion(habitID, date string) (habit.Completion, error) {
	var c habit.Completion
	err := s.db.View(func(tx *bbolt.Tx) error {
		val := tx.Bucket([]byte(completionsBucket)).Get(completionKey(habitID, date))
		if val == nil {
			return storage.ErrNotFound
		}
		return json.Unmarshal(val, &c)
	})
	return c, err
}

func (s *Store) ListCompletions(habitID string) ([]habit.Completion, error) {
	var out []habit.Completion
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(completionsBucket)).Cursor()
		prefix := []byte(habitID + "/")
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var comp habit.Completion
			if err := json.Unmarshal(v, &comp); err != nil {
				return err
			}
			out = append(out, comp)
		}
		return nil
	})
	return out, err
}

func (s *Store) ListAllCompletions() ([]habit.Completion, error) {
	active := make(map[string]bool)
	habits, err := s.ListHabits(false)
	if err != nil {
		return nil, err
	}
	for _, h := range habits {
		active[h.ID] = true
	}

	var out []habit.Completion
	err = s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(completionsBucket)).ForEach(func(_, v []byte) error {
			var c habit.Completion
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			if active[c.HabitID] {
				out = append(out, c)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *Store) CountCompletions() (int, error) {
	count := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(completionsBucket)).Stats().KeyN
		return nil
	})
	return count, err
}

func (s *Store) CountDistinctHabitsOn(date string) (int, error) {
	habitsSeen := make(map[string]bool)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(completionsBucket)).ForEach(func(_, v []byte) error {
			var c habit.Completion
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			if c.Date == date {
				habitsSeen[c.HabitID] = true
			}
			return nil
		})
	})
	return len(habitsSeen), err
}

func (s *Store) GetUserStats() (habit.UserStats, error) {
	var stats habit.UserStats
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(statsBucket))
		val := bucket.Get([]byte(userStatsKey))
		if val != nil {
			return json.Unmarshal(val, &stats)
		}
		stats = habit.UserStats{TotalXP: 0, Level: 1, UpdatedAt: time.Now()}
		created, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(userStatsKey), created)
	})
	return stats, err
}

func (s *Store) PutUserStats(stats habit.UserStats) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		val, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(statsBucket)).Put([]byte(userStatsKey), val)
	})
}

func (s *Store) ListAchievements() ([]habit.UnlockedAchievement, error) {
	var out []habit.UnlockedAchievement
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(achievementsBucket)).ForEach(func(_, v []byte) error {
			var a habit.UnlockedAchievement
			if err := json.Unmarshal(v, &a); err != nil {
				return err
			}
			out = append(out, a)
			return nil
		})
	})
	return out, err
}

func (s *Store) PutAchievement(id string, unlockedAt time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(achievementsBucket))
		if bucket.Get([]byte(id)) != nil {
			return nil // already unlocked, keep the original timestamp
		}
		val, err := json.Marshal(habit.UnlockedAchievement{AchievementID: id, UnlockedAt: unlockedAt})
		if err != nil {
			return err
		}
		return bucket.Put([]byte(id), val)
	})
}

var _ storage.Store = (*Store)(nil)
