package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"cadence/internal/storage"
	"cadence/pkg/habit"
)

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	frequency      TEXT NOT NULL,
	frequency_days TEXT NOT NULL DEFAULT '[]',
	color          TEXT NOT NULL DEFAULT '',
	icon           TEXT NOT NULL DEFAULT '',
	position       INTEGER NOT NULL DEFAULT 0,
	archived       INTEGER NOT NULL DEFAULT 0,
	created_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS completions (
	habit_id   TEXT NOT NULL REFERENCES habits(id),
	date       TEXT NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	PRIMARY KEY (habit_id, date)
);
CREATE INDEX IF NOT EXISTS completions_date_idx ON completions(date);

CREATE TABLE IF NOT EXISTS user_stats (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	total_xp   INTEGER NOT NULL DEFAULT 0,
	level      INTEGER NOT NULL DEFAULT 1,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS achievements (
	achievement_id TEXT PRIMARY KEY,
	unlocked_at    TEXT NOT NULL
);
`

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) PutHabit(h habit.Habit) error {
	days, err := json.Marshal(h.FrequencyDays)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO habits (id, name, description, frequency, frequency_days, color, icon, position, archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			frequency = excluded.frequency,
			frequency_days = excluded.frequency_days,
			color = excluded.color,
			icon = excluded.icon,
			position = excluded.position,
			archived = excluded.archived`,
		h.ID, h.Name, h.Description, string(h.Frequency), string(days),
		h.Color, h.Icon, h.Position, boolToInt(h.Archived), h.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetHabit(id string) (habit.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, frequency, frequency_days, color, icon, position, archived, created_at
		FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return habit.Habit{}, storage.ErrNotFound
	}
	return h, err
}

func (s *Store) ListHabits(includeArchived bool) ([]habit.Habit, error) {
	query := `
		SELECT id, name, description, frequency, frequency_days, color, icon, position, archived, created_at
		FROM habits`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY position`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []habit.Habit
	for rows.Next() {
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) ArchiveHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET archived = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) PutCompletion(c habit.Completion) error {
	_, err := s.db.Exec(`
		INSERT INTO completions (habit_id, date, notes, created_at) VALUES (?, ?, ?, ?)`,
		c.HabitID, c.Date, c.Notes, c.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil && isUniqueViolation(err) {
		return storage.ErrDuplicateCompletion
	}
	return err
}

func (s *Store) UpdateCompletionNotes(habitID, date, notes string) error {
	res, err := s.db.Exec(`UPDATE completions SET notes = ? WHERE habit_id = ? AND date = ?`, notes, habitID, date)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCompletion(habitID, date string) error {
	_, err := s.db.Exec(`DELETE FROM completions WHERE habit_id = ? AND date = ?`, habitID, date)
	return err
}

func (s *Store) GetCompletion(habitID, date string) (habit.Completion, error) {
	row := s.db.QueryRow(`
		SELECT habit_id, date, notes, created_at FROM completions WHERE habit_id = ? AND date = ?`,
		habitID, date)
	c, err := scanCompletion(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return habit.Completion{}, storage.ErrNotFound
	}
	return c, err
}

func (s *Store) ListCompletions(habitID string) ([]habit.Completion, error) {
	rows, err := s.db.Query(`
		SELECT habit_id, date, notes, created_at FROM completions
		WHERE habit_id = ? ORDER BY date`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCompletions(rows)
}

func (s *Store) ListAllCompletions() ([]habit.Completion, error) {
	rows, err := s.db.Query(`
		SELECT c.habit_id, c.date, c.notes, c.created_at
		FROM completions c
		JOIN habits h ON h.id = c.habit_id
		WHERE h.archived = 0
		ORDER BY c.date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCompletions(rows)
}

func (s *Store) CountCompletions() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT count(*) FROM completions`).Scan(&n)
	return n, err
}

func (s *Store) CountDistinctHabitsOn(date string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT count(DISTINCT habit_id) FROM completions WHERE date = ?`, date).Scan(&n)
	return n, err
}

func (s *Store) GetUserStats() (habit.UserStats, error) {
	var stats habit.UserStats
	var updatedAt string
	err := s.db.QueryRow(`SELECT total_xp, level, updated_at FROM user_stats WHERE id = 1`).
		Scan(&stats.TotalXP, &stats.Level, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		stats = habit.UserStats{TotalXP: 0, Level: 1, UpdatedAt: time.Now()}
		_, err = s.db.Exec(`INSERT INTO user_stats (id, total_xp, level, updated_at) VALUES (1, 0, 1, ?)`,
			stats.UpdatedAt.UTC().Format(time.RFC3339))
		return stats, err
	}
	if err != nil {
		return habit.UserStats{}, err
	}
	stats.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return habit.UserStats{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return stats, nil
}

func (s *Store) PutUserStats(stats habit.UserStats) error {
	_, err := s.db.Exec(`
		INSERT INTO user_stats (id, total_xp, level, updated_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			total_xp = excluded.total_xp,
			level = excluded.level,
			updated_at = excluded.updated_at`,
		stats.TotalXP, stats.Level, stats.UpdatedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *Store) ListAchievements() ([]habit.UnlockedAchievement, error) {
	rows, err := s.db.Query(`SELECT achievement_id, unlocked_at FROM achievements`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []habit.UnlockedAchievement
	for rows.Next() {
		var a habit.UnlockedAchievement
		var unlockedAt string
		if err := rows.Scan(&a.AchievementID, &unlockedAt); err != nil {
			return nil, err
		}
		a.UnlockedAt, err = time.Parse(time.RFC3339, unlockedAt)
		if err != nil {
			return nil, fmt.Errorf("parse unlocked_at: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) PutAchievement(id string, unlockedAt time.Time) error {
	// OR IGNORE keeps the unlock idempotent with the original timestamp.
	_, err := s.db.Exec(`INSERT OR IGNORE INTO achievements (achievement_id, unlocked_at) VALUES (?, ?)`,
		id, unlockedAt.UTC().Format(time.RFC3339))
	return err
}

func scanHabit(scan func(dest ...any) error) (habit.Habit, error) {
	var h habit.Habit
	var days, createdAt string
	var archived int
	err := scan(&h.ID, &h.Name, &h.Description, (*string)(&h.Frequency), &days,
		&h.Color, &h.Icon, &h.Position, &archived, &createdAt)
	if err != nil {
		return habit.Habit{}, err
	}
	if err := json.Unmarshal([]byte(days), &h.FrequencyDays); err != nil {
		return habit.Habit{}, fmt.Errorf("parse frequency_days: %w", err)
	}
	h.Archived = archived != 0
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return habit.Habit{}, fmt.Errorf("parse created_at: %w", err)
	}
	return h, nil
}

func scanCompletion(scan func(dest ...any) error) (habit.Completion, error) {
	var c habit.Completion
	var createdAt string
	err := scan(&c.HabitID, &c.Date, &c.Notes, &createdAt)
	if err != nil {
		return habit.Completion{}, err
	}
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return habit.Completion{}, fmt.Errorf("parse created_at: %w", err)
	}
	return c, nil
}

func collectCompletions(rows *sql.Rows) ([]habit.Completion, error) {
	var out []habit.Completion
	for rows.Next() {
		c, err := scanCompletion(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite surfaces SQLITE_CONSTRAINT in the error text.
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ storage.Store = (*Store)(nil)
