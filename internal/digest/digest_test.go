package digest

import (
	"path/filepath"
	"testing"

	"cadence/internal/stats"
	"cadence/internal/storage/bolt"
	"cadence/pkg/habit"
)

type mockNotifier struct {
	sent []Digest
}

func (m *mockNotifier) SendDigest(d Digest) error {
	m.sent = append(m.sent, d)
	return nil
}

func seededStore(t *testing.T) *bolt.Store {
	t.Helper()
	s, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	h := habit.Habit{ID: "h1", Name: "Read", Frequency: habit.Daily, CreatedAt: stats.Day("2026-08-24")}
	if err := s.PutHabit(h); err != nil {
		t.Fatal(err)
	}
	for _, date := range []string{"2026-08-24", "2026-08-25", "2026-08-26"} {
		if err := s.PutCompletion(habit.Completion{HabitID: "h1", Date: date}); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestBuild(t *testing.T) {
	s := seededStore(t)

	d, err := Build(s, 2, stats.Day("2026-08-27"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(d.Weeks) != 2 {
		t.Fatalf("expected 2 weekly rows, got %d", len(d.Weeks))
	}
	if d.Weeks[0].TotalCompleted != 3 {
		t.Errorf("expected 3 completions this week, got %d", d.Weeks[0].TotalCompleted)
	}

	if len(d.Highlights) != 1 {
		t.Fatalf("expected 1 streak highlight, got %d", len(d.Highlights))
	}
	hl := d.Highlights[0]
	if hl.HabitName != "Read" || hl.CurrentStreak != 3 {
		t.Errorf("unexpected highlight: %+v", hl)
	}
}

func TestBuildSkipsStreaklessHabits(t *testing.T) {
	s := seededStore(t)
	if err := s.PutHabit(habit.Habit{ID: "h2", Name: "Idle", Frequency: habit.Daily, CreatedAt: stats.Day("2026-08-24")}); err != nil {
		t.Fatal(err)
	}

	d, err := Build(s, 1, stats.Day("2026-08-27"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(d.Highlights) != 1 {
		t.Errorf("habit with no completions should not be highlighted, got %+v", d.Highlights)
	}
}

func TestSend(t *testing.T) {
	s := seededStore(t)
	n := &mockNotifier{}

	if err := Send(s, n, 1, stats.Day("2026-08-27")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(n.sent) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(n.sent))
	}
	if len(n.sent[0].Weeks) != 1 {
		t.Errorf("expected 1 weekly row in the delivered digest, got %d", len(n.sent[0].Weeks))
	}
}
