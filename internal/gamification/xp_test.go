package gamification

import "testing"

func TestXPForCompletion(t *testing.T) {
	cases := []struct {
		streak, want int
	}{
		{0, 10},
		{1, 12},
		{5, 20},
		{30, 70},
		{-3, 10}, // negative streaks never subtract
	}
	for _, c := range cases {
		if got := XPForCompletion(c.streak); got != c.want {
			t.Errorf("XPForCompletion(%d) = %d, want %d", c.streak, got, c.want)
		}
	}
}

func TestXPForLevel(t *testing.T) {
	cases := []struct {
		level, want int
	}{
		{0, 0},
		{1, 0},
		{2, 200},
		{3, 450},
		{5, 1250},
		{10, 5000},
	}
	for _, c := range cases {
		if got := XPForLevel(c.level); got != c.want {
			t.Errorf("XPForLevel(%d) = %d, want %d", c.level, got, c.want)
		}
	}
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp, want int
	}{
		{0, 1},
		{199, 1},
		{200, 2},
		{449, 2},
		{450, 3},
		{5000, 10},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestLevelForXPNeverDecreases(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 20000; xp += 50 {
		level := LevelForXP(xp)
		if level < prev {
			t.Fatalf("level dropped from %d to %d at %d XP", prev, level, xp)
		}
		prev = level
	}
}

func TestLevelForXPCapsAtMaxLevel(t *testing.T) {
	huge := XPForLevel(MaxLevel) * 10
	if got := LevelForXP(huge); got != MaxLevel {
		t.Errorf("expected cap at %d, got %d", MaxLevel, got)
	}
}

func TestProgress(t *testing.T) {
	// 300 XP: level 2 (200) earned, 250 of it needed for level 3 (450).
	p := Progress(300)
	if p.Level != 2 {
		t.Fatalf("expected level 2, got %d", p.Level)
	}
	if p.XPIntoLevel != 100 || p.XPNeededForNext != 250 {
		t.Errorf("expected 100 into / 250 needed, got %d/%d", p.XPIntoLevel, p.XPNeededForNext)
	}
	if p.ProgressPercent != 40 {
		t.Errorf("expected 40%%, got %d%%", p.ProgressPercent)
	}
	if p.IsMaxLevel {
		t.Error("level 2 is not max level")
	}
}

func TestProgressAtMaxLevel(t *testing.T) {
	p := Progress(XPForLevel(MaxLevel))
	if !p.IsMaxLevel || p.Level != MaxLevel {
		t.Fatalf("expected max level, got %+v", p)
	}
	if p.ProgressPercent != 100 {
		t.Errorf("max level should report 100%%, got %d%%", p.ProgressPercent)
	}
}
