// Package gamification holds the XP formula, the level curve and the
// achievement catalog. Everything here is a pure function over its inputs;
// persistence of XP and unlocks belongs to the caller.
package gamification

import "math"

const (
	// XPPerCompletion is the base XP for completing any habit.
	XPPerCompletion = 10
	// StreakBonusMultiplier scales the bonus XP per day of streak.
	StreakBonusMultiplier = 2
	// MaxLevel caps the level curve.
	MaxLevel = 50
)

// XPForCompletion returns the XP awarded for a single completion: base XP
// plus a bonus proportional to the habit's resulting streak length, so
// longer streaks earn more.
func XPForCompletion(streakLength int) int {
	return XPPerCompletion + max(0, streakLength)*StreakBonusMultiplier
}

// XPForLevel returns the total XP needed to reach a level: level² × 50.
// Level 1 is the starting level and costs nothing.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return level * level * 50
}

// LevelForXP returns the level for a total XP amount, scanning upward from 1.
// Non-decreasing in totalXP, capped at MaxLevel.
func LevelForXP(totalXP int) int {
	level := 1
	for level < MaxLevel && totalXP >= XPForLevel(level+1) {
		level++
	}
	return level
}

// XPProgress projects a total XP amount onto the level curve for display.
type XPProgress struct {
	Level           int  `json:"level"`
	CurrentLevelXP  int  `json:"current_level_xp"`
	NextLevelXP     int  `json:"next_level_xp"`
	XPIntoLevel     int  `json:"xp_into_level"`
	XPNeededForNext int  `json:"xp_needed_for_next"`
	ProgressPercent int  `json:"progress_percent"`
	IsMaxLevel      bool `json:"is_max_level"`
}

func Progress(totalXP int) XPProgress {
	level := LevelForXP(totalXP)
	currentLevelXP := XPForLevel(level)
	nextLevelXP := currentLevelXP
	if level < MaxLevel {
		nextLevelXP = XPForLevel(level + 1)
	}
	xpIntoLevel := totalXP - currentLevelXP
	xpNeeded := nextLevelXP - currentLevelXP
	isMax := level >= MaxLevel

	percent := 100
	if !isMax && xpNeeded > 0 {
		percent = int(math.Min(100, math.Round(float64(xpIntoLevel)/float64(xpNeeded)*100)))
	}

	return XPProgress{
		Level:           level,
		CurrentLevelXP:  currentLevelXP,
		NextLevelXP:     nextLevelXP,
		XPIntoLevel:     xpIntoLevel,
		XPNeededForNext: xpNeeded,
		ProgressPercent: percent,
		IsMaxLevel:      isMax,
	}
}
