package server

import (
	"fmt"
	"time"

	"cadence/internal/gamification"
	"cadence/internal/logger"
	"cadence/internal/stats"
)

// processCompletionGamification runs the full XP/level/achievement pipeline
// after a completion has been persisted. It never fails the caller: any
// error is logged and a nil events pointer returned, so the completion
// stands and the UI simply shows no celebration this time.
func (s *Server) processCompletionGamification(habitID, date string) *gamification.Events {
	events, err := s.completionGamification(habitID, date)
	if err != nil {
		logger.Error("Gamification processing failed", "habit_id", habitID, "date", date, "error", err)
		return nil
	}
	return events
}

func (s *Server) completionGamification(habitID, date string) (*gamification.Events, error) {
	userStats, err := s.store.GetUserStats()
	if err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}

	h, err := s.store.GetHabit(habitID)
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	completions, err := s.store.ListCompletions(habitID)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	// The streak includes the completion just recorded, so XP scales with
	// the streak the user has now earned.
	streaks := stats.CalculateStreaks(h, completionDates(completions), time.Now())
	xpGained := gamification.XPForCompletion(streaks.CurrentStreak)

	previousLevel := userStats.Level
	userStats.TotalXP += xpGained
	userStats.Level = gamification.LevelForXP(userStats.TotalXP)
	userStats.UpdatedAt = time.Now()
	if err := s.store.PutUserStats(userStats); err != nil {
		return nil, fmt.Errorf("put user stats: %w", err)
	}
	xpAwarded.Add(float64(xpGained))

	ctx, err := s.achievementContext(streaks, date, userStats.Level)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.unlockAchievements(gamification.CheckAchievements(ctx))
	if err != nil {
		return nil, err
	}

	return &gamification.Events{
		XPGained:             xpGained,
		NewTotalXP:           userStats.TotalXP,
		NewLevel:             userStats.Level,
		LeveledUp:            userStats.Level > previousLevel,
		PreviousLevel:        previousLevel,
		AchievementsUnlocked: unlocked,
	}, nil
}

// processCreationGamification re-evaluates only the variety-by-count
// achievements; a creation event carries no completion or streak context.
// Best-effort like the completion path.
func (s *Server) processCreationGamification() []gamification.AchievementDefinition {
	unlockedIDs, err := s.alreadyUnlocked()
	if err != nil {
		logger.Error("Gamification processing failed", "error", err)
		return []gamification.AchievementDefinition{}
	}
	habits, err := s.store.ListHabits(false)
	if err != nil {
		logger.Error("Gamification processing failed", "error", err)
		return []gamification.AchievementDefinition{}
	}

	ctx := gamification.CheckContext{
		AlreadyUnlocked:    unlockedIDs,
		TotalHabitsCreated: len(habits),
		NewLevel:           1,
	}

	var creationIDs []string
	for _, id := range gamification.CheckAchievements(ctx) {
		if gamification.CreationAchievementIDs[id] {
			creationIDs = append(creationIDs, id)
		}
	}

	unlocked, err := s.unlockAchievements(creationIDs)
	if err != nil {
		logger.Error("Gamification processing failed", "error", err)
		return []gamification.AchievementDefinition{}
	}
	return unlocked
}

func (s *Server) achievementContext(streaks stats.StreakResult, date string, newLevel int) (gamification.CheckContext, error) {
	unlockedIDs, err := s.alreadyUnlocked()
	if err != nil {
		return gamification.CheckContext{}, err
	}
	totalCompletions, err := s.store.CountCompletions()
	if err != nil {
		return gamification.CheckContext{}, fmt.Errorf("count completions: %w", err)
	}
	habits, err := s.store.ListHabits(false)
	if err != nil {
		return gamification.CheckContext{}, fmt.Errorf("list habits: %w", err)
	}
	distinctToday, err := s.store.CountDistinctHabitsOn(date)
	if err != nil {
		return gamification.CheckContext{}, fmt.Errorf("count distinct habits: %w", err)
	}

	return gamification.CheckContext{
		AlreadyUnlocked:              unlockedIDs,
		TotalCompletions:             totalCompletions,
		BestStreak:                   streaks.BestStreak,
		CurrentStreak:                streaks.CurrentStreak,
		TotalHabitsCreated:           len(habits),
		DistinctHabitsCompletedToday: distinctToday,
		NewLevel:                     newLevel,
	}, nil
}

func (s *Server) alreadyUnlocked() (map[string]bool, error) {
	unlocked, err := s.store.ListAchievements()
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	ids := make(map[string]bool, len(unlocked))
	for _, a := range unlocked {
		ids[a.AchievementID] = true
	}
	return ids, nil
}

func (s *Server) unlockAchievements(ids []string) ([]gamification.AchievementDefinition, error) {
	unlocked := []gamification.AchievementDefinition{}
	now := time.Now()
	for _, id := range ids {
		def, ok := gamification.Lookup(id)
		if !ok {
			continue
		}
		if err := s.store.PutAchievement(id, now); err != nil {
			return nil, fmt.Errorf("unlock achievement %s: %w", id, err)
		}
		achievementsUnlocked.Inc()
		logger.Info("Achievement unlocked", "achievement_id", id)
		unlocked = append(unlocked, def)
	}
	return unlocked, nil
}
