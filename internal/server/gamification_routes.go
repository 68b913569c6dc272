package server

import (
	"net/http"

	"cadence/internal/gamification"
	"cadence/internal/logger"
)

func (s *Server) getProgress(w http.ResponseWriter, _ *http.Request) {
	userStats, err := s.store.GetUserStats()
	if err != nil {
		logger.Error("Failed to get user stats", "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	resp := ProgressResponse{
		TotalXP:  userStats.TotalXP,
		Progress: gamification.Progress(userStats.TotalXP),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) getAchievements(w http.ResponseWriter, _ *http.Request) {
	unlocked, err := s.store.ListAchievements()
	if err != nil {
		logger.Error("Failed to list achievements", "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	out := []UnlockedAchievementResponse{}
	for _, a := range unlocked {
		def, ok := gamification.Lookup(a.AchievementID)
		if !ok {
			// Catalog entries can be retired; skip orphaned unlocks.
			continue
		}
		out = append(out, UnlockedAchievementResponse{
			Achievement: def,
			UnlockedAt:  a.UnlockedAt,
		})
	}
	if err := writeJSON(w, http.StatusOK, AchievementListResponse{Achievements: out}); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) getAchievementCatalog(w http.ResponseWriter, _ *http.Request) {
	if err := writeJSON(w, http.StatusOK, gamification.Achievements); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}
