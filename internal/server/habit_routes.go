package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cadence/internal/logger"
	"cadence/internal/stats"
	"cadence/internal/storage"
	"cadence/pkg/habit"
)

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"
	habits, err := s.store.ListHabits(includeArchived)
	if err != nil {
		logger.Error("Failed to list habits", "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}
	if habits == nil {
		habits = []habit.Habit{}
	}
	if err := writeJSON(w, http.StatusOK, HabitListResponse{Habits: habits}); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var req CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in create habit request", "error", err)
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if err := validateHabitRequest(req); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
		return
	}

	existing, err := s.store.ListHabits(false)
	if err != nil {
		logger.Error("Failed to list habits for position", "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}
	position := 0
	for _, h := range existing {
		if h.Position >= position {
			position = h.Position + 1
		}
	}

	h := habit.Habit{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Frequency:     req.Frequency,
		FrequencyDays: req.FrequencyDays,
		Color:         req.Color,
		Icon:          req.Icon,
		Position:      position,
		CreatedAt:     time.Now(),
	}
	if h.Color == "" {
		h.Color = "#6366f1"
	}
	if h.Icon == "" {
		h.Icon = "circle-check"
	}

	logger.Info("Creating habit", "habit_id", h.ID, "name", h.Name, "frequency", h.Frequency)
	if err := s.store.PutHabit(h); err != nil {
		logger.Error("Failed to store habit", "habit_id", h.ID, "error", err)
		http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
		return
	}
	activeHabits.Set(float64(len(existing) + 1))

	// Creation achievements are best-effort: a gamification failure must
	// never fail the create itself.
	unlocked := s.processCreationGamification()

	resp := CreateHabitResponse{Habit: h, AchievementsUnlocked: unlocked}
	if err := writeJSON(w, http.StatusCreated, resp); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	h, err := s.store.GetHabit(habitID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, `{"error":"habit not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Failed to get habit", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	completions, err := s.store.ListCompletions(habitID)
	if err != nil {
		logger.Error("Failed to list completions", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}
	if completions == nil {
		completions = []habit.Completion{}
	}

	resp := HabitGetResponse{Habit: h, Completions: completions}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) archiveHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	logger.Info("Archiving habit", "habit_id", habitID)

	err := s.store.ArchiveHabit(habitID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, `{"error":"habit not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Failed to archive habit", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	if habits, err := s.store.ListHabits(false); err == nil {
		activeHabits.Set(float64(len(habits)))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getHabitSummary(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	h, err := s.store.GetHabit(habitID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, `{"error":"habit not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Failed to get habit", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	completions, err := s.store.ListCompletions(habitID)
	if err != nil {
		logger.Error("Failed to list completions", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}
	dates := completionDates(completions)

	today, ok := referenceDate(w, r)
	if !ok {
		return
	}

	resp := HabitSummaryResponse{
		HabitID:     habitID,
		Streaks:     stats.CalculateStreaks(h, dates, today),
		RateWeek:    stats.CompletionRate(h, dates, 7, today),
		RateMonth:   stats.CompletionRate(h, dates, 30, today),
		RateAllTime: stats.CompletionRate(h, dates, stats.AllTime, today),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func validateHabitRequest(req CreateHabitRequest) error {
	const maxNameLength = 100
	const maxDescriptionLength = 500

	if len(req.Name) == 0 || len(req.Name) > maxNameLength {
		return fmt.Errorf("bad habit name: must be 1-%d characters", maxNameLength)
	}
	if len(req.Description) > maxDescriptionLength {
		return fmt.Errorf("bad habit description: must be 0-%d characters", maxDescriptionLength)
	}
	if !req.Frequency.Valid() {
		return fmt.Errorf("bad frequency: must be daily, weekly or custom")
	}
	if req.Frequency == habit.Custom && len(req.FrequencyDays) == 0 {
		return fmt.Errorf("custom frequency requires at least one weekday")
	}
	if req.Frequency != habit.Custom && len(req.FrequencyDays) > 0 {
		return fmt.Errorf("frequency_days is only valid with custom frequency")
	}
	for _, d := range req.FrequencyDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("bad weekday index %d: must be 0-6", d)
		}
	}
	return nil
}

func completionDates(completions []habit.Completion) []string {
	dates := make([]string, 0, len(completions))
	for _, c := range completions {
		dates = append(dates, c.Date)
	}
	return dates
}

// referenceDate resolves the optional ?date= query parameter, defaulting to
// today. Writes a 400 and returns false on a malformed value.
func referenceDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now(), true
	}
	if !stats.ValidDay(raw) {
		http.Error(w, `{"error":"bad date: must be YYYY-MM-DD"}`, http.StatusBadRequest)
		return time.Time{}, false
	}
	return stats.Day(raw), true
}
