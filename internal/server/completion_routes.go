package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cadence/internal/logger"
	"cadence/internal/stats"
	"cadence/internal/storage"
	"cadence/pkg/habit"
)

// toggleCompletion flips a habit's completion for one date. Uncompleting
// never claws back XP; completing runs gamification best-effort, so a
// gamification failure still reports the completion as recorded.
func (s *Server) toggleCompletion(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")

	var req ToggleCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in toggle request", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if !stats.ValidDay(req.Date) {
		http.Error(w, `{"error":"bad date: must be YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}

	if _, err := s.store.GetHabit(habitID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, `{"error":"habit not found"}`, http.StatusNotFound)
			return
		}
		logger.Error("Failed to get habit", "habit_id", habitID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	_, err := s.store.GetCompletion(habitID, req.Date)
	switch {
	case err == nil:
		// Already completed: uncomplete.
		if err := s.store.DeleteCompletion(habitID, req.Date); err != nil {
			logger.Error("Failed to delete completion", "habit_id", habitID, "date", req.Date, "error", err)
			http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
			return
		}
		logger.Info("Completion removed", "habit_id", habitID, "date", req.Date)
		if err := writeJSON(w, http.StatusOK, ToggleCompletionResponse{Completed: false}); err != nil {
			http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		}
		return

	case errors.Is(err, storage.ErrNotFound):
		c := habit.Completion{
			HabitID:   habitID,
			Date:      req.Date,
			Notes:     req.Notes,
			CreatedAt: time.Now(),
		}
		if err := s.store.PutCompletion(c); err != nil {
			if errors.Is(err, storage.ErrDuplicateCompletion) {
				// Lost a race with a concurrent toggle; the completion
				// exists, which is what the caller asked for.
				logger.Warn("Concurrent completion insert", "habit_id", habitID, "date", req.Date)
				if err := writeJSON(w, http.StatusOK, ToggleCompletionResponse{Completed: true}); err != nil {
					http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
				}
				return
			}
			logger.Error("Failed to store completion", "habit_id", habitID, "date", req.Date, "error", err)
			http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
			return
		}
		logger.Info("Completion recorded", "habit_id", habitID, "date", req.Date)
		completionsRecorded.Inc()

		events := s.processCompletionGamification(habitID, req.Date)
		resp := ToggleCompletionResponse{Completed: true, Completion: &c, Gamification: events}
		if err := writeJSON(w, http.StatusOK, resp); err != nil {
			http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		}
		return

	default:
		logger.Error("Failed to check completion", "habit_id", habitID, "date", req.Date, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
	}
}

// updateCompletionNotes sets the notes on a completion, creating the
// completion (marking the day done) if it does not exist yet.
func (s *Server) updateCompletionNotes(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	date := chi.URLParam(r, "date")
	if !stats.ValidDay(date) {
		http.Error(w, `{"error":"bad date: must be YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}

	var req UpdateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}

	existing, err := s.store.GetCompletion(habitID, date)
	switch {
	case err == nil:
		existing.Notes = req.Notes
		if err := s.store.UpdateCompletionNotes(habitID, date, req.Notes); err != nil {
			logger.Error("Failed to update completion notes", "habit_id", habitID, "date", date, "error", err)
			http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
			return
		}
		if err := writeJSON(w, http.StatusOK, existing); err != nil {
			http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		}

	case errors.Is(err, storage.ErrNotFound):
		c := habit.Completion{HabitID: habitID, Date: date, Notes: req.Notes, CreatedAt: time.Now()}
		if err := s.store.PutCompletion(c); err != nil {
			logger.Error("Failed to store completion", "habit_id", habitID, "date", date, "error", err)
			http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
			return
		}
		completionsRecorded.Inc()
		if err := writeJSON(w, http.StatusCreated, c); err != nil {
			http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		}

	default:
		logger.Error("Failed to check completion", "habit_id", habitID, "date", date, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
	}
}
