package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cadence/internal/logger"
	"cadence/internal/stats"
	"cadence/pkg/habit"
)

const (
	defaultSummaryWeeks  = 8
	defaultSummaryMonths = 6
	defaultTrendWeeks    = 12
	defaultComparisonTop = 3
	defaultPatternDays   = 90
)

// reportSnapshot fetches habits and completions together so every report
// computes from one consistent view of storage.
func (s *Server) reportSnapshot(w http.ResponseWriter) ([]habit.Habit, []habit.Completion, bool) {
	habits, err := s.store.ListHabits(false)
	if err != nil {
		logger.Error("Failed to list habits for report", "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return nil, nil, false
	}
	completions, err := s.store.ListAllCompletions()
	if err != nil {
		logger.Error("Failed to list completions for report", "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return nil, nil, false
	}
	return habits, completions, true
}

// windowParam reads a positive integer query parameter with a default.
// Writes a 400 and returns false on anything non-positive or non-numeric.
func windowParam(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		http.Error(w, fmt.Sprintf(`{"error":"bad %s: must be a positive integer"}`, name), http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

func (s *Server) getHeatmap(w http.ResponseWriter, r *http.Request) {
	today, ok := referenceDate(w, r)
	if !ok {
		return
	}
	_, completions, ok := s.reportSnapshot(w)
	if !ok {
		return
	}

	days := stats.GenerateHeatmap(completionDates(completions), today)
	resp := HeatmapResponse{Days: days, MaxCount: stats.HeatmapMaxCount(days)}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) getWeeklySummaries(w http.ResponseWriter, r *http.Request) {
	s.summaryReport(w, r, "weeks", defaultSummaryWeeks,
		func(habits []habit.Habit, completions []habit.Completion, n int, today time.Time) any {
			return stats.GenerateWeeklySummaries(habits, completions, n, today)
		})
}

func (s *Server) getMonthlySummaries(w http.ResponseWriter, r *http.Request) {
	s.summaryReport(w, r, "months", defaultSummaryMonths,
		func(habits []habit.Habit, completions []habit.Completion, n int, today time.Time) any {
			return stats.GenerateMonthlySummaries(habits, completions, n, today)
		})
}

func (s *Server) getTrend(w http.ResponseWriter, r *http.Request) {
	s.summaryReport(w, r, "weeks", defaultTrendWeeks,
		func(habits []habit.Habit, completions []habit.Completion, n int, today time.Time) any {
			return stats.GenerateTrend(habits, completions, n, today)
		})
}

func (s *Server) summaryReport(w http.ResponseWriter, r *http.Request, param string, def int,
	generate func([]habit.Habit, []habit.Completion, int, time.Time) any) {

	today, ok := referenceDate(w, r)
	if !ok {
		return
	}
	n, ok := windowParam(w, r, param, def)
	if !ok {
		return
	}
	habits, completions, ok := s.reportSnapshot(w)
	if !ok {
		return
	}

	if err := writeJSON(w, http.StatusOK, generate(habits, completions, n, today)); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) getComparison(w http.ResponseWriter, r *http.Request) {
	today, ok := referenceDate(w, r)
	if !ok {
		return
	}
	topN, ok := windowParam(w, r, "top", defaultComparisonTop)
	if !ok {
		return
	}
	habits, completions, ok := s.reportSnapshot(w)
	if !ok {
		return
	}

	best, struggling := stats.CompareHabits(habits, completions, topN, today)
	if best == nil {
		best = []stats.HabitComparisonItem{}
	}
	if struggling == nil {
		struggling = []stats.HabitComparisonItem{}
	}
	resp := ComparisonResponse{Best: best, Struggling: struggling}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) getWeekdayPatterns(w http.ResponseWriter, r *http.Request) {
	today, ok := referenceDate(w, r)
	if !ok {
		return
	}
	days, ok := windowParam(w, r, "days", defaultPatternDays)
	if !ok {
		return
	}
	habits, completions, ok := s.reportSnapshot(w)
	if !ok {
		return
	}

	patterns := stats.DayOfWeekPatterns(habits, completions, days, today)
	if err := writeJSON(w, http.StatusOK, patterns); err != nil {
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
	}
}
