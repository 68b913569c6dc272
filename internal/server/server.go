package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cadence/internal/storage"
	"cadence/pkg/versioninfo"
)

type Server struct {
	store storage.Store
}

func New(store storage.Store) *Server {
	return &Server{store: store}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/habits", func(r chi.Router) {
		r.Get("/", s.listHabits)
		r.Post("/", s.createHabit)
		r.Get("/{habit_id}", s.getHabit)
		r.Delete("/{habit_id}", s.archiveHabit)
		r.Post("/{habit_id}/toggle", s.toggleCompletion)
		r.Put("/{habit_id}/completions/{date}/notes", s.updateCompletionNotes)
		r.Get("/{habit_id}/summary", s.getHabitSummary)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/heatmap", s.getHeatmap)
		r.Get("/weekly", s.getWeeklySummaries)
		r.Get("/monthly", s.getMonthlySummaries)
		r.Get("/trend", s.getTrend)
		r.Get("/comparison", s.getComparison)
		r.Get("/weekday", s.getWeekdayPatterns)
	})

	r.Route("/gamification", func(r chi.Router) {
		r.Get("/progress", s.getProgress)
		r.Get("/achievements", s.getAchievements)
		r.Get("/catalog", s.getAchievementCatalog)
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	if err := writeJSON(w, http.StatusOK, info); err != nil {
		http.Error(w, `{"error":"failed to serialize version info"}`, http.StatusInternalServerError)
	}
}
