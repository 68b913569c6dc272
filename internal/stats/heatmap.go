package stats

import "time"

type HeatmapDay struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	DayOfWeek int    `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	Month     int    `json:"month"`       // 1..12
	IsToday   bool   `json:"is_today"`
}

// GenerateHeatmap produces one record per day for the trailing 365 days
// ending at the reference day. Counts are raw completion totals across all
// habits; the same date may appear many times in completionDates, once per
// habit completed that day.
func GenerateHeatmap(completionDates []string, today time.Time) []HeatmapDay {
	today = DayOf(today)
	start := today.AddDate(0, 0, -364)
	todayStr := FormatDay(today)

	counts := make(map[string]int, len(completionDates))
	for _, d := range completionDates {
		counts[d]++
	}

	days := DaysBetween(start, today)
	out := make([]HeatmapDay, 0, len(days))
	for _, day := range days {
		dateStr := FormatDay(day)
		out = append(out, HeatmapDay{
			Date:      dateStr,
			Count:     counts[dateStr],
			DayOfWeek: int(day.Weekday()),
			Month:     int(day.Month()),
			IsToday:   dateStr == todayStr,
		})
	}
	return out
}

// HeatmapMaxCount returns the highest single-day count in the series, with a
// floor of 1 so it can be used directly as a scaling divisor.
func HeatmapMaxCount(days []HeatmapDay) int {
	maxCount := 1
	for _, d := range days {
		if d.Count > maxCount {
			maxCount = d.Count
		}
	}
	return maxCount
}

// HeatmapLevel quantizes a day's count into one of 5 intensity levels:
// 0 for none, then 1-4 at fixed quartile thresholds of count/maxCount.
func HeatmapLevel(count, maxCount int) int {
	if count == 0 || maxCount <= 0 {
		return 0
	}
	ratio := float64(count) / float64(maxCount)
	switch {
	case ratio <= 0.25:
		return 1
	case ratio <= 0.5:
		return 2
	case ratio <= 0.75:
		return 3
	default:
		return 4
	}
}
