package stats

import (
	"sort"
	"time"

	"cadence/pkg/habit"
)

// comparisonWindowDays is the fixed ranking window for best/struggling lists.
const comparisonWindowDays = 30

type HabitComparisonItem struct {
	HabitID    string `json:"habit_id"`
	HabitName  string `json:"habit_name"`
	HabitColor string `json:"habit_color"`
	HabitIcon  string `json:"habit_icon"`
	Rate       int    `json:"rate"` // 0..100
	Completed  int    `json:"completed"`
	Expected   int    `json:"expected"`
}

// CompareHabits ranks all habits by their 30-day completion rate. Best is the
// top-N descending; struggling is the bottom-N (worst first) among habits
// with a nonzero expected count, excluding anything already in best so a
// habit never appears in both lists.
func CompareHabits(habits []habit.Habit, completions []habit.Completion, topN int, today time.Time) (best, struggling []HabitComparisonItem) {
	datesByHabit := make(map[string][]string)
	for _, c := range completions {
		datesByHabit[c.HabitID] = append(datesByHabit[c.HabitID], c.Date)
	}

	items := make([]HabitComparisonItem, 0, len(habits))
	for _, h := range habits {
		dates := datesByHabit[h.ID]
		sort.Strings(dates)
		r := CompletionRate(h, dates, comparisonWindowDays, today)
		items = append(items, HabitComparisonItem{
			HabitID:    h.ID,
			HabitName:  h.Name,
			HabitColor: h.Color,
			HabitIcon:  h.Icon,
			Rate:       r.Percentage,
			Completed:  r.Completed,
			Expected:   r.Expected,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Rate > items[j].Rate })

	best = append(best, items[:min(topN, len(items))]...)
	bestIDs := make(map[string]bool, len(best))
	for _, b := range best {
		bestIDs[b.HabitID] = true
	}

	withExpected := items[:0:0]
	for _, it := range items {
		if it.Expected > 0 {
			withExpected = append(withExpected, it)
		}
	}
	// Bottom N, reversed so the worst habit leads the list.
	from := max(0, len(withExpected)-topN)
	for i := len(withExpected) - 1; i >= from; i-- {
		if !bestIDs[withExpected[i].HabitID] {
			struggling = append(struggling, withExpected[i])
		}
	}
	return best, struggling
}
