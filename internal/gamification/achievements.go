package gamification

type AchievementCategory string

const (
	CategoryStreak     AchievementCategory = "streak"
	CategoryCompletion AchievementCategory = "completion"
	CategoryVariety    AchievementCategory = "variety"
	CategoryLevel      AchievementCategory = "level"
)

type AchievementDefinition struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"category"`
	Icon        string              `json:"icon"`
}

// Achievements is the full static catalog, 16 entries.
var Achievements = []AchievementDefinition{
	{ID: "first-flame", Name: "First Flame", Description: "Your first spark! Achieve a 3-day streak.", Category: CategoryStreak, Icon: "flame"},
	{ID: "week-warrior", Name: "Week Warrior", Description: "A full week of consistency! 7-day streak.", Category: CategoryStreak, Icon: "sword"},
	{ID: "fortnight-force", Name: "Fortnight Force", Description: "Two weeks strong! 14-day streak.", Category: CategoryStreak, Icon: "shield"},
	{ID: "monthly-master", Name: "Monthly Master", Description: "A whole month! Incredible! 30-day streak.", Category: CategoryStreak, Icon: "crown"},
	{ID: "century-streak", Name: "Century Streak", Description: "100 days. Legendary.", Category: CategoryStreak, Icon: "trophy"},

	{ID: "first-step", Name: "First Step", Description: "Every journey begins with a single step.", Category: CategoryCompletion, Icon: "footprints"},
	{ID: "getting-started", Name: "Getting Started", Description: "Building momentum! 10 completions.", Category: CategoryCompletion, Icon: "rocket"},
	{ID: "half-century", Name: "Half Century", Description: "50 habits completed!", Category: CategoryCompletion, Icon: "star"},
	{ID: "century-club", Name: "Century Club", Description: "100 completions. You're committed!", Category: CategoryCompletion, Icon: "medal"},
	{ID: "habit-machine", Name: "Habit Machine", Description: "500! You're a habit machine!", Category: CategoryCompletion, Icon: "cog"},

	{ID: "habit-creator", Name: "Habit Creator", Description: "Your first habit is born!", Category: CategoryVariety, Icon: "plus-circle"},
	{ID: "collector", Name: "Collector", Description: "Building your habit collection. 5 habits created.", Category: CategoryVariety, Icon: "layers"},
	{ID: "diversified", Name: "Diversified", Description: "Variety is the spice of life! 3 different habits in one day.", Category: CategoryVariety, Icon: "sparkles"},

	{ID: "level-5", Name: "Level 5", Description: "Rising to level 5!", Category: CategoryLevel, Icon: "arrow-up"},
	{ID: "level-10", Name: "Level 10", Description: "Double digits!", Category: CategoryLevel, Icon: "zap"},
	{ID: "level-25", Name: "Level 25", Description: "Quarter century level!", Category: CategoryLevel, Icon: "gem"},
}

var achievementsByID = func() map[string]AchievementDefinition {
	m := make(map[string]AchievementDefinition, len(Achievements))
	for _, a := range Achievements {
		m[a.ID] = a
	}
	return m
}()

// Lookup returns an achievement definition by ID.
func Lookup(id string) (AchievementDefinition, bool) {
	a, ok := achievementsByID[id]
	return a, ok
}

// CheckContext is the snapshot of derived facts an achievement evaluation
// runs against. The caller assembles it from storage before calling
// CheckAchievements; the evaluation itself touches nothing else.
type CheckContext struct {
	AlreadyUnlocked              map[string]bool
	TotalCompletions             int
	BestStreak                   int
	CurrentStreak                int
	TotalHabitsCreated           int
	DistinctHabitsCompletedToday int
	NewLevel                     int
}

// CheckAchievements returns the IDs of achievements newly qualifying under
// ctx, excluding anything already unlocked. Evaluating twice with the first
// call's results folded into AlreadyUnlocked yields nothing the second time.
func CheckAchievements(ctx CheckContext) []string {
	var unlocked []string
	tryUnlock := func(id string, condition bool) {
		if condition && !ctx.AlreadyUnlocked[id] {
			unlocked = append(unlocked, id)
		}
	}

	// A lapsed streak still counts: check against the best streak ever seen.
	maxStreak := max(ctx.CurrentStreak, ctx.BestStreak)
	tryUnlock("first-flame", maxStreak >= 3)
	tryUnlock("week-warrior", maxStreak >= 7)
	tryUnlock("fortnight-force", maxStreak >= 14)
	tryUnlock("monthly-master", maxStreak >= 30)
	tryUnlock("century-streak", maxStreak >= 100)

	tryUnlock("first-step", ctx.TotalCompletions >= 1)
	tryUnlock("getting-started", ctx.TotalCompletions >= 10)
	tryUnlock("half-century", ctx.TotalCompletions >= 50)
	tryUnlock("century-club", ctx.TotalCompletions >= 100)
	tryUnlock("habit-machine", ctx.TotalCompletions >= 500)

	tryUnlock("habit-creator", ctx.TotalHabitsCreated >= 1)
	tryUnlock("collector", ctx.TotalHabitsCreated >= 5)
	tryUnlock("diversified", ctx.DistinctHabitsCompletedToday >= 3)

	tryUnlock("level-5", ctx.NewLevel >= 5)
	tryUnlock("level-10", ctx.NewLevel >= 10)
	tryUnlock("level-25", ctx.NewLevel >= 25)

	return unlocked
}

// CreationAchievementIDs are the only achievements re-evaluated on a
// habit-creation event, which carries no completion or streak context.
var CreationAchievementIDs = map[string]bool{
	"habit-creator": true,
	"collector":     true,
}

// Events is what processing one completion reports back to the caller, used
// to drive celebration UI.
type Events struct {
	XPGained             int                     `json:"xp_gained"`
	NewTotalXP           int                     `json:"new_total_xp"`
	NewLevel             int                     `json:"new_level"`
	LeveledUp            bool                    `json:"leveled_up"`
	PreviousLevel        int                     `json:"previous_level"`
	AchievementsUnlocked []AchievementDefinition `json:"achievements_unlocked"`
}
