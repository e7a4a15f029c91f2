package store

// DateFormat is the calendar-date key format used throughout the store.
// Lexicographic order on these strings matches chronological order, which
// the per-date log queries rely on.
const DateFormat = "2006-01-02"

type UserProfile struct {
	Name         string   `json:"name,omitempty"`
	FocusModules []string `json:"focus_modules"`
	CreatedAt    string   `json:"created_at,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
}

// Habit is a recurring task definition. The streak counters are a cached
// projection of the completion set in HabitsData; they are recomputed from
// it on every completion change, never incremented blindly.
type Habit struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Module           string `json:"module"`
	Frequency        string `json:"frequency"`
	CurrentStreak    int    `json:"current_streak"`
	BestStreak       int    `json:"best_streak"`
	TotalCompletions int    `json:"total_completions"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// HabitsData bundles habit definitions with the completion set, the
// date -> completed habit IDs mapping that is the source of truth for
// all streak computation.
type HabitsData struct {
	Habits      []Habit             `json:"habits"`
	Completions map[string][]string `json:"completions"`
}

type AMCheckin struct {
	Time          string   `json:"time"`
	SleepHours    float64  `json:"sleep_hours"`
	SleepQuality  int      `json:"sleep_quality"`
	EnergyLevel   int      `json:"energy_level"`
	TopPriorities []string `json:"top_3_priorities"`
	WinDefinition string   `json:"win_definition"`
}

type PMReflection struct {
	Time                   string   `json:"time"`
	Wins                   []string `json:"wins"`
	Challenges             []string `json:"challenges"`
	Lessons                []string `json:"lessons"`
	ImprovementForTomorrow string   `json:"improvement_for_tomorrow"`
	DayScore               int      `json:"day_score"`
	MainWinAchieved        bool     `json:"main_win_achieved"`
}

type Metrics struct {
	DeepWorkHours      float64 `json:"deep_work_hours"`
	Workouts           int     `json:"workouts"`
	SalesCalls         int     `json:"sales_calls"`
	SocialInteractions int     `json:"social_interactions"`
	Steps              int     `json:"steps"`
	WaterLiters        float64 `json:"water_liters"`
}

// DailyLog holds everything recorded for one calendar date. Exactly one log
// exists per date key; updated_at is refreshed on every save.
type DailyLog struct {
	Date             string          `json:"date"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
	AMCheckin        *AMCheckin      `json:"am_checkin"`
	PlannedActions   []string        `json:"planned_actions"`
	CompletedActions []string        `json:"completed_actions"`
	PMReflection     *PMReflection   `json:"pm_reflection"`
	Metrics          Metrics         `json:"metrics"`
	Habits           map[string]bool `json:"habits"`
	Notes            string          `json:"notes"`
}

type JournalEntry struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Title     string `json:"title,omitempty"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// DaySnapshot is a per-date progress record kept for historical charts.
type DaySnapshot struct {
	Date               string         `json:"date"`
	DayStreak          int            `json:"day_streak"`
	DeepWorkHours      float64        `json:"deep_work_hours"`
	HabitCompletionPct float64        `json:"habit_completion_percentage"`
	AverageDayScore    float64        `json:"average_day_score"`
	HabitStreaks       map[string]int `json:"habit_streaks"`
}

// Snapshot is the full-state export document used for backup.
type Snapshot struct {
	ExportedAt string         `json:"exported_at"`
	Profile    *UserProfile   `json:"profile"`
	Habits     HabitsData     `json:"habits"`
	Logs       []DailyLog     `json:"logs"`
	Journal    []JournalEntry `json:"journal"`
	Stats      []DaySnapshot  `json:"stats"`
	LastSync   int64          `json:"last_sync"`
}
