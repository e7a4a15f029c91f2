// Package stats aggregates daily logs and habit completions into dashboard
// summaries, memoized through the TTL cache.
package stats

import (
	"time"

	"github.com/sadopc/mastery/internal/cache"
	"github.com/sadopc/mastery/internal/store"
	"github.com/sadopc/mastery/internal/streak"
)

// Summary is the aggregated view over a trailing window of days.
type Summary struct {
	Days                int     `json:"days"`
	MorningCheckins     int     `json:"morning_checkins"`
	EveningReflections  int     `json:"evening_reflections"`
	AvgSleepHours       float64 `json:"avg_sleep_hours"`
	AvgEnergyLevel      float64 `json:"avg_energy_level"`
	AvgDayScore         float64 `json:"avg_day_score"`
	TotalDeepWorkHours  float64 `json:"total_deep_work_hours"`
	TotalWorkouts       int     `json:"total_workouts"`
	HabitCompletionRate float64 `json:"habit_completion_rate"`
	DayStreak           int     `json:"day_streak"`
}

type Service struct {
	store *store.Store
	cache *cache.Cache
	now   func() time.Time

	// windows records which summary windows have been cached, so
	// InvalidateAll can drop them without a prefix scan.
	windows map[int]struct{}
}

func NewService(s *store.Store, c *cache.Cache) *Service {
	return &Service{store: s, cache: c, now: time.Now, windows: make(map[int]struct{})}
}

// Aggregated returns the summary for the past N days, served from the cache
// when a fresh entry exists.
func (s *Service) Aggregated(days int) (Summary, error) {
	key := cache.StatsKey(days)
	if cached, ok := cache.Get[Summary](s.cache, key, cache.StatsTTL); ok {
		return cached, nil
	}

	sum, err := s.compute(days)
	if err != nil {
		return Summary{}, err
	}

	cache.Set(s.cache, key, sum)
	s.windows[days] = struct{}{}
	return sum, nil
}

// InvalidateAll drops every cached summary. Call after any mutation that
// feeds the aggregates (check-ins, habit toggles).
func (s *Service) InvalidateAll() {
	for days := range s.windows {
		s.cache.Invalidate(cache.StatsKey(days))
	}
	s.windows = make(map[int]struct{})
}

func (s *Service) compute(days int) (Summary, error) {
	end := s.now()
	start := end.AddDate(0, 0, -(days - 1))
	logs, err := s.store.LogsForRange(start.Format(store.DateFormat), end.Format(store.DateFormat))
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Days: days}
	var sleepSum, energySum float64
	var scoreSum, scored int
	for _, l := range logs {
		if l.AMCheckin != nil {
			sum.MorningCheckins++
			sleepSum += l.AMCheckin.SleepHours
			energySum += float64(l.AMCheckin.EnergyLevel)
		}
		if l.PMReflection != nil {
			sum.EveningReflections++
			if l.PMReflection.DayScore > 0 {
				scoreSum += l.PMReflection.DayScore
				scored++
			}
		}
		sum.TotalDeepWorkHours += l.Metrics.DeepWorkHours
		sum.TotalWorkouts += l.Metrics.Workouts
	}
	if sum.MorningCheckins > 0 {
		sum.AvgSleepHours = round1(sleepSum / float64(sum.MorningCheckins))
		sum.AvgEnergyLevel = round1(energySum / float64(sum.MorningCheckins))
	}
	if scored > 0 {
		sum.AvgDayScore = round1(float64(scoreSum) / float64(scored))
	}

	hd, err := s.store.Habits()
	if err != nil {
		return Summary{}, err
	}
	sum.HabitCompletionRate = completionRate(hd, days, end)
	sum.DayStreak = dayStreak(logs, end)

	return sum, nil
}

// completionRate is completions over the window divided by habit-days.
func completionRate(hd store.HabitsData, days int, today time.Time) float64 {
	if len(hd.Habits) == 0 || days <= 0 {
		return 0
	}
	cutoff := today.AddDate(0, 0, -(days - 1)).Format(store.DateFormat)
	limit := today.Format(store.DateFormat)
	total := 0
	for _, h := range hd.Habits {
		for _, d := range streak.DatesFor(hd.Completions, h.ID) {
			if d >= cutoff && d <= limit {
				total++
			}
		}
	}
	return round2(float64(total) / float64(len(hd.Habits)*days))
}

// dayStreak counts consecutive days ending today or yesterday that have a
// morning check-in recorded.
func dayStreak(logs []store.DailyLog, today time.Time) int {
	var dates []string
	for _, l := range logs {
		if l.AMCheckin != nil {
			dates = append(dates, l.Date)
		}
	}
	return streak.Calculate(dates, today)
}

// SnapshotToday persists a day snapshot of the headline numbers, used by the
// export document and the dashboard history.
func (s *Service) SnapshotToday(habitStreaks map[string]int) error {
	sum, err := s.Aggregated(7)
	if err != nil {
		return err
	}
	snap := store.DaySnapshot{
		Date:               s.now().Format(store.DateFormat),
		DayStreak:          sum.DayStreak,
		DeepWorkHours:      sum.TotalDeepWorkHours,
		HabitCompletionPct: sum.HabitCompletionRate,
		AverageDayScore:    sum.AvgDayScore,
		HabitStreaks:       habitStreaks,
	}
	return s.store.SaveDaySnapshot(snap)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
