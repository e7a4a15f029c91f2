// Package checkin handles morning check-ins and evening reflections for the
// daily log, validating input before anything is written.
package checkin

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/mastery/internal/store"
)

// ValidationError reports malformed user input. It is returned before any
// persistence write happens.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

type MorningInput struct {
	SleepHours    float64
	SleepQuality  int
	EnergyLevel   int
	TopPriorities []string
	WinDefinition string
}

type EveningInput struct {
	Wins                   []string
	Challenges             []string
	Lessons                []string
	ImprovementForTomorrow string
	DeepWorkHours          float64
	DayScore               int
}

// Status summarizes today's check-in state.
type Status struct {
	Date       string
	HasMorning bool
	HasEvening bool
	Morning    *store.AMCheckin
	Evening    *store.PMReflection
}

type Service struct {
	store *store.Store
	now   func() time.Time
}

func NewService(s *store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

func (s *Service) today() string {
	return s.now().Format(store.DateFormat)
}

func (s *Service) recentLogs(days int) ([]store.DailyLog, error) {
	end := s.now()
	start := end.AddDate(0, 0, -(days - 1))
	return s.store.LogsForRange(start.Format(store.DateFormat), end.Format(store.DateFormat))
}

// SaveMorning validates and records the morning check-in on today's log.
// Ratings are clamped to their bounds after validation passes.
func (s *Service) SaveMorning(in MorningInput) error {
	if err := validateMorning(in); err != nil {
		return err
	}

	log, err := s.store.GetOrCreateDailyLog(s.today())
	if err != nil {
		return err
	}

	priorities := in.TopPriorities
	if len(priorities) > 3 {
		priorities = priorities[:3]
	}
	trimmed := make([]string, len(priorities))
	for i, p := range priorities {
		trimmed[i] = strings.TrimSpace(p)
	}

	log.AMCheckin = &store.AMCheckin{
		Time:          s.now().UTC().Format(time.RFC3339),
		SleepHours:    clampF(in.SleepHours, 0, 24),
		SleepQuality:  clampI(in.SleepQuality, 1, 10),
		EnergyLevel:   clampI(in.EnergyLevel, 1, 10),
		TopPriorities: trimmed,
		WinDefinition: strings.TrimSpace(in.WinDefinition),
	}
	return s.store.SaveDailyLog(log)
}

// SaveEvening validates and records the evening reflection on today's log,
// updating the deep-work metric alongside.
func (s *Service) SaveEvening(in EveningInput) error {
	if err := validateEvening(in); err != nil {
		return err
	}

	log, err := s.store.GetOrCreateDailyLog(s.today())
	if err != nil {
		return err
	}

	log.PMReflection = &store.PMReflection{
		Time:                   s.now().UTC().Format(time.RFC3339),
		Wins:                   trimAll(cap10(in.Wins)),
		Challenges:             trimAll(cap10(in.Challenges)),
		Lessons:                trimAll(cap10(in.Lessons)),
		ImprovementForTomorrow: strings.TrimSpace(in.ImprovementForTomorrow),
		DayScore:               clampI(in.DayScore, 1, 10),
		MainWinAchieved:        mainWinAchieved(log, in.Wins),
	}
	log.Metrics.DeepWorkHours = clampF(in.DeepWorkHours, 0, 24)

	return s.store.SaveDailyLog(log)
}

// TodayStatus reports whether today's check-ins exist.
func (s *Service) TodayStatus() (Status, error) {
	today := s.today()
	log, err := s.store.DailyLog(today)
	if err != nil {
		return Status{Date: today}, err
	}

	st := Status{Date: today}
	if log != nil {
		st.HasMorning = log.AMCheckin != nil
		st.HasEvening = log.PMReflection != nil
		st.Morning = log.AMCheckin
		st.Evening = log.PMReflection
	}
	return st, nil
}

// AverageDayScore averages pm day scores over the past N days, rounded to
// one decimal. Days without a reflection are excluded.
func (s *Service) AverageDayScore(days int) (float64, error) {
	logs, err := s.recentLogs(days)
	if err != nil {
		return 0, err
	}

	sum, n := 0, 0
	for _, l := range logs {
		if l.PMReflection != nil && l.PMReflection.DayScore > 0 {
			sum += l.PMReflection.DayScore
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return round1(float64(sum) / float64(n)), nil
}

// TotalDeepWorkHours sums the deep-work metric over the past N days.
func (s *Service) TotalDeepWorkHours(days int) (float64, error) {
	logs, err := s.recentLogs(days)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, l := range logs {
		total += l.Metrics.DeepWorkHours
	}
	return total, nil
}

// RecentWins collects the wins recorded over the past N days.
func (s *Service) RecentWins(days int) ([]string, error) {
	logs, err := s.recentLogs(days)
	if err != nil {
		return nil, err
	}
	var wins []string
	for _, l := range logs {
		if l.PMReflection != nil {
			wins = append(wins, l.PMReflection.Wins...)
		}
	}
	return wins, nil
}

// RecentChallenges collects the challenges recorded over the past N days.
func (s *Service) RecentChallenges(days int) ([]string, error) {
	logs, err := s.recentLogs(days)
	if err != nil {
		return nil, err
	}
	var challenges []string
	for _, l := range logs {
		if l.PMReflection != nil {
			challenges = append(challenges, l.PMReflection.Challenges...)
		}
	}
	return challenges, nil
}

func validateMorning(in MorningInput) error {
	if in.SleepHours < 0 || in.SleepHours > 24 {
		return ValidationError{Field: "sleep_hours", Msg: "must be between 0 and 24"}
	}
	if in.SleepQuality < 1 || in.SleepQuality > 10 {
		return ValidationError{Field: "sleep_quality", Msg: "must be between 1 and 10"}
	}
	if in.EnergyLevel < 1 || in.EnergyLevel > 10 {
		return ValidationError{Field: "energy_level", Msg: "must be between 1 and 10"}
	}
	if len(in.TopPriorities) == 0 {
		return ValidationError{Field: "top_3_priorities", Msg: "must provide at least one priority"}
	}
	if strings.TrimSpace(in.WinDefinition) == "" {
		return ValidationError{Field: "win_definition", Msg: "cannot be empty"}
	}
	return nil
}

func validateEvening(in EveningInput) error {
	if len(in.Wins) == 0 {
		return ValidationError{Field: "wins", Msg: "must provide at least one win"}
	}
	if in.DayScore < 1 || in.DayScore > 10 {
		return ValidationError{Field: "day_score", Msg: "must be between 1 and 10"}
	}
	if in.DeepWorkHours < 0 || in.DeepWorkHours > 24 {
		return ValidationError{Field: "deep_work_hours", Msg: "must be between 0 and 24"}
	}
	return nil
}

// mainWinAchieved checks whether any evening win matches the morning's win
// definition, by case-insensitive substring in either direction.
func mainWinAchieved(log *store.DailyLog, wins []string) bool {
	if log.AMCheckin == nil || log.AMCheckin.WinDefinition == "" {
		return false
	}
	main := strings.ToLower(log.AMCheckin.WinDefinition)
	for _, w := range wins {
		lw := strings.ToLower(w)
		if strings.Contains(lw, main) || strings.Contains(main, lw) {
			return true
		}
	}
	return false
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cap10(xs []string) []string {
	if len(xs) > 10 {
		return xs[:10]
	}
	return xs
}

func trimAll(xs []string) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = strings.TrimSpace(x)
	}
	return out
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
