// Package habit manages habit definitions and the completion set, keeping
// the derived streak counters consistent with it.
package habit

import (
	"fmt"
	"time"

	"github.com/sadopc/mastery/internal/cache"
	"github.com/sadopc/mastery/internal/store"
	"github.com/sadopc/mastery/internal/streak"
)

type Service struct {
	store *store.Store
	cache *cache.Cache
	now   func() time.Time
}

func NewService(s *store.Store, c *cache.Cache) *Service {
	return &Service{store: s, cache: c, now: time.Now}
}

func (s *Service) today() string {
	return s.now().Format(store.DateFormat)
}

// Habits returns all habit definitions.
func (s *Service) Habits() ([]store.Habit, error) {
	hd, err := s.store.Habits()
	if err != nil {
		return nil, err
	}
	return hd.Habits, nil
}

// Get returns a habit by ID, or nil if unknown.
func (s *Service) Get(id string) (*store.Habit, error) {
	hd, err := s.store.Habits()
	if err != nil {
		return nil, err
	}
	for i := range hd.Habits {
		if hd.Habits[i].ID == id {
			return &hd.Habits[i], nil
		}
	}
	return nil, nil
}

// Add registers a new habit with zeroed counters.
func (s *Service) Add(h store.Habit) error {
	if h.ID == "" || h.Name == "" {
		return fmt.Errorf("add habit: id and name are required")
	}
	hd, err := s.store.Habits()
	if err != nil {
		return err
	}
	for _, existing := range hd.Habits {
		if existing.ID == h.ID {
			return fmt.Errorf("add habit: %q already exists", h.ID)
		}
	}

	h.CurrentStreak = 0
	h.BestStreak = 0
	h.TotalCompletions = 0
	h.CreatedAt = s.now().UTC().Format(time.RFC3339)
	hd.Habits = append(hd.Habits, h)
	return s.store.SetHabits(hd)
}

// Complete marks a habit complete for a date ("" means today). Completing an
// already-completed date is a no-op: the completion set and all counters are
// left untouched. Otherwise the current streak is recomputed in full from
// the completion set, so out-of-order edits stay correct.
func (s *Service) Complete(id, date string) error {
	if date == "" {
		date = s.today()
	}

	hd, err := s.store.Habits()
	if err != nil {
		return err
	}

	for _, done := range hd.Completions[date] {
		if done == id {
			return nil
		}
	}
	hd.Completions[date] = append(hd.Completions[date], id)

	for i := range hd.Habits {
		if hd.Habits[i].ID != id {
			continue
		}
		h := &hd.Habits[i]
		h.TotalCompletions++
		newStreak := streak.Calculate(streak.DatesFor(hd.Completions, id), s.now())
		h.CurrentStreak = newStreak
		if newStreak > h.BestStreak {
			h.BestStreak = newStreak
		}
		break
	}

	if err := s.store.SetHabits(hd); err != nil {
		return err
	}
	s.cache.Invalidate(cache.StreakKey(id))
	return nil
}

// Uncomplete removes a completion for a date ("" means today) and recomputes
// the streak. Uncompleting a date with no record is a no-op.
func (s *Service) Uncomplete(id, date string) error {
	if date == "" {
		date = s.today()
	}

	hd, err := s.store.Habits()
	if err != nil {
		return err
	}

	ids, ok := hd.Completions[date]
	if !ok {
		return nil
	}
	found := false
	kept := ids[:0]
	for _, done := range ids {
		if done == id {
			found = true
			continue
		}
		kept = append(kept, done)
	}
	if !found {
		return nil
	}
	if len(kept) == 0 {
		delete(hd.Completions, date)
	} else {
		hd.Completions[date] = kept
	}

	for i := range hd.Habits {
		if hd.Habits[i].ID != id {
			continue
		}
		h := &hd.Habits[i]
		if h.TotalCompletions > 0 {
			h.TotalCompletions--
		}
		h.CurrentStreak = streak.Calculate(streak.DatesFor(hd.Completions, id), s.now())
		break
	}

	if err := s.store.SetHabits(hd); err != nil {
		return err
	}
	s.cache.Invalidate(cache.StreakKey(id))
	return nil
}

// Streak returns the habit's current streak, memoized for an hour.
func (s *Service) Streak(id string) (int, error) {
	if cached, ok := cache.Get[int](s.cache, cache.StreakKey(id), cache.StreakTTL); ok {
		return cached, nil
	}

	h, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	if h == nil {
		return 0, nil
	}

	cache.Set(s.cache, cache.StreakKey(id), h.CurrentStreak)
	return h.CurrentStreak, nil
}

// TodayCompletions returns the IDs of habits completed today.
func (s *Service) TodayCompletions() ([]string, error) {
	hd, err := s.store.Habits()
	if err != nil {
		return nil, err
	}
	return hd.Completions[s.today()], nil
}

// CompletedToday reports whether the habit is completed today.
func (s *Service) CompletedToday(id string) (bool, error) {
	done, err := s.TodayCompletions()
	if err != nil {
		return false, err
	}
	for _, d := range done {
		if d == id {
			return true, nil
		}
	}
	return false, nil
}

// History returns date -> completed for the past N days including today.
func (s *Service) History(id string, days int) (map[string]bool, error) {
	hd, err := s.store.Habits()
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	for _, d := range streak.DatesFor(hd.Completions, id) {
		set[d] = true
	}

	history := make(map[string]bool, days)
	day := s.now()
	for i := 0; i < days; i++ {
		key := day.Format(store.DateFormat)
		history[key] = set[key]
		day = day.AddDate(0, 0, -1)
	}
	return history, nil
}

// CompletionPercent returns the habit's completion rate over the past N days.
func (s *Service) CompletionPercent(id string, days int) (float64, error) {
	hd, err := s.store.Habits()
	if err != nil {
		return 0, err
	}
	return streak.CompletionPercent(streak.DatesFor(hd.Completions, id), days, s.now()), nil
}

// ByStatus splits habits into completed-today and not-yet.
func (s *Service) ByStatus() (completed, incomplete []store.Habit, err error) {
	hd, err := s.store.Habits()
	if err != nil {
		return nil, nil, err
	}

	done := make(map[string]bool)
	for _, id := range hd.Completions[s.today()] {
		done[id] = true
	}

	for _, h := range hd.Habits {
		if done[h.ID] {
			completed = append(completed, h)
		} else {
			incomplete = append(incomplete, h)
		}
	}
	return completed, incomplete, nil
}

// ByModule returns the habits tagged with a module.
func (s *Service) ByModule(module string) ([]store.Habit, error) {
	hd, err := s.store.Habits()
	if err != nil {
		return nil, err
	}
	var out []store.Habit
	for _, h := range hd.Habits {
		if h.Module == module {
			out = append(out, h)
		}
	}
	return out, nil
}
