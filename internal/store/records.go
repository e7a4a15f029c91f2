package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Key for singleton records inside their namespace.
const singletonKey = "data"

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Today returns the current date key.
func Today() string {
	return time.Now().Format(DateFormat)
}

// readJSON unmarshals the record at (ns, key) into dest. Missing records and
// corrupt payloads leave dest untouched and return nil: read paths degrade
// to defaults rather than failing.
func (s *Store) readJSON(ns, key string, dest any) error {
	raw, err := s.Get(ns, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return nil
	}
	return nil
}

func (s *Store) writeJSON(ns, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", ns, key, err)
	}
	return s.Set(ns, key, raw)
}

// ---- Profile ----

// Profile returns the user profile, or nil if none has been saved.
func (s *Store) Profile() (*UserProfile, error) {
	var p *UserProfile
	if err := s.readJSON(NSProfile, singletonKey, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) SetProfile(p *UserProfile) error {
	if p.CreatedAt == "" {
		p.CreatedAt = nowStamp()
	}
	p.UpdatedAt = nowStamp()
	return s.writeJSON(NSProfile, singletonKey, p)
}

// ---- Habits ----

// Habits returns the habit definitions plus completion set. Missing data
// yields an empty bundle with a non-nil completions map.
func (s *Store) Habits() (HabitsData, error) {
	var hd HabitsData
	err := s.readJSON(NSHabits, singletonKey, &hd)
	if hd.Completions == nil {
		hd.Completions = make(map[string][]string)
	}
	return hd, err
}

func (s *Store) SetHabits(hd HabitsData) error {
	return s.writeJSON(NSHabits, singletonKey, hd)
}

// ---- Daily logs ----

// DailyLog returns the log for a date, or nil if none exists yet.
func (s *Store) DailyLog(date string) (*DailyLog, error) {
	var l *DailyLog
	if err := s.readJSON(NSLog, date, &l); err != nil {
		return nil, err
	}
	return l, nil
}

// SaveDailyLog persists the log under its date key, refreshing updated_at.
func (s *Store) SaveDailyLog(l *DailyLog) error {
	if l.Date == "" {
		return fmt.Errorf("save daily log: date is required")
	}
	l.UpdatedAt = nowStamp()
	return s.writeJSON(NSLog, l.Date, l)
}

// GetOrCreateDailyLog returns the existing log for a date, or a fresh
// template. The template is not persisted until the first save.
func (s *Store) GetOrCreateDailyLog(date string) (*DailyLog, error) {
	existing, err := s.DailyLog(date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return &DailyLog{
		Date:             date,
		CreatedAt:        nowStamp(),
		UpdatedAt:        nowStamp(),
		PlannedActions:   []string{},
		CompletedActions: []string{},
		Habits:           make(map[string]bool),
	}, nil
}

// LogsForRange returns all logs with start <= date <= end, in date order.
// Date keys sort lexicographically, so this is a plain key-range filter.
func (s *Store) LogsForRange(start, end string) ([]DailyLog, error) {
	keys, err := s.Keys(NSLog)
	if err != nil {
		return nil, err
	}

	var logs []DailyLog
	for _, k := range keys {
		if k < start || k > end {
			continue
		}
		var l DailyLog
		if err := s.readJSON(NSLog, k, &l); err != nil {
			return nil, err
		}
		if l.Date != "" {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// RecentLogs returns the logs for the past N days including today.
func (s *Store) RecentLogs(days int) ([]DailyLog, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))
	return s.LogsForRange(start.Format(DateFormat), end.Format(DateFormat))
}

// ---- Journal ----

func (s *Store) JournalEntries() ([]JournalEntry, error) {
	var entries []JournalEntry
	err := s.readJSON(NSJournal, singletonKey, &entries)
	return entries, err
}

func (s *Store) AddJournalEntry(e JournalEntry) error {
	entries, err := s.JournalEntries()
	if err != nil {
		return err
	}
	if e.CreatedAt == "" {
		e.CreatedAt = nowStamp()
	}
	entries = append(entries, e)
	return s.writeJSON(NSJournal, singletonKey, entries)
}

func (s *Store) DeleteJournalEntry(id string) error {
	entries, err := s.JournalEntries()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return s.writeJSON(NSJournal, singletonKey, kept)
}

// ---- Day snapshots ----

func (s *Store) SaveDaySnapshot(snap DaySnapshot) error {
	if snap.Date == "" {
		return fmt.Errorf("save day snapshot: date is required")
	}
	return s.writeJSON(NSStats, snap.Date, snap)
}

func (s *Store) DaySnapshot(date string) (*DaySnapshot, error) {
	var snap *DaySnapshot
	if err := s.readJSON(NSStats, date, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) DaySnapshots() ([]DaySnapshot, error) {
	keys, err := s.Keys(NSStats)
	if err != nil {
		return nil, err
	}
	var snaps []DaySnapshot
	for _, k := range keys {
		var snap DaySnapshot
		if err := s.readJSON(NSStats, k, &snap); err != nil {
			return nil, err
		}
		if snap.Date != "" {
			snaps = append(snaps, snap)
		}
	}
	return snaps, nil
}

// ---- Last sync ----

func (s *Store) LastSync() (int64, error) {
	var ts int64
	err := s.readJSON(NSLastSync, singletonKey, &ts)
	return ts, err
}

func (s *Store) SetLastSync(ts int64) error {
	return s.writeJSON(NSLastSync, singletonKey, ts)
}

// ---- Export ----

// ExportSnapshot collects the full persisted state into one document.
func (s *Store) ExportSnapshot() (*Snapshot, error) {
	profile, err := s.Profile()
	if err != nil {
		return nil, err
	}
	habits, err := s.Habits()
	if err != nil {
		return nil, err
	}
	logs, err := s.LogsForRange("0000-00-00", "9999-99-99")
	if err != nil {
		return nil, err
	}
	journal, err := s.JournalEntries()
	if err != nil {
		return nil, err
	}
	stats, err := s.DaySnapshots()
	if err != nil {
		return nil, err
	}
	lastSync, err := s.LastSync()
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ExportedAt: nowStamp(),
		Profile:    profile,
		Habits:     habits,
		Logs:       logs,
		Journal:    journal,
		Stats:      stats,
		LastSync:   lastSync,
	}, nil
}
