package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/mastery.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

// ============================================================
// Raw KV operations
// ============================================================

func TestKVRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("test", "a", []byte(`{"x":1}`)); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("test", "a")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"x":1}` {
		t.Fatalf("got %q", got)
	}
}

func TestKVMissingIsNil(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Get("test", "missing")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %q", got)
	}
}

func TestKVOverwrite(t *testing.T) {
	s := newTestStore(t)

	s.Set("test", "a", []byte("1"))
	s.Set("test", "a", []byte("2"))
	got, _ := s.Get("test", "a")
	if string(got) != "2" {
		t.Fatalf("got %q", got)
	}
}

func TestKVRemove(t *testing.T) {
	s := newTestStore(t)

	s.Set("test", "a", []byte("1"))
	if err := s.Remove("test", "a"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get("test", "a")
	if got != nil {
		t.Fatal("expected removed")
	}

	// Removing an absent key is a no-op
	if err := s.Remove("test", "a"); err != nil {
		t.Fatal(err)
	}
}

func TestKVNamespaceIsolation(t *testing.T) {
	s := newTestStore(t)

	s.Set("ns1", "k", []byte("one"))
	s.Set("ns2", "k", []byte("two"))

	got, _ := s.Get("ns1", "k")
	if string(got) != "one" {
		t.Fatalf("ns1/k = %q", got)
	}
}

func TestKVKeysSorted(t *testing.T) {
	s := newTestStore(t)

	s.Set("test", "b", []byte("2"))
	s.Set("test", "a", []byte("1"))
	s.Set("other", "z", []byte("3"))

	keys, err := s.Keys("test")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("keys = %v", keys)
	}
}

func TestNamespaces(t *testing.T) {
	s := newTestStore(t)

	s.Set("rescache:static-v1", "u1", []byte("x"))
	s.Set("rescache:dynamic-v1", "u2", []byte("x"))
	s.Set("profile", "data", []byte("x"))

	names, err := s.Namespaces(ResourceCachePrefix)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("namespaces = %v", names)
	}
}

func TestRemoveNamespace(t *testing.T) {
	s := newTestStore(t)

	s.Set("rescache:static-v1", "u1", []byte("x"))
	s.Set("rescache:static-v1", "u2", []byte("x"))
	s.Set("profile", "data", []byte("keep"))

	if err := s.RemoveNamespace("rescache:static-v1"); err != nil {
		t.Fatal(err)
	}
	keys, _ := s.Keys("rescache:static-v1")
	if len(keys) != 0 {
		t.Fatalf("keys remain: %v", keys)
	}
	if got, _ := s.Get("profile", "data"); string(got) != "keep" {
		t.Fatal("unrelated namespace affected")
	}
}

func TestWipe(t *testing.T) {
	s := newTestStore(t)

	s.Set("a", "k", []byte("1"))
	s.Set("b", "k", []byte("2"))
	if err := s.Wipe(); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get("a", "k"); got != nil {
		t.Fatal("wipe left data behind")
	}
}

// ============================================================
// Profile
// ============================================================

func TestProfileMissingIsNil(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Profile()
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Fatalf("expected nil profile, got %+v", p)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := newTestStore(t)

	err := s.SetProfile(&UserProfile{Name: "Kai", FocusModules: []string{"mindset", "productivity"}})
	if err != nil {
		t.Fatal(err)
	}

	p, err := s.Profile()
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.Name != "Kai" || len(p.FocusModules) != 2 {
		t.Fatalf("profile = %+v", p)
	}
	if p.CreatedAt == "" || p.UpdatedAt == "" {
		t.Fatal("expected timestamps to be set")
	}
}

func TestProfileCorruptYieldsDefault(t *testing.T) {
	s := newTestStore(t)

	s.Set(NSProfile, "data", []byte("{not json"))
	p, err := s.Profile()
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Fatalf("expected nil on corrupt payload, got %+v", p)
	}
}

// ============================================================
// Habits
// ============================================================

func TestHabitsDefaultIsEmpty(t *testing.T) {
	s := newTestStore(t)

	hd, err := s.Habits()
	if err != nil {
		t.Fatal(err)
	}
	if len(hd.Habits) != 0 {
		t.Fatalf("habits = %v", hd.Habits)
	}
	if hd.Completions == nil {
		t.Fatal("completions map should be initialized")
	}
}

func TestHabitsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	hd := HabitsData{
		Habits: []Habit{{ID: "reading", Name: "Read 20 pages", Module: "mindset", Frequency: "daily"}},
		Completions: map[string][]string{
			"2024-01-01": {"reading"},
		},
	}
	if err := s.SetHabits(hd); err != nil {
		t.Fatal(err)
	}

	got, err := s.Habits()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Habits) != 1 || got.Habits[0].ID != "reading" {
		t.Fatalf("habits = %+v", got.Habits)
	}
	if len(got.Completions["2024-01-01"]) != 1 {
		t.Fatalf("completions = %v", got.Completions)
	}
}

// ============================================================
// Daily logs
// ============================================================

func TestDailyLogMissingIsNil(t *testing.T) {
	s := newTestStore(t)

	l, err := s.DailyLog("2024-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if l != nil {
		t.Fatalf("log = %+v", l)
	}
}

func TestGetOrCreateDailyLog(t *testing.T) {
	s := newTestStore(t)

	l, err := s.GetOrCreateDailyLog("2024-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if l.Date != "2024-06-01" {
		t.Fatalf("date = %q", l.Date)
	}
	if l.Habits == nil {
		t.Fatal("habits map not initialized")
	}

	// Template is not persisted until saved
	stored, _ := s.DailyLog("2024-06-01")
	if stored != nil {
		t.Fatal("template should not be persisted")
	}
}

func TestSaveDailyLogRequiresDate(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveDailyLog(&DailyLog{}); err == nil {
		t.Fatal("expected error for missing date")
	}
}

func TestSaveDailyLogUpdatedAtMonotonic(t *testing.T) {
	s := newTestStore(t)

	l, _ := s.GetOrCreateDailyLog("2024-06-01")
	if err := s.SaveDailyLog(l); err != nil {
		t.Fatal(err)
	}
	first := l.UpdatedAt

	time.Sleep(1100 * time.Millisecond)
	if err := s.SaveDailyLog(l); err != nil {
		t.Fatal(err)
	}
	if l.UpdatedAt < first {
		t.Fatalf("updated_at went backwards: %s -> %s", first, l.UpdatedAt)
	}

	got, _ := s.DailyLog("2024-06-01")
	if got == nil || got.UpdatedAt != l.UpdatedAt {
		t.Fatal("persisted updated_at mismatch")
	}
}

func TestOneLogPerDate(t *testing.T) {
	s := newTestStore(t)

	l, _ := s.GetOrCreateDailyLog("2024-06-01")
	l.Notes = "first"
	s.SaveDailyLog(l)

	l2, _ := s.GetOrCreateDailyLog("2024-06-01")
	if l2.Notes != "first" {
		t.Fatal("expected existing log back")
	}
	l2.Notes = "second"
	s.SaveDailyLog(l2)

	keys, _ := s.Keys(NSLog)
	if len(keys) != 1 {
		t.Fatalf("expected one log key, got %v", keys)
	}
}

func TestLogsForRange(t *testing.T) {
	s := newTestStore(t)

	for _, d := range []string{"2024-06-01", "2024-06-03", "2024-06-05"} {
		l, _ := s.GetOrCreateDailyLog(d)
		s.SaveDailyLog(l)
	}

	logs, err := s.LogsForRange("2024-06-02", "2024-06-04")
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].Date != "2024-06-03" {
		t.Fatalf("logs = %+v", logs)
	}
}

// ============================================================
// Journal
// ============================================================

func TestJournalAddListDelete(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddJournalEntry(JournalEntry{ID: "e1", Date: "2024-06-01", Body: "first"}); err != nil {
		t.Fatal(err)
	}
	s.AddJournalEntry(JournalEntry{ID: "e2", Date: "2024-06-02", Body: "second"})

	entries, err := s.JournalEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].CreatedAt == "" {
		t.Fatal("created_at not stamped")
	}

	if err := s.DeleteJournalEntry("e1"); err != nil {
		t.Fatal(err)
	}
	entries, _ = s.JournalEntries()
	if len(entries) != 1 || entries[0].ID != "e2" {
		t.Fatalf("entries after delete = %+v", entries)
	}
}

// ============================================================
// Day snapshots, last sync, export
// ============================================================

func TestDaySnapshots(t *testing.T) {
	s := newTestStore(t)

	err := s.SaveDaySnapshot(DaySnapshot{Date: "2024-06-01", DayStreak: 3, HabitStreaks: map[string]int{"reading": 3}})
	if err != nil {
		t.Fatal(err)
	}
	snaps, err := s.DaySnapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].DayStreak != 3 {
		t.Fatalf("snaps = %+v", snaps)
	}
}

func TestLastSync(t *testing.T) {
	s := newTestStore(t)

	ts, err := s.LastSync()
	if err != nil || ts != 0 {
		t.Fatalf("default last sync = %d, %v", ts, err)
	}
	if err := s.SetLastSync(1717228800); err != nil {
		t.Fatal(err)
	}
	ts, _ = s.LastSync()
	if ts != 1717228800 {
		t.Fatalf("last sync = %d", ts)
	}
}

func TestExportSnapshot(t *testing.T) {
	s := newTestStore(t)

	s.SetProfile(&UserProfile{Name: "Kai", FocusModules: []string{"mindset"}})
	s.SetHabits(HabitsData{
		Habits:      []Habit{{ID: "reading", Name: "Read"}},
		Completions: map[string][]string{"2024-06-01": {"reading"}},
	})
	l, _ := s.GetOrCreateDailyLog("2024-06-01")
	s.SaveDailyLog(l)
	s.AddJournalEntry(JournalEntry{ID: "e1", Body: "note"})
	s.SetLastSync(42)

	snap, err := s.ExportSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.Profile == nil || snap.Profile.Name != "Kai" {
		t.Fatalf("profile = %+v", snap.Profile)
	}
	if len(snap.Habits.Habits) != 1 || len(snap.Logs) != 1 || len(snap.Journal) != 1 {
		t.Fatalf("snapshot incomplete: %+v", snap)
	}
	if snap.LastSync != 42 || snap.ExportedAt == "" {
		t.Fatalf("snapshot meta: %+v", snap)
	}
}
