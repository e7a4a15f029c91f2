package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/mastery/internal/cache"
	"github.com/sadopc/mastery/internal/habit"
	"github.com/sadopc/mastery/internal/store"
)

func sampleSnapshot() store.Snapshot {
	am := &store.AMCheckin{SleepHours: 7.5, SleepQuality: 8, EnergyLevel: 7}
	pm := &store.PMReflection{DayScore: 9, Wins: []string{"shipped"}, MainWinAchieved: true}

	return store.Snapshot{
		ExportedAt: "2024-06-10T20:00:00Z",
		Profile:    &store.UserProfile{Name: "Sam", FocusModules: []string{"mindset"}},
		Habits: store.HabitsData{
			Habits:      []store.Habit{{ID: "reading", Name: "Read", CurrentStreak: 3}},
			Completions: map[string][]string{"2024-06-10": {"reading"}},
		},
		Logs: []store.DailyLog{
			{
				Date:         "2024-06-10",
				AMCheckin:    am,
				PMReflection: pm,
				Metrics:      store.Metrics{DeepWorkHours: 4, Workouts: 1},
			},
			{Date: "2024-06-09"},
		},
		Journal: []store.JournalEntry{{ID: "j1", Date: "2024-06-10", Title: "Notes"}},
	}
}

// ============================================================
// JSON export
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	if err := ToJSON(sampleSnapshot(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got store.Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Profile == nil || got.Profile.Name != "Sam" {
		t.Fatalf("profile = %+v", got.Profile)
	}
	if len(got.Logs) != 2 || got.Logs[0].AMCheckin.SleepQuality != 8 {
		t.Fatalf("logs = %+v", got.Logs)
	}
	if len(got.Habits.Completions["2024-06-10"]) != 1 {
		t.Fatalf("completions = %v", got.Habits.Completions)
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(sampleSnapshot(), filepath.Join(t.TempDir(), "missing", "backup.json"))
	if err == nil {
		t.Fatal("expected write error")
	}
}

// ============================================================
// CSV export
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")

	snap := sampleSnapshot()
	if err := ToCSV(snap.Logs, snap.Habits.Completions, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Date,") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "2024-06-10") || !strings.Contains(lines[1], "7.5") {
		t.Fatalf("row = %q", lines[1])
	}
	if got := strings.Split(lines[1], ",")[7]; got != "1" {
		t.Fatalf("habits done = %q", got)
	}
	// A date without check-ins still exports, with blank fields and no
	// habit completions.
	if !strings.Contains(lines[2], "2024-06-09") {
		t.Fatalf("row = %q", lines[2])
	}
	if got := strings.Split(lines[2], ",")[7]; got != "0" {
		t.Fatalf("habits done = %q", got)
	}
}

// TestToCSVCountsServiceCompletions drives the real flow: completions made
// through the habit service must show up in the exported rows.
func TestToCSVCountsServiceCompletions(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	habits := habit.NewService(s, cache.New(s))
	if err := habits.Add(store.Habit{ID: "reading", Name: "Read", Module: "mindset", Frequency: "daily"}); err != nil {
		t.Fatal(err)
	}
	if err := habits.Complete("reading", ""); err != nil {
		t.Fatal(err)
	}
	log, err := s.GetOrCreateDailyLog(store.Today())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDailyLog(log); err != nil {
		t.Fatal(err)
	}

	snap, err := s.ExportSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "logs.csv")
	if err := ToCSV(snap.Logs, snap.Habits.Completions, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	if got := strings.Split(lines[1], ",")[7]; got != "1" {
		t.Fatalf("habits done = %q, row = %q", got, lines[1])
	}
}
