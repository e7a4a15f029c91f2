package streak

import (
	"testing"
	"time"
)

var today = time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

func TestCalculateEmpty(t *testing.T) {
	if got := Calculate(nil, today); got != 0 {
		t.Fatalf("got %d", got)
	}
	if got := Calculate([]string{}, today); got != 0 {
		t.Fatalf("got %d", got)
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"single day today", []string{"2024-01-10"}, 1},
		{"single day yesterday", []string{"2024-01-09"}, 1},
		{"run ending today", []string{"2024-01-08", "2024-01-09", "2024-01-10"}, 3},
		{"run ending yesterday", []string{"2024-01-07", "2024-01-08", "2024-01-09"}, 3},
		{"gap breaks run", []string{"2024-01-07", "2024-01-09", "2024-01-10"}, 2},
		{"run ended two days ago", []string{"2024-01-06", "2024-01-07", "2024-01-08"}, 0},
		{"unsorted input", []string{"2024-01-10", "2024-01-08", "2024-01-09"}, 3},
		{"duplicates are harmless", []string{"2024-01-10", "2024-01-10", "2024-01-09"}, 2},
		{"future dates ignored", []string{"2024-01-10", "2024-01-12"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Calculate(tt.dates, today); got != tt.want {
				t.Fatalf("Calculate(%v) = %d, want %d", tt.dates, got, tt.want)
			}
		})
	}
}

// Completing 01-01 through 01-03, then uncompleting 01-02, leaves only
// {01-01, 01-03}: with 01-03 as today, the run restarts at a single day.
func TestCalculateAfterUncomplete(t *testing.T) {
	jan3 := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	if got := Calculate([]string{"2024-01-01", "2024-01-03"}, jan3); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestDatesFor(t *testing.T) {
	completions := map[string][]string{
		"2024-01-09": {"reading", "workout"},
		"2024-01-10": {"reading"},
		"2024-01-08": {"workout"},
	}

	dates := DatesFor(completions, "reading")
	if len(dates) != 2 {
		t.Fatalf("dates = %v", dates)
	}
	if len(DatesFor(completions, "missing")) != 0 {
		t.Fatal("expected no dates for unknown habit")
	}
}

func TestCompletionPercent(t *testing.T) {
	dates := []string{"2024-01-10", "2024-01-09", "2024-01-07"}

	if got := CompletionPercent(dates, 4, today); got != 0.75 {
		t.Fatalf("got %v", got)
	}
	if got := CompletionPercent(nil, 7, today); got != 0 {
		t.Fatalf("got %v", got)
	}
	if got := CompletionPercent(dates, 0, today); got != 0 {
		t.Fatalf("got %v", got)
	}
}
