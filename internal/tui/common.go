package tui

import (
	"fmt"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewCheckin
	viewHabits
	viewStats
	viewWisdom
)

var viewNames = []string{"Dashboard", "Check-in", "Habits", "Stats", "Wisdom"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type checkinSavedMsg struct {
	kind string // "morning" or "evening"
}

type habitToggledMsg struct {
	id string
}

type habitCreatedMsg struct {
	name string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatPct(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func formatStreak(n int) string {
	if n <= 0 {
		return "—"
	}
	return fmt.Sprintf("%d🔥", n)
}

func checkmark(done bool) string {
	if done {
		return successStyle.Render("✓")
	}
	return mutedStyle.Render("○")
}
