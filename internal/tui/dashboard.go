package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mastery/internal/checkin"
	"github.com/sadopc/mastery/internal/habit"
	"github.com/sadopc/mastery/internal/stats"
	"github.com/sadopc/mastery/internal/store"
	"github.com/sadopc/mastery/internal/wisdom"
)

type dashboardModel struct {
	store    *store.Store
	habits   *habit.Service
	checkins *checkin.Service
	stats    *stats.Service
	wisdom   *wisdom.Service

	width  int
	height int

	status    checkin.Status
	completed []store.Habit
	pending   []store.Habit
	streaks   map[string]int
	summary   stats.Summary
	headline  string
}

func newDashboardModel(s *store.Store, h *habit.Service, c *checkin.Service, st *stats.Service, w *wisdom.Service) dashboardModel {
	return dashboardModel{
		store:    s,
		habits:   h,
		checkins: c,
		stats:    st,
		wisdom:   w,
		streaks:  make(map[string]int),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	status    checkin.Status
	completed []store.Habit
	pending   []store.Habit
	streaks   map[string]int
	summary   stats.Summary
	headline  string
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		status, _ := d.checkins.TodayStatus()
		completed, pending, _ := d.habits.ByStatus()

		streaks := make(map[string]int)
		for _, h := range append(completed, pending...) {
			streaks[h.ID], _ = d.habits.Streak(h.ID)
		}

		summary, _ := d.stats.Aggregated(7)

		headline := ""
		if profile, _ := d.store.Profile(); profile != nil {
			if bundle, _ := d.wisdom.Daily(profile.FocusModules, status.Date); bundle != nil {
				headline = fmt.Sprintf("%q — %s", bundle.Teaching.Teaching, bundle.Teaching.Master)
			}
		}

		return dashboardDataMsg{
			status:    status,
			completed: completed,
			pending:   pending,
			streaks:   streaks,
			summary:   summary,
			headline:  headline,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if data, ok := msg.(dashboardDataMsg); ok {
		d.status = data.status
		d.completed = data.completed
		d.pending = data.pending
		d.streaks = data.streaks
		d.summary = data.summary
		d.headline = data.headline
	}
	return d, nil
}

func (d dashboardModel) view() string {
	w := d.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("Today — "+d.status.Date))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s morning check-in    %s evening reflection",
		checkmark(d.status.HasMorning), checkmark(d.status.HasEvening)))

	if d.status.HasMorning && d.status.Morning.WinDefinition != "" {
		rows = append(rows, "")
		rows = append(rows, "  Win today: "+highlightStyle.Render(d.status.Morning.WinDefinition))
	}

	rows = append(rows, "")
	rows = append(rows, titleStyle.Render("Habits"))
	if len(d.completed)+len(d.pending) == 0 {
		rows = append(rows, mutedStyle.Render("  No habits yet — press 3, then n to add one"))
	}
	for _, h := range d.completed {
		rows = append(rows, fmt.Sprintf("  %s %-24s %s", checkmark(true), h.Name, formatStreak(d.streaks[h.ID])))
	}
	for _, h := range d.pending {
		rows = append(rows, fmt.Sprintf("  %s %-24s %s", checkmark(false), h.Name, formatStreak(d.streaks[h.ID])))
	}

	rows = append(rows, "")
	rows = append(rows, titleStyle.Render("Last 7 days"))
	rows = append(rows, fmt.Sprintf("  day streak %s   deep work %s   habits %s   avg score %s",
		accentStyle.Render(fmt.Sprintf("%d", d.summary.DayStreak)),
		successStyle.Render(fmt.Sprintf("%.1fh", d.summary.TotalDeepWorkHours)),
		highlightStyle.Render(formatPct(d.summary.HabitCompletionRate)),
		warningStyle.Render(fmt.Sprintf("%.1f", d.summary.AvgDayScore)),
	))

	if d.headline != "" {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  "+d.headline))
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n")),
	)
}
