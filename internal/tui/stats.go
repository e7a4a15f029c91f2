package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mastery/internal/stats"
	"github.com/sadopc/mastery/internal/store"
)

type statsRange int

const (
	rangeWeek statsRange = iota
	rangeMonth
)

func (r statsRange) days() int {
	if r == rangeMonth {
		return 30
	}
	return 7
}

type statsModel struct {
	store *store.Store
	stats *stats.Service

	width  int
	height int

	mode    statsRange
	summary stats.Summary
	logs    []store.DailyLog

	chart barchart.Model
}

func newStatsModel(s *store.Store, st *stats.Service) statsModel {
	return statsModel{
		store: s,
		stats: st,
		chart: barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type statsDataMsg struct {
	summary stats.Summary
	logs    []store.DailyLog
}

func (s statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		summary, _ := s.stats.Aggregated(s.mode.days())
		logs, _ := s.store.RecentLogs(s.mode.days())
		return statsDataMsg{summary: summary, logs: logs}
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		s.summary = msg.summary
		s.logs = msg.logs
		s.buildChart()
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Tab) {
			if s.mode == rangeWeek {
				s.mode = rangeMonth
			} else {
				s.mode = rangeWeek
			}
			return s, s.refresh()
		}
	}
	return s, nil
}

// buildChart plots the day score per date over the selected window.
func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	scores := make(map[string]int, len(s.logs))
	for _, l := range s.logs {
		if l.PMReflection != nil {
			scores[l.Date] = l.PMReflection.DayScore
		}
	}

	days := s.mode.days()
	if days > 14 {
		days = 14 // keep bar labels readable
	}

	var bars []barchart.BarData
	day := time.Now().AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		dateStr := day.Format(store.DateFormat)
		label := day.Format("02")

		value := float64(scores[dateStr])
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if value == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: dateStr, Value: value, Style: style}},
		})
		day = day.AddDate(0, 0, 1)
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	weekTab := inactiveTabStyle.Render("7 days")
	monthTab := inactiveTabStyle.Render("30 days")
	if s.mode == rangeWeek {
		weekTab = activeTabStyle.Render("7 days")
	} else {
		monthTab = activeTabStyle.Render("30 days")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", weekTab, monthTab,
	)

	sum := s.summary
	table := strings.Join([]string{
		mutedStyle.Render(fmt.Sprintf("  %-24s %8s", "Metric", "Value")),
		mutedStyle.Render("  " + strings.Repeat("─", 34)),
		fmt.Sprintf("  %-24s %8d", "Morning check-ins", sum.MorningCheckins),
		fmt.Sprintf("  %-24s %8d", "Evening reflections", sum.EveningReflections),
		fmt.Sprintf("  %-24s %8.1f", "Avg sleep (h)", sum.AvgSleepHours),
		fmt.Sprintf("  %-24s %8.1f", "Avg energy", sum.AvgEnergyLevel),
		fmt.Sprintf("  %-24s %8.1f", "Avg day score", sum.AvgDayScore),
		fmt.Sprintf("  %-24s %8.1f", "Deep work (h)", sum.TotalDeepWorkHours),
		fmt.Sprintf("  %-24s %8d", "Workouts", sum.TotalWorkouts),
		fmt.Sprintf("  %-24s %8s", "Habit completion", formatPct(sum.HabitCompletionRate)),
		fmt.Sprintf("  %-24s %8d", "Day streak", sum.DayStreak),
	}, "\n")

	nav := mutedStyle.Render("  tab: switch range")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", s.chart.View(), "", table, "", nav,
		),
	)
}
