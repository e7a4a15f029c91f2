// Package tui is the terminal front end: a tabbed Bubble Tea app over the
// tracker services.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mastery/internal/cache"
	"github.com/sadopc/mastery/internal/checkin"
	"github.com/sadopc/mastery/internal/export"
	"github.com/sadopc/mastery/internal/habit"
	"github.com/sadopc/mastery/internal/stats"
	"github.com/sadopc/mastery/internal/store"
	"github.com/sadopc/mastery/internal/wisdom"
)

// App is the root Bubble Tea model.
type App struct {
	store    *store.Store
	habits   *habit.Service
	checkins *checkin.Service
	stats    *stats.Service
	wisdom   *wisdom.Service

	width  int
	height int

	activeView viewState
	showHelp   bool

	dashboard dashboardModel
	checkinV  checkinModel
	habitsV   habitsModel
	statsV    statsModel
	wisdomV   wisdomModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, w *wisdom.Service) App {
	c := cache.New(s)
	habits := habit.NewService(s, c)
	checkins := checkin.NewService(s)
	statsSvc := stats.NewService(s, c)

	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		habits:     habits,
		checkins:   checkins,
		stats:      statsSvc,
		wisdom:     w,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s, habits, checkins, statsSvc, w),
		checkinV:   newCheckinModel(checkins),
		habitsV:    newHabitsModel(habits),
		statsV:     newStatsModel(s, statsSvc),
		wisdomV:    newWisdomModel(s, w),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.dashboard.loadData()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.checkinV.setSize(a.width, contentHeight)
		a.habitsV.setSize(a.width, contentHeight)
		a.statsV.setSize(a.width, contentHeight)
		a.wisdomV.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// If a child view is capturing input (a form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Export):
			return a, a.doExport()
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewCheckin
			return a, a.checkinV.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewHabits
			return a, a.habitsV.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewStats
			return a, a.statsV.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewWisdom
			return a, a.wisdomV.load()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case checkinSavedMsg:
		a.status = "Saved " + msg.kind + " check-in"
		a.stats.InvalidateAll()
		return a, a.checkinV.refresh()

	case habitToggledMsg:
		a.stats.InvalidateAll()
		return a, a.habitsV.refresh()

	case habitCreatedMsg:
		a.status = "Added habit " + msg.name
		return a, a.habitsV.refresh()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewCheckin:
		a.checkinV, cmd = a.checkinV.update(msg)
	case viewHabits:
		a.habitsV, cmd = a.habitsV.update(msg)
	case viewStats:
		a.statsV, cmd = a.statsV.update(msg)
	case viewWisdom:
		a.wisdomV, cmd = a.wisdomV.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewCheckin:
		return a.checkinV.formActive
	case viewHabits:
		return a.habitsV.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewCheckin:
		return a.checkinV.refresh()
	case viewHabits:
		return a.habitsV.refresh()
	case viewStats:
		return a.statsV.refresh()
	case viewWisdom:
		return a.wisdomV.load()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewCheckin:
		content = a.checkinV.view()
	case viewHabits:
		content = a.habitsV.view()
	case viewStats:
		content = a.statsV.view()
	case viewWisdom:
		content = a.wisdomV.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("mastery")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) doExport() tea.Cmd {
	return func() tea.Msg {
		snap, err := a.store.ExportSnapshot()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		path := filepath.Join(home, fmt.Sprintf("mastery-export-%s.json", time.Now().Format("2006-01-02")))
		if err := export.ToJSON(*snap, path); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
