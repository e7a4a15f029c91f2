package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/mastery/internal/store"
	"github.com/sadopc/mastery/internal/wisdom"
)

type wisdomModel struct {
	store  *store.Store
	wisdom *wisdom.Service

	width  int
	height int

	bundle   *wisdom.Bundle
	question string // extra ambient question, refreshed on demand
}

func newWisdomModel(s *store.Store, w *wisdom.Service) wisdomModel {
	return wisdomModel{store: s, wisdom: w}
}

func (m *wisdomModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type wisdomDataMsg struct {
	bundle *wisdom.Bundle
}

type wisdomQuestionMsg struct {
	question string
}

func (m wisdomModel) load() tea.Cmd {
	return func() tea.Msg {
		modules := []string{"mindset", "productivity"}
		if profile, _ := m.store.Profile(); profile != nil && len(profile.FocusModules) > 0 {
			modules = profile.FocusModules
		}
		bundle, _ := m.wisdom.Daily(modules, store.Today())
		return wisdomDataMsg{bundle: bundle}
	}
}

func (m wisdomModel) update(msg tea.Msg) (wisdomModel, tea.Cmd) {
	switch msg := msg.(type) {
	case wisdomDataMsg:
		m.bundle = msg.bundle
		return m, nil

	case wisdomQuestionMsg:
		m.question = msg.question
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Refresh) {
			return m, func() tea.Msg {
				return wisdomQuestionMsg{question: m.wisdom.RandomPowerQuestion()}
			}
		}
	}
	return m, nil
}

func (m wisdomModel) view() string {
	w := m.width - 6

	if m.bundle == nil {
		return panelStyle.Width(w).Render(
			mutedStyle.Render("No wisdom content available.\nAdd focus modules to your profile and content files under the knowledge base."),
		)
	}

	b := m.bundle
	var rows []string

	rows = append(rows, titleStyle.Render("Today's Wisdom — "+b.Date))
	rows = append(rows, "")
	rows = append(rows, accentStyle.Render(b.Teaching.Master)+mutedStyle.Render(" — "+b.Teaching.Expertise))
	rows = append(rows, "")
	rows = append(rows, highlightStyle.Render("“"+b.Teaching.Teaching+"”"))
	rows = append(rows, "")
	rows = append(rows, titleStyle.Render("Practice")+"  "+b.Teaching.Practice)
	rows = append(rows, titleStyle.Render("Insight")+"   "+b.Insight)
	rows = append(rows, "")
	rows = append(rows, warningStyle.Render("Challenge ("+b.Challenge.ModuleName+")"))
	rows = append(rows, "  "+b.Challenge.Challenge)
	rows = append(rows, "")
	rows = append(rows, successStyle.Render("Power question"))
	rows = append(rows, "  "+b.PowerQuestion)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Reframe: “"+b.MindsetShift.From+"” → “"+b.MindsetShift.To+"”"))
	rows = append(rows, mutedStyle.Render("         "+b.MindsetShift.Why))

	if m.question != "" {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("Bonus: "+m.question))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("r: another question"))

	return wisdomCardStyle.Width(w).Render(strings.Join(rows, "\n"))
}
