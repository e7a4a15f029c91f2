package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/sadopc/mastery/internal/store"

	"github.com/sadopc/mastery/internal/habit"
)

var habitModules = []string{"mindset", "health", "productivity", "money", "lifestyle", "business"}
var habitFrequencies = []string{"daily", "weekly"}

type habitsModel struct {
	habits *habit.Service
	width  int
	height int

	list      []store.Habit
	doneToday map[string]bool
	cursor    int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName      *string
	formModule    *string
	formFrequency *string
}

func newHabitsModel(h *habit.Service) habitsModel {
	name, module, freq := "", habitModules[0], habitFrequencies[0]
	return habitsModel{
		habits:        h,
		doneToday:     make(map[string]bool),
		formName:      &name,
		formModule:    &module,
		formFrequency: &freq,
	}
}

func (h *habitsModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

type habitsDataMsg struct {
	list      []store.Habit
	doneToday map[string]bool
}

func (h habitsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		list, _ := h.habits.Habits()
		done := make(map[string]bool)
		ids, _ := h.habits.TodayCompletions()
		for _, id := range ids {
			done[id] = true
		}
		return habitsDataMsg{list: list, doneToday: done}
	}
}

func (h habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	switch msg := msg.(type) {
	case habitsDataMsg:
		h.list = msg.list
		h.doneToday = msg.doneToday
		if h.cursor >= len(h.list) {
			h.cursor = max(0, len(h.list)-1)
		}
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.list)-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if len(h.list) > 0 {
				return h, h.toggle(h.list[h.cursor].ID)
			}
		case key.Matches(msg, keys.New):
			return h.showNewHabitForm()
		}
	}
	return h, nil
}

func (h habitsModel) toggle(id string) tea.Cmd {
	return func() tea.Msg {
		var err error
		if h.doneToday[id] {
			err = h.habits.Uncomplete(id, "")
		} else {
			err = h.habits.Complete(id, "")
		}
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return habitToggledMsg{id: id}
	}
}

func (h habitsModel) showNewHabitForm() (habitsModel, tea.Cmd) {
	*h.formName = ""
	*h.formModule = habitModules[0]
	*h.formFrequency = habitFrequencies[0]

	moduleOptions := make([]huh.Option[string], len(habitModules))
	for i, m := range habitModules {
		moduleOptions[i] = huh.NewOption(m, m)
	}
	freqOptions := make([]huh.Option[string], len(habitFrequencies))
	for i, f := range habitFrequencies {
		freqOptions[i] = huh.NewOption(f, f)
	}

	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit name").Value(h.formName),
			huh.NewSelect[string]().Title("Module").Options(moduleOptions...).Value(h.formModule),
			huh.NewSelect[string]().Title("Frequency").Options(freqOptions...).Value(h.formFrequency),
		),
	).WithShowHelp(true).WithShowErrors(true)

	h.formActive = true
	return h, h.form.Init()
}

func (h habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	if h.form.State == huh.StateCompleted {
		h.formActive = false
		h.form = nil
		name := strings.TrimSpace(*h.formName)
		module, freq := *h.formModule, *h.formFrequency
		return h, func() tea.Msg {
			if name == "" {
				return statusMsg{text: "Habit name is required", isError: true}
			}
			err := h.habits.Add(store.Habit{
				ID:        uuid.NewString(),
				Name:      name,
				Module:    module,
				Frequency: freq,
			})
			if err != nil {
				return statusMsg{text: err.Error(), isError: true}
			}
			return habitCreatedMsg{name: name}
		}
	}
	return h, cmd
}

func (h habitsModel) view() string {
	w := h.width - 4

	if h.formActive && h.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Habit"), "", h.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Habits"))
	rows = append(rows, "")

	if len(h.list) == 0 {
		rows = append(rows, mutedStyle.Render("  No habits yet — press n to add one"))
	}

	for i, habit := range h.list {
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%s%s %-24s %-14s streak %-5s best %-3d total %d",
			cursor,
			checkmark(h.doneToday[habit.ID]),
			habit.Name,
			mutedStyle.Render(habit.Module),
			formatStreak(habit.CurrentStreak),
			habit.BestStreak,
			habit.TotalCompletions,
		)
		rows = append(rows, style.Render(line))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle today  n: new habit"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
