package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mastery/internal/checkin"
)

type checkinModel struct {
	checkins *checkin.Service
	width    int
	height   int

	status checkin.Status

	formActive bool
	form       *huh.Form
	formType   string // "morning" or "evening"

	// Form field pointers (survive value copies)
	sleepHours   *string
	sleepQuality *string
	energy       *string
	priorities   *string
	winDef       *string

	wins        *string
	challenges  *string
	lessons     *string
	improvement *string
	deepWork    *string
	dayScore    *string
}

func newCheckinModel(c *checkin.Service) checkinModel {
	sh, sq, en, pr, wd := "", "7", "7", "", ""
	wi, ch, le, im, dw, ds := "", "", "", "", "", "7"
	return checkinModel{
		checkins:     c,
		sleepHours:   &sh,
		sleepQuality: &sq,
		energy:       &en,
		priorities:   &pr,
		winDef:       &wd,
		wins:         &wi,
		challenges:   &ch,
		lessons:      &le,
		improvement:  &im,
		deepWork:     &dw,
		dayScore:     &ds,
	}
}

func (c *checkinModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type checkinStatusMsg struct {
	status checkin.Status
}

func (c checkinModel) refresh() tea.Cmd {
	return func() tea.Msg {
		status, _ := c.checkins.TodayStatus()
		return checkinStatusMsg{status: status}
	}
}

func ratingOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 10)
	for i := 1; i <= 10; i++ {
		s := strconv.Itoa(i)
		opts[i-1] = huh.NewOption(s, s)
	}
	return opts
}

func (c checkinModel) update(msg tea.Msg) (checkinModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case checkinStatusMsg:
		c.status = msg.status
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Morning):
			return c.showMorningForm()
		case key.Matches(msg, keys.Evening):
			return c.showEveningForm()
		}
	}
	return c, nil
}

func (c checkinModel) showMorningForm() (checkinModel, tea.Cmd) {
	*c.sleepHours = ""
	*c.sleepQuality = "7"
	*c.energy = "7"
	*c.priorities = ""
	*c.winDef = ""
	c.formType = "morning"

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Hours of sleep").Value(c.sleepHours),
			huh.NewSelect[string]().Title("Sleep quality (1-10)").Options(ratingOptions()...).Value(c.sleepQuality),
			huh.NewSelect[string]().Title("Energy level (1-10)").Options(ratingOptions()...).Value(c.energy),
			huh.NewInput().Title("Top 3 priorities (comma-separated)").Value(c.priorities),
			huh.NewInput().Title("What would make today a win?").Value(c.winDef),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c checkinModel) showEveningForm() (checkinModel, tea.Cmd) {
	*c.wins = ""
	*c.challenges = ""
	*c.lessons = ""
	*c.improvement = ""
	*c.deepWork = "0"
	*c.dayScore = "7"
	c.formType = "evening"

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Wins (comma-separated)").Value(c.wins),
			huh.NewInput().Title("Challenges (comma-separated)").Value(c.challenges),
			huh.NewInput().Title("Lessons (comma-separated)").Value(c.lessons),
			huh.NewInput().Title("One improvement for tomorrow").Value(c.improvement),
			huh.NewInput().Title("Deep work hours").Value(c.deepWork),
			huh.NewSelect[string]().Title("Day score (1-10)").Options(ratingOptions()...).Value(c.dayScore),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c checkinModel) updateForm(msg tea.Msg) (checkinModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		formType := c.formType
		c.form = nil
		return c, c.submit(formType)
	}
	return c, cmd
}

func (c checkinModel) submit(formType string) tea.Cmd {
	return func() tea.Msg {
		if formType == "morning" {
			hours, err := strconv.ParseFloat(strings.TrimSpace(*c.sleepHours), 64)
			if err != nil {
				return statusMsg{text: "Sleep hours must be a number", isError: true}
			}
			in := checkin.MorningInput{
				SleepHours:    hours,
				SleepQuality:  atoi(*c.sleepQuality),
				EnergyLevel:   atoi(*c.energy),
				TopPriorities: splitList(*c.priorities),
				WinDefinition: *c.winDef,
			}
			if err := c.checkins.SaveMorning(in); err != nil {
				return statusMsg{text: err.Error(), isError: true}
			}
			return checkinSavedMsg{kind: "morning"}
		}

		deepWork, err := strconv.ParseFloat(strings.TrimSpace(*c.deepWork), 64)
		if err != nil {
			return statusMsg{text: "Deep work hours must be a number", isError: true}
		}
		in := checkin.EveningInput{
			Wins:                   splitList(*c.wins),
			Challenges:             splitList(*c.challenges),
			Lessons:                splitList(*c.lessons),
			ImprovementForTomorrow: *c.improvement,
			DeepWorkHours:          deepWork,
			DayScore:               atoi(*c.dayScore),
		}
		if err := c.checkins.SaveEvening(in); err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return checkinSavedMsg{kind: "evening"}
	}
}

func (c checkinModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		title := "Morning Check-in"
		if c.formType == "evening" {
			title = "Evening Reflection"
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", c.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Check-in — "+c.status.Date))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s morning check-in", checkmark(c.status.HasMorning)))
	if c.status.HasMorning {
		m := c.status.Morning
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("      slept %.1fh  quality %d/10  energy %d/10",
			m.SleepHours, m.SleepQuality, m.EnergyLevel)))
		for _, p := range m.TopPriorities {
			rows = append(rows, "      • "+p)
		}
	}
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s evening reflection", checkmark(c.status.HasEvening)))
	if c.status.HasEvening {
		e := c.status.Evening
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("      day score %d/10", e.DayScore)))
		if e.MainWinAchieved {
			rows = append(rows, successStyle.Render("      main win achieved"))
		}
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  m: morning check-in  v: evening reflection"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
