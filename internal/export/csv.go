package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/mastery/internal/store"
)

// ToCSV writes daily logs as a flat spreadsheet, one row per date. Habit
// completions are kept separately from the logs, so they are joined in by
// date here.
func ToCSV(logs []store.DailyLog, completions map[string][]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Sleep (h)", "Sleep Quality", "Energy", "Day Score", "Deep Work (h)", "Workouts", "Habits Done", "Main Win"}); err != nil {
		return err
	}

	for _, l := range logs {
		sleep, quality, energy := "", "", ""
		if l.AMCheckin != nil {
			sleep = fmt.Sprintf("%.1f", l.AMCheckin.SleepHours)
			quality = fmt.Sprintf("%d", l.AMCheckin.SleepQuality)
			energy = fmt.Sprintf("%d", l.AMCheckin.EnergyLevel)
		}
		score, mainWin := "", ""
		if l.PMReflection != nil {
			score = fmt.Sprintf("%d", l.PMReflection.DayScore)
			mainWin = fmt.Sprintf("%t", l.PMReflection.MainWinAchieved)
		}
		row := []string{
			l.Date,
			sleep,
			quality,
			energy,
			score,
			fmt.Sprintf("%.1f", l.Metrics.DeepWorkHours),
			fmt.Sprintf("%d", l.Metrics.Workouts),
			fmt.Sprintf("%d", len(completions[l.Date])),
			mainWin,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
