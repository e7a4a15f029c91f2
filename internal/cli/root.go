// Package cli implements the mastery command tree. Running the binary with
// no subcommand opens the terminal UI.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/mastery/internal/store"
	"github.com/sadopc/mastery/internal/tui"
	"github.com/sadopc/mastery/internal/wisdom"
)

// Global flags
var (
	dbPath     string
	contentDir string
)

// rootCmd is the base command: with no subcommand it launches the TUI.
var rootCmd = &cobra.Command{
	Use:   "mastery",
	Short: "mastery – daily self-improvement tracker",
	Long:  `Track habits, morning/evening check-ins and streaks, and get a daily dose of curated wisdom.`,
	RunE:  handleTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: <user config dir>/mastery/mastery.db)")
	rootCmd.PersistentFlags().StringVar(&contentDir, "content", "knowledge_base", "Directory holding <module>_masters.json content files")
}

// openStore opens the database honoring the --db flag.
func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.New(path)
}

func wisdomService() *wisdom.Service {
	return wisdom.NewService(wisdom.NewDirRegistry(contentDir))
}

func handleTUI(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	app := tui.NewApp(s, wisdomService())
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
