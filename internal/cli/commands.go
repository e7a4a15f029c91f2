package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sadopc/mastery/internal/export"
	"github.com/sadopc/mastery/internal/offline"
	"github.com/sadopc/mastery/internal/store"
)

func init() {
	rootCmd.AddCommand(wisdomCmd)
	rootCmd.AddCommand(adviceCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(serveCmd)

	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalDeleteCmd)

	// Wisdom command flags
	wisdomCmd.Flags().String("date", "", "Date to draw wisdom for (YYYY-MM-DD, default today)")
	wisdomCmd.Flags().Bool("json", false, "Emit the bundle as JSON")
	wisdomCmd.Flags().StringSlice("modules", nil, "Focus modules (default: profile focus modules)")

	// Export command flags
	exportCmd.Flags().String("format", "json", "Export format (json/csv)")

	// Journal flags
	journalAddCmd.Flags().String("title", "", "Optional entry title")

	// Serve command flags
	serveCmd.Flags().String("origin", "", "Origin server to proxy and cache (required)")
	serveCmd.Flags().String("addr", ":8473", "Listen address")
	serveCmd.MarkFlagRequired("origin")
}

// wisdomCmd prints the deterministic daily wisdom bundle.
var wisdomCmd = &cobra.Command{
	Use:   "wisdom",
	Short: "Print today's wisdom bundle",
	RunE:  handleWisdom,
}

// adviceCmd matches a free-text situation to a master's advice.
var adviceCmd = &cobra.Command{
	Use:   "advice [situation]",
	Short: "Get advice for a situation (e.g. \"negotiating a raise\")",
	Args:  cobra.MinimumNArgs(1),
	RunE:  handleAdvice,
}

// exportCmd writes a backup file.
var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export all data to a JSON backup or a CSV log summary",
	Args:  cobra.MaximumNArgs(1),
	RunE:  handleExport,
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage journal entries",
}

var journalAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a journal entry for today",
	Args:  cobra.MinimumNArgs(1),
	RunE:  handleJournalAdd,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	RunE:  handleJournalList,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a journal entry by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  handleJournalDelete,
}

// serveCmd runs the offline gateway in front of an origin.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard through the offline cache gateway",
	RunE:  handleServe,
}

func handleWisdom(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")
	asJSON, _ := cmd.Flags().GetBool("json")
	modules, _ := cmd.Flags().GetStringSlice("modules")

	if date == "" {
		date = store.Today()
	} else if _, err := time.Parse(store.DateFormat, date); err != nil {
		return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", date)
	}

	if len(modules) == 0 {
		s, err := openStore()
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		profile, _ := s.Profile()
		s.Close()
		if profile != nil && len(profile.FocusModules) > 0 {
			modules = profile.FocusModules
		} else {
			modules = []string{"mindset", "productivity"}
		}
	}

	bundle, err := wisdomService().Daily(modules, date)
	if err != nil {
		return err
	}
	if bundle == nil {
		return fmt.Errorf("no wisdom content found under %s for modules %v", contentDir, modules)
	}

	if asJSON {
		out, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Wisdom for %s\n\n", bundle.Date)
	fmt.Printf("%s — %s\n", bundle.Teaching.Master, bundle.Teaching.Expertise)
	fmt.Printf("  %q\n", bundle.Teaching.Teaching)
	fmt.Printf("  Practice: %s\n\n", bundle.Teaching.Practice)
	fmt.Printf("Insight: %s\n", bundle.Insight)
	fmt.Printf("Challenge (%s): %s\n", bundle.Challenge.ModuleName, bundle.Challenge.Challenge)
	fmt.Printf("Power question: %s\n", bundle.PowerQuestion)
	fmt.Printf("Reframe: %q -> %q (%s)\n", bundle.MindsetShift.From, bundle.MindsetShift.To, bundle.MindsetShift.Why)
	return nil
}

func handleAdvice(cmd *cobra.Command, args []string) error {
	situation := strings.Join(args, " ")
	fmt.Println(wisdomService().AdviceForSituation(situation))
	return nil
}

func handleExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "json" && format != "csv" {
		return fmt.Errorf("unknown format %q: want json or csv", format)
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		path = fmt.Sprintf("mastery-export-%s.%s", time.Now().Format(store.DateFormat), format)
	}

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	snap, err := s.ExportSnapshot()
	if err != nil {
		return err
	}

	if format == "csv" {
		err = export.ToCSV(snap.Logs, snap.Habits.Completions, path)
	} else {
		err = export.ToJSON(*snap, path)
	}
	if err != nil {
		return err
	}

	abs, _ := filepath.Abs(path)
	fmt.Printf("Exported to %s\n", abs)
	return nil
}

func handleJournalAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	entry := store.JournalEntry{
		ID:        uuid.NewString(),
		Date:      store.Today(),
		Title:     title,
		Body:      strings.Join(args, " "),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.AddJournalEntry(entry); err != nil {
		return err
	}
	fmt.Printf("Added entry %s\n", entry.ID)
	return nil
}

func handleJournalList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	entries, err := s.JournalEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No journal entries yet.")
		return nil
	}

	for _, e := range entries {
		header := e.Date
		if e.Title != "" {
			header += "  " + e.Title
		}
		fmt.Printf("%s  %s\n  %s\n", e.ID, header, e.Body)
	}
	return nil
}

func handleJournalDelete(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	if err := s.DeleteJournalEntry(args[0]); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func handleServe(cmd *cobra.Command, args []string) error {
	originStr, _ := cmd.Flags().GetString("origin")
	addr, _ := cmd.Flags().GetString("addr")

	origin, err := url.Parse(originStr)
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return fmt.Errorf("invalid --origin %q: want an absolute URL", originStr)
	}

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	worker := offline.NewWorker(offline.NewKVStorage(s), &offline.HTTPFetcher{Base: origin})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := worker.Install(ctx); err != nil {
		return fmt.Errorf("precaching from %s: %w", origin, err)
	}
	if err := worker.Activate(ctx); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Serving %s on %s (cached offline fallback enabled)\n", origin, addr)
	return http.ListenAndServe(addr, &offline.Gateway{Worker: worker})
}
