package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	msql "worklog/internal/adapter/mysql"
	"worklog/internal/config"
	"worklog/internal/domain"
	"worklog/internal/entryfile"
	"worklog/internal/stats"
)

var (
	statsFile    string
	statsArchive bool
	statsWeek    bool
	statsNow     string
	statsFormat  string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise time entries from a file or the archive",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFile, "file", "", "Entries file (.json, .yaml or .yml)")
	statsCmd.Flags().BoolVar(&statsArchive, "archive", false, "Read entries from the MySQL archive")
	statsCmd.Flags().BoolVar(&statsWeek, "week", false, "Show the week around --now instead of overall statistics")
	statsCmd.Flags().StringVar(&statsNow, "now", "", "Reference date (YYYY-MM-DD or RFC3339, default: today)")
	statsCmd.Flags().StringVar(&statsFormat, "format", "text", "Output format: text, json")
}

func runStats(cmd *cobra.Command, args []string) error {
	if (statsFile == "") == !statsArchive {
		return errors.New("exactly one of --file or --archive is required")
	}
	if statsFormat != "text" && statsFormat != "json" {
		return fmt.Errorf("unknown format %q", statsFormat)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	now, err := parseDay(statsNow, cfg.Sync.Location, timeNow().In(cfg.Sync.Location))
	if err != nil {
		return err
	}

	var entries []domain.TimeEntry
	if statsArchive {
		if cfg.MySQL.DSN == "" {
			return errors.New("MYSQL_DSN is required with --archive")
		}
		archive, err := msql.NewArchive(cmd.Context(), cfg.MySQL.DSN, logger)
		if err != nil {
			return err
		}
		defer archive.Close()
		if entries, err = archive.LoadEntries(cmd.Context()); err != nil {
			return err
		}
	} else {
		if entries, err = entryfile.Read(statsFile); err != nil {
			return err
		}
	}
	logger.Debug("entries loaded", slog.Int("count", len(entries)))

	out := cmd.OutOrStdout()
	if statsWeek {
		w := stats.Week(entries, now)
		if statsFormat == "json" {
			return writeJSON(out, w)
		}
		printWeek(out, w)
		return nil
	}
	s := stats.Compute(entries, now)
	if statsFormat == "json" {
		return writeJSON(out, s)
	}
	printStats(out, s)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printStats(w io.Writer, s stats.Stats) {
	fmt.Fprintf(w, "Total hours:      %.2f (%d entries)\n", s.TotalHours, s.TotalEntries)
	fmt.Fprintf(w, "This month:       %.2f\n", s.CurrentMonthHours)
	fmt.Fprintf(w, "Last month:       %.2f\n", s.LastMonthHours)
	fmt.Fprintf(w, "Monthly change:   %+.1f%%\n", s.MonthlyChangePercent)
	fmt.Fprintf(w, "Days logged:      %d\n", s.UniqueDays)
	fmt.Fprintf(w, "Daily average:    %.2f\n", s.DailyAverage)
	if len(s.TopProjects) == 0 {
		return
	}
	fmt.Fprintln(w, "\nTop projects:")
	for i, p := range s.TopProjects {
		fmt.Fprintf(w, "  %d. %-24s %7.2f h  %5.1f%%\n", i+1, p.Project, p.Hours, p.Share)
	}
}

func printWeek(w io.Writer, wk stats.WeekSummary) {
	fmt.Fprintf(w, "Week %s (%s to %s)\n", wk.Label, wk.Start.Format("2006-01-02"), wk.End.Format("2006-01-02"))
	for _, d := range wk.Days {
		fmt.Fprintf(w, "  %-9s %s  %6.2f h\n", d.Weekday, d.Date, d.TotalHours)
		for _, e := range d.Entries {
			fmt.Fprintf(w, "      %-20s %5.2f  %s\n", e.Project, e.Hours, e.Description)
		}
	}
	fmt.Fprintf(w, "Total: %.2f h\n", wk.TotalHours)
}
