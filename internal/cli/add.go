package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"worklog/internal/app"
	"worklog/internal/config"
	"worklog/internal/domain"
	"worklog/internal/entryfile"
)

var (
	addFile        string
	addProject     string
	addDescription string
	addHours       float64
	addDate        string
	addStart       string
	addEnd         string
	addPush        bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a time entry in a local file",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addFile, "file", "entries.json", "Entries file (.json, .yaml or .yml)")
	addCmd.Flags().StringVarP(&addProject, "project", "p", "", "Project name")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "What was done")
	addCmd.Flags().Float64Var(&addHours, "hours", 0, "Hours spent (0 < hours <= 24)")
	addCmd.Flags().StringVar(&addDate, "date", "", "Day of the work (YYYY-MM-DD, default: today)")
	addCmd.Flags().StringVar(&addStart, "start", "", "Start time (HH:MM)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "End time (HH:MM)")
	addCmd.Flags().BoolVar(&addPush, "push", false, "Also push the entry to the Notion database")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	now := timeNow().In(cfg.Sync.Location)
	day, err := parseDay(addDate, cfg.Sync.Location, now)
	if err != nil {
		return err
	}
	start, err := parseClock(addStart)
	if err != nil {
		return err
	}
	end, err := parseClock(addEnd)
	if err != nil {
		return err
	}

	entry, err := domain.NewEntry(domain.EntryInput{
		Project:     addProject,
		Description: addDescription,
		Date:        day,
		Hours:       addHours,
		StartTime:   start,
		EndTime:     end,
	}, now.UTC())
	if err != nil {
		return err
	}
	if err := entryfile.Append(addFile, entry); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %s: %.2f h on %s (%s)\n", entry.ID, entry.Hours, entry.Project, day.Format("2006-01-02"))

	if !addPush {
		return nil
	}
	application, err := app.New(cmd.Context(), logger, cfg)
	if err != nil {
		return err
	}
	defer application.Close()
	sc := &domain.SyncConfig{APIToken: cfg.Notion.APIToken, DatabaseID: cfg.Notion.DatabaseID}
	recordID, err := application.Relay().PushEntry(cmd.Context(), entry, sc)
	if err != nil {
		return err
	}
	logger.Info("entry pushed", slog.String("record_id", recordID))
	return nil
}
