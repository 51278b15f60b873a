package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"worklog/internal/app"
	"worklog/internal/config"
	"worklog/internal/domain"
	"worklog/internal/entryfile"
)

var pullOut string

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch all entries from the Notion database",
	Long: `pull reads every entry of the database named by NOTION_DATABASE_ID using
NOTION_API_TOKEN. Entries are written to --out, or printed as JSON.`,
	Args: cobra.NoArgs,
	RunE: runPull,
}

func init() {
	pullCmd.Flags().StringVar(&pullOut, "out", "", "Write entries to this file (.json, .yaml or .yml)")
}

func runPull(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	application, err := app.New(cmd.Context(), logger, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	sc := &domain.SyncConfig{APIToken: cfg.Notion.APIToken, DatabaseID: cfg.Notion.DatabaseID}
	entries, err := application.Relay().PullEntries(cmd.Context(), sc)
	if err != nil {
		return err
	}

	if pullOut == "" {
		return writeJSON(cmd.OutOrStdout(), entries)
	}
	if err := entryfile.Write(pullOut, entries); err != nil {
		return err
	}
	logger.Info("entries written", slog.String("path", pullOut), slog.Int("count", len(entries)))
	return nil
}
