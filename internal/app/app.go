package app

import (
	"context"
	"log/slog"
	"time"

	msql "worklog/internal/adapter/mysql"
	"worklog/internal/adapter/notion"
	"worklog/internal/config"
	"worklog/internal/migrate"
	"worklog/internal/ports"
	"worklog/internal/usecase"
)

// App wires adapters and use cases.
type App struct {
	log     *slog.Logger
	relay   *usecase.SyncRelay
	archive *msql.Archive // nil unless MYSQL_DSN is set
	origins []string
	loc     *time.Location
	now     func() time.Time
}

func New(ctx context.Context, log *slog.Logger, cfg config.Config) (*App, error) {
	ws := notion.NewClient(cfg.Notion.BaseURL, cfg.Notion.Version, cfg.Notion.Timeout, log)

	var archive *msql.Archive
	if cfg.MySQL.DSN != "" {
		// Run migrations before opening the archive for use
		if err := migrate.Run(ctx, cfg.MySQL.DSN, log); err != nil {
			return nil, err
		}
		a, err := msql.NewArchive(ctx, cfg.MySQL.DSN, log)
		if err != nil {
			return nil, err
		}
		archive = a
	} else {
		log.Info("archive disabled, MYSQL_DSN not set")
	}

	a := newApp(log, cfg, ws, nil)
	if archive != nil {
		a.archive = archive
		a.relay.Archive = archive
	}
	return a, nil
}

// newApp builds an App around an arbitrary workspace; tests use it with fakes.
func newApp(log *slog.Logger, cfg config.Config, ws ports.Workspace, archive ports.Archive) *App {
	loc := cfg.Sync.Location
	if loc == nil {
		loc = time.Local
	}
	return &App{
		log: log,
		relay: &usecase.SyncRelay{
			Log:       log,
			Workspace: ws,
			Archive:   archive,
		},
		origins: cfg.HTTP.AllowedOrigins,
		loc:     loc,
		now:     time.Now,
	}
}

// Relay exposes the sync operations to the CLI.
func (a *App) Relay() *usecase.SyncRelay { return a.relay }

// Archive returns the configured archive, or nil.
func (a *App) Archive() ports.Archive {
	if a.archive == nil {
		return nil
	}
	return a.archive
}

// Now returns the current time in the statistics time zone.
func (a *App) Now() time.Time { return a.now().In(a.loc) }

// Location is the time zone used for calendar buckets.
func (a *App) Location() *time.Location { return a.loc }

func (a *App) Close() error {
	if a.archive != nil {
		return a.archive.Close()
	}
	return nil
}
