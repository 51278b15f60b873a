package usecase

import (
	"context"
	"errors"
	"log/slog"

	"worklog/internal/domain"
	"worklog/internal/ports"
)

// UntitledDatabase is reported for collections without a title.
const UntitledDatabase = "Untitled"

// Connection describes a validated external collection.
type Connection struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// SyncRelay moves entries between callers and the external workspace.
// Each operation makes at most one Workspace call and never retries;
// failures are collapsed into the domain error taxonomy.
type SyncRelay struct {
	Log       *slog.Logger
	Workspace ports.Workspace
	Archive   ports.Archive // optional
}

// ValidateConnection checks the credentials and that the collection carries
// every required field.
func (r *SyncRelay) ValidateConnection(ctx context.Context, cfg domain.SyncConfig) (Connection, error) {
	if !cfg.Complete() {
		return Connection{}, domain.ErrMissingCredentials
	}
	schema, err := r.Workspace.RetrieveSchema(ctx, cfg)
	if err != nil {
		r.Log.Error("connection check failed", slog.String("database_id", cfg.DatabaseID), slog.String("error", err.Error()))
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return Connection{}, domain.ErrNotFound
		case errors.Is(err, domain.ErrUnauthorized):
			return Connection{}, domain.ErrUnauthorized
		}
		return Connection{}, domain.ErrConnectionFailed
	}

	var missing []string
	for _, f := range domain.RequiredFields {
		if !schema.HasField(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return Connection{}, &domain.SchemaMismatchError{Missing: missing}
	}

	title := schema.Title
	if title == "" {
		title = UntitledDatabase
	}
	r.Log.Info("connection validated", slog.String("database_id", cfg.DatabaseID), slog.Int("fields", len(schema.Fields)))
	return Connection{Title: title, Fields: schema.Fields}, nil
}

// PushEntry creates an external record for entry and returns its ID.
func (r *SyncRelay) PushEntry(ctx context.Context, entry domain.TimeEntry, cfg *domain.SyncConfig) (string, error) {
	if !cfg.Complete() {
		return "", domain.ErrMissingConfig
	}
	if err := entry.Validate(); err != nil {
		return "", err
	}
	recordID, err := r.Workspace.CreateRecord(ctx, *cfg, recordProperties(entry))
	if err != nil {
		r.Log.Error("push failed", slog.String("entry_id", entry.ID), slog.String("error", err.Error()))
		return "", domain.ErrPushFailed
	}
	r.Log.Info("entry pushed", slog.String("entry_id", entry.ID), slog.String("record_id", recordID))

	r.archive(ctx, domain.ArchivedEntry{Entry: entry, RecordID: recordID, Source: domain.SourcePush})
	return recordID, nil
}

// PullEntries reads every record of the collection, newest date first.
// Malformed records are mapped field by field with defaults; only a failed
// query aborts the pull.
func (r *SyncRelay) PullEntries(ctx context.Context, cfg *domain.SyncConfig) ([]domain.TimeEntry, error) {
	if !cfg.Complete() {
		return nil, domain.ErrMissingConfig
	}
	records, err := r.Workspace.QueryRecords(ctx, *cfg, domain.Query{SortField: domain.FieldDate, Descending: true})
	if err != nil {
		r.Log.Error("pull failed", slog.String("database_id", cfg.DatabaseID), slog.String("error", err.Error()))
		return nil, domain.ErrPullFailed
	}

	entries := make([]domain.TimeEntry, 0, len(records))
	archived := make([]domain.ArchivedEntry, 0, len(records))
	for _, rec := range records {
		e := entryFromRecord(rec)
		entries = append(entries, e)
		archived = append(archived, domain.ArchivedEntry{Entry: e, RecordID: rec.ID, Source: domain.SourcePull})
	}
	r.Log.Info("entries pulled", slog.Int("count", len(entries)))

	r.archive(ctx, archived...)
	return entries, nil
}

// archive mirrors entries when an archive is configured. Failures are logged only.
func (r *SyncRelay) archive(ctx context.Context, entries ...domain.ArchivedEntry) {
	if r.Archive == nil || len(entries) == 0 {
		return
	}
	if err := r.Archive.SaveEntries(ctx, entries); err != nil {
		r.Log.Warn("archive write failed", slog.Int("count", len(entries)), slog.String("error", err.Error()))
	}
}
