package ports

import (
	"context"

	"worklog/internal/domain"
)

// Workspace is the external workspace database. Credentials travel with
// every call; implementations hold no per-user state.
type Workspace interface {
	RetrieveSchema(ctx context.Context, cfg domain.SyncConfig) (domain.Schema, error)
	CreateRecord(ctx context.Context, cfg domain.SyncConfig, props map[string]domain.Property) (string, error)
	QueryRecords(ctx context.Context, cfg domain.SyncConfig, q domain.Query) ([]domain.Record, error)
}

// Archive mirrors synced entries into local storage.
// It is optional; the relay works without one.
type Archive interface {
	SaveEntries(ctx context.Context, entries []domain.ArchivedEntry) error
	LoadEntries(ctx context.Context) ([]domain.TimeEntry, error)
}
