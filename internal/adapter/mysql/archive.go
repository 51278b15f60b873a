package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"worklog/internal/domain"
)

// Archive implements ports.Archive on the time_entries table.
type Archive struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

// NewArchive opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/worklog?parseTime=true&multiStatements=true
func NewArchive(ctx context.Context, dsn string, log *slog.Logger) (*Archive, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return &Archive{db: db, log: log, now: time.Now}, nil
}

// SaveEntries upserts entries in one transaction. Rows are unique on both the
// entry ID and the external record ID, so a pulled record lands on the row of
// the entry that was pushed as it and that row keeps its entry ID.
func (a *Archive) SaveEntries(ctx context.Context, entries []domain.ArchivedEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := a.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	const q = `
INSERT INTO time_entries
  (id, record_id, project, description, entry_date, hours, start_time, end_time, created_at, source, archived_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  record_id=VALUES(record_id),
  project=VALUES(project),
  description=VALUES(description),
  entry_date=VALUES(entry_date),
  hours=VALUES(hours),
  start_time=VALUES(start_time),
  end_time=VALUES(end_time),
  created_at=COALESCE(created_at, VALUES(created_at)),
  source=VALUES(source),
  archived_at=VALUES(archived_at);
`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	archivedAt := a.now().UTC()
	for _, ae := range entries {
		e := ae.Entry
		if _, err := stmt.ExecContext(
			ctx,
			e.ID,
			nullString(ae.RecordID),
			e.Project,
			e.Description,
			nullTime(e.Date),
			e.Hours,
			e.StartTime,
			e.EndTime,
			nullTime(e.CreatedAt),
			ae.Source,
			archivedAt,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	a.log.Info("archive upserted entries", slog.Int("count", len(entries)))
	return nil
}

// LoadEntries returns every archived entry ordered by date, then creation time.
func (a *Archive) LoadEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	const q = `
SELECT id, project, description, entry_date, hours, start_time, end_time, created_at
FROM time_entries
ORDER BY entry_date, created_at, id;
`
	rows, err := a.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TimeEntry{}
	for rows.Next() {
		var (
			e       domain.TimeEntry
			date    sql.NullTime
			created sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.Project, &e.Description, &date, &e.Hours, &e.StartTime, &e.EndTime, &created); err != nil {
			return nil, err
		}
		if date.Valid {
			e.Date = date.Time
		}
		if created.Valid {
			e.CreatedAt = created.Time
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying DB. Not part of ports.Archive.
func (a *Archive) Close() error { return a.db.Close() }

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
