package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxEntryHours bounds a single entry to one calendar day of work.
const MaxEntryHours = 24

// TimeEntry is one logged unit of work.
// Only the calendar day of Date is significant; it is kept as a full timestamp.
type TimeEntry struct {
	ID          string    `yaml:"id"`
	Project     string    `yaml:"project"`
	Description string    `yaml:"description"`
	Date        time.Time `yaml:"date"`
	Hours       float64   `yaml:"hours"`
	StartTime   string    `yaml:"start_time,omitempty"`
	EndTime     string    `yaml:"end_time,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
}

// EntryInput carries the user supplied fields of a new entry.
type EntryInput struct {
	Project     string
	Description string
	Date        time.Time
	Hours       float64
	StartTime   string
	EndTime     string
}

// NewEntry validates in and returns an entry with a fresh ID and CreatedAt set to now.
func NewEntry(in EntryInput, now time.Time) (TimeEntry, error) {
	e := TimeEntry{
		ID:          uuid.NewString(),
		Project:     strings.TrimSpace(in.Project),
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
		Hours:       in.Hours,
		StartTime:   strings.TrimSpace(in.StartTime),
		EndTime:     strings.TrimSpace(in.EndTime),
		CreatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return TimeEntry{}, err
	}
	return e, nil
}

// EnsureIdentity fills in ID and CreatedAt when the caller left them empty.
func (e *TimeEntry) EnsureIdentity(now time.Time) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
}

// Validate reports whether the entry satisfies the creation invariants.
func (e TimeEntry) Validate() error {
	switch {
	case strings.TrimSpace(e.Project) == "":
		return fmt.Errorf("%w: project name is required", ErrInvalidEntry)
	case strings.TrimSpace(e.Description) == "":
		return fmt.Errorf("%w: description is required", ErrInvalidEntry)
	case e.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	case math.IsNaN(e.Hours) || e.Hours <= 0:
		return fmt.Errorf("%w: hours must be greater than 0", ErrInvalidEntry)
	case e.Hours > MaxEntryHours:
		return fmt.Errorf("%w: hours must not exceed %d", ErrInvalidEntry, MaxEntryHours)
	}
	return nil
}

// entryJSON is the wire shape shared with the browser client.
type entryJSON struct {
	ID          string  `json:"id"`
	Project     string  `json:"project"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	CreatedAt   string  `json:"createdAt"`
}

// MarshalJSON renders timestamps as RFC3339 and zero timestamps as "".
func (e TimeEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		ID:          e.ID,
		Project:     e.Project,
		Description: e.Description,
		Date:        FormatTimestamp(e.Date),
		Hours:       e.Hours,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		CreatedAt:   FormatTimestamp(e.CreatedAt),
	})
}

func (e *TimeEntry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := ParseTimestamp(raw.Date)
	if err != nil {
		return fmt.Errorf("entry date: %w", err)
	}
	created, err := ParseTimestamp(raw.CreatedAt)
	if err != nil {
		return fmt.Errorf("entry createdAt: %w", err)
	}
	*e = TimeEntry{
		ID:          raw.ID,
		Project:     raw.Project,
		Description: raw.Description,
		Date:        date,
		Hours:       raw.Hours,
		StartTime:   raw.StartTime,
		EndTime:     raw.EndTime,
		CreatedAt:   created,
	}
	return nil
}

// ParseTimestamp accepts RFC3339 (with or without fractional seconds) or a
// date-only YYYY-MM-DD value, which is read as midnight UTC. An empty string
// yields the zero time.
//
// Date-only values include every date pulled from the workspace. Bucketed in
// a location west of UTC they fall on the previous calendar day, so callers
// of stats.Compute with such a location see them one day early.
func ParseTimestamp(val string) (time.Time, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.Parse(time.DateOnly, val); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected RFC3339 or YYYY-MM-DD", val)
}

// FormatTimestamp is the inverse of ParseTimestamp for non date-only values.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
