package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	now := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
	day := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	valid := EntryInput{Project: "  Acme ", Description: "Review ", Date: day, Hours: 1.5}

	e, err := NewEntry(valid, now)
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	if e.ID == "" || e.Project != "Acme" || e.Description != "Review" || !e.CreatedAt.Equal(now) {
		t.Errorf("entry = %+v", e)
	}
	other, _ := NewEntry(valid, now)
	if other.ID == e.ID {
		t.Errorf("IDs not unique: %s", e.ID)
	}

	tests := []struct {
		name   string
		mutate func(*EntryInput)
		msg    string
	}{
		{"blank project", func(in *EntryInput) { in.Project = "   " }, "project"},
		{"blank description", func(in *EntryInput) { in.Description = "" }, "description"},
		{"no date", func(in *EntryInput) { in.Date = time.Time{} }, "date"},
		{"zero hours", func(in *EntryInput) { in.Hours = 0 }, "greater than 0"},
		{"negative hours", func(in *EntryInput) { in.Hours = -1 }, "greater than 0"},
		{"NaN hours", func(in *EntryInput) { in.Hours = math.NaN() }, "greater than 0"},
		{"too many hours", func(in *EntryInput) { in.Hours = 24.5 }, "exceed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := NewEntry(in, now)
			if !errors.Is(err, ErrInvalidEntry) || !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("err = %v, want invalid entry mentioning %q", err, tt.msg)
			}
		})
	}

	in := valid
	in.Hours = 24
	if _, err := NewEntry(in, now); err != nil {
		t.Errorf("24 hours rejected: %v", err)
	}
}

func TestEnsureIdentity(t *testing.T) {
	now := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
	var e TimeEntry
	e.EnsureIdentity(now)
	if e.ID == "" || !e.CreatedAt.Equal(now) {
		t.Errorf("entry = %+v", e)
	}

	kept := TimeEntry{ID: "x", CreatedAt: now.Add(-time.Hour)}
	kept.EnsureIdentity(now)
	if kept.ID != "x" || !kept.CreatedAt.Equal(now.Add(-time.Hour)) {
		t.Errorf("existing identity overwritten: %+v", kept)
	}
}

func TestTimeEntryJSON(t *testing.T) {
	var e TimeEntry
	body := `{"id":"1","project":"A","description":"d","date":"2024-05-03T00:00:00.000Z","hours":2,"startTime":"09:00","endTime":"","createdAt":"2024-05-03T11:02:03.456Z"}`
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !e.Date.Equal(time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", e.Date)
	}
	if e.CreatedAt.Nanosecond() != 456_000_000 {
		t.Errorf("createdAt = %v", e.CreatedAt)
	}

	out, err := json.Marshal(TimeEntry{ID: "2", Date: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"date":"2024-05-03T00:00:00Z"`, `"createdAt":""`, `"startTime":""`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("%s missing %s", out, want)
		}
	}

	if err := json.Unmarshal([]byte(`{"date":"last week"}`), &e); err == nil {
		t.Error("expected error for unparsable date")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"", time.Time{}, false},
		{"2024-05-03", time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), false},
		{"2024-05-03T12:00:00+02:00", time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC), false},
		{"05/03/2024", time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if (err != nil) != tt.wantErr || !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestSyncConfigComplete(t *testing.T) {
	var nilCfg *SyncConfig
	tests := []struct {
		cfg  *SyncConfig
		want bool
	}{
		{nilCfg, false},
		{&SyncConfig{}, false},
		{&SyncConfig{APIToken: "t"}, false},
		{&SyncConfig{APIToken: " ", DatabaseID: "d"}, false},
		{&SyncConfig{APIToken: "t", DatabaseID: "d"}, true},
	}
	for i, tt := range tests {
		if got := tt.cfg.Complete(); got != tt.want {
			t.Errorf("case %d: Complete() = %v, want %v", i, got, tt.want)
		}
	}
}

func TestSchemaMismatchError(t *testing.T) {
	var err error = &SchemaMismatchError{Missing: []string{FieldDate, FieldHours}}
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Error("errors.Is(err, ErrSchemaMismatch) = false")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("matched unrelated sentinel")
	}
	var sm *SchemaMismatchError
	if !errors.As(err, &sm) || len(sm.Missing) != 2 {
		t.Errorf("errors.As = %v", sm)
	}
	if !strings.HasSuffix(err.Error(), "Date, Hours") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestSchemaHasField(t *testing.T) {
	s := Schema{Fields: []string{"Project", "Hours"}}
	if !s.HasField("Hours") || s.HasField("hours") || s.HasField("Date") {
		t.Errorf("HasField mismatch for %v", s.Fields)
	}
}

func TestParseTimestamp_DateOnlyIsUTCMidnight(t *testing.T) {
	got, err := ParseTimestamp("2024-05-03")
	if err != nil {
		t.Fatal(err)
	}
	if got.Location() != time.UTC || got.Hour() != 0 {
		t.Errorf("got %v, want midnight UTC", got)
	}
	west := time.FixedZone("UTC-5", -5*60*60)
	if d := got.In(west).Format(time.DateOnly); d != "2024-05-02" {
		t.Errorf("in UTC-5 the day is %s, want 2024-05-02", d)
	}
}
