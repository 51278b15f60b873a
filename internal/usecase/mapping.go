package usecase

import (
	"worklog/internal/domain"
)

// recordProperties maps an entry onto the external field shapes.
// Empty start/end times are left out of the record entirely.
func recordProperties(e domain.TimeEntry) map[string]domain.Property {
	props := map[string]domain.Property{
		domain.FieldProject:     domain.TitleProperty(e.Project),
		domain.FieldDescription: domain.RichTextProperty(e.Description),
		domain.FieldDate:        domain.DateProperty(e.Date.Format("2006-01-02")),
		domain.FieldHours:       domain.NumberProperty(e.Hours),
	}
	if e.StartTime != "" {
		props[domain.FieldStartTime] = domain.RichTextProperty(e.StartTime)
	}
	if e.EndTime != "" {
		props[domain.FieldEndTime] = domain.RichTextProperty(e.EndTime)
	}
	return props
}

// entryFromRecord maps a record back to an entry. Each field is looked up on
// its own and defaults to its zero value when absent or unparsable.
func entryFromRecord(rec domain.Record) domain.TimeEntry {
	e := domain.TimeEntry{
		ID:        rec.ID,
		CreatedAt: rec.CreatedTime,
	}
	if p, ok := rec.Properties[domain.FieldProject]; ok {
		e.Project = p.Text
	}
	if p, ok := rec.Properties[domain.FieldDescription]; ok {
		e.Description = p.Text
	}
	if p, ok := rec.Properties[domain.FieldDate]; ok {
		if d, err := domain.ParseTimestamp(p.Date); err == nil {
			e.Date = d
		}
	}
	if p, ok := rec.Properties[domain.FieldHours]; ok && p.Number != nil {
		e.Hours = *p.Number
	}
	if p, ok := rec.Properties[domain.FieldStartTime]; ok {
		e.StartTime = p.Text
	}
	if p, ok := rec.Properties[domain.FieldEndTime]; ok {
		e.EndTime = p.Text
	}
	return e
}
