package stats

import (
	"time"

	"worklog/internal/domain"
	"worklog/internal/timecalc"
)

// DaySummary lists the entries logged on one calendar day.
type DaySummary struct {
	Date       string             `json:"date"`
	Weekday    string             `json:"weekday"`
	Entries    []domain.TimeEntry `json:"entries"`
	TotalHours float64            `json:"totalHours"`
}

// WeekSummary covers the Monday to Sunday week around a reference day.
type WeekSummary struct {
	Label      string       `json:"label"`
	Start      time.Time    `json:"start"`
	End        time.Time    `json:"end"`
	Days       []DaySummary `json:"days"`
	TotalHours float64      `json:"totalHours"`
}

// Day collects the entries falling on day's calendar day, in input order.
// Non-finite hours are reported as zero, as in Compute.
func Day(entries []domain.TimeEntry, day time.Time) DaySummary {
	out := DaySummary{
		Date:    timecalc.DayKey(day),
		Weekday: day.Weekday().String(),
		Entries: []domain.TimeEntry{},
	}
	for _, e := range entries {
		if !timecalc.SameDay(e.Date.In(day.Location()), day) {
			continue
		}
		e.Hours = finiteHours(e.Hours)
		out.Entries = append(out.Entries, e)
		out.TotalHours += e.Hours
	}
	return out
}

// Week summarises the seven days of the ISO week containing ref.
func Week(entries []domain.TimeEntry, ref time.Time) WeekSummary {
	start, end := timecalc.WeekRange(ref)
	w := WeekSummary{
		Label: timecalc.ISOWeekLabel(start),
		Start: start,
		End:   end,
		Days:  make([]DaySummary, 0, 7),
	}
	for i := 0; i < 7; i++ {
		d := Day(entries, start.AddDate(0, 0, i))
		w.TotalHours += d.TotalHours
		w.Days = append(w.Days, d)
	}
	return w
}
