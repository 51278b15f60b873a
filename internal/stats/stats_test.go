package stats

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"worklog/internal/domain"
)

func entry(project string, hours float64, date time.Time) domain.TimeEntry {
	return domain.TimeEntry{ID: project + date.String(), Project: project, Description: "work", Date: date, Hours: hours}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
	if s.TotalHours != 0 || s.CurrentMonthHours != 0 || s.LastMonthHours != 0 {
		t.Errorf("expected zero hours, got %+v", s)
	}
	if s.UniqueDays != 0 || s.DailyAverage != 0 || s.MonthlyChangePercent != 0 || s.TotalEntries != 0 {
		t.Errorf("expected zero aggregates, got %+v", s)
	}
	if s.TopProjects == nil || len(s.TopProjects) != 0 {
		t.Errorf("TopProjects = %#v, want empty non-nil slice", s.TopProjects)
	}
}

func TestCompute_TwoProjectsSameMonth(t *testing.T) {
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntry{
		entry("A", 2, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)),
		entry("B", 3, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)),
	}
	s := Compute(entries, now)

	if s.TotalHours != 5 {
		t.Errorf("TotalHours = %v, want 5", s.TotalHours)
	}
	if s.CurrentMonthHours != 5 {
		t.Errorf("CurrentMonthHours = %v, want 5", s.CurrentMonthHours)
	}
	if s.LastMonthHours != 0 {
		t.Errorf("LastMonthHours = %v, want 0", s.LastMonthHours)
	}
	if s.MonthlyChangePercent != 0 {
		t.Errorf("MonthlyChangePercent = %v, want 0", s.MonthlyChangePercent)
	}
	if s.UniqueDays != 2 {
		t.Errorf("UniqueDays = %d, want 2", s.UniqueDays)
	}
	if s.DailyAverage != 2.5 {
		t.Errorf("DailyAverage = %v, want 2.5", s.DailyAverage)
	}
	if len(s.TopProjects) != 2 || s.TopProjects[0].Project != "B" || s.TopProjects[0].Hours != 3 ||
		s.TopProjects[1].Project != "A" || s.TopProjects[1].Hours != 2 {
		t.Errorf("TopProjects = %+v, want [B 3, A 2]", s.TopProjects)
	}
	if s.TopProjects[0].Share != 60 {
		t.Errorf("B share = %v, want 60", s.TopProjects[0].Share)
	}
}

func TestCompute_MonthlyChange(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntry{
		entry("A", 4, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),             // first instant of last month
		entry("A", 4, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)),         // last second of last month
		entry("A", 2, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),             // first instant of this month
		entry("A", 4, time.Date(2024, 3, 31, 23, 59, 59, 999000000, time.UTC)), // end of this month
		entry("A", 10, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)),        // outside both
		entry("A", 10, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),            // future month
	}
	s := Compute(entries, now)
	if s.LastMonthHours != 8 {
		t.Errorf("LastMonthHours = %v, want 8", s.LastMonthHours)
	}
	if s.CurrentMonthHours != 6 {
		t.Errorf("CurrentMonthHours = %v, want 6", s.CurrentMonthHours)
	}
	if s.MonthlyChangePercent != -25 {
		t.Errorf("MonthlyChangePercent = %v, want -25", s.MonthlyChangePercent)
	}
	if s.TotalHours != 34 {
		t.Errorf("TotalHours = %v, want 34 (entries outside both months still count)", s.TotalHours)
	}
	if s.UniqueDays != 6 {
		t.Errorf("UniqueDays = %d, want 6", s.UniqueDays)
	}
}

func TestCompute_BucketsInNowLocation(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, berlin)
	// 23:30 UTC on May 31 is already June 1 in CET.
	e := entry("A", 1, time.Date(2024, 5, 31, 23, 30, 0, 0, time.UTC))
	s := Compute([]domain.TimeEntry{e}, now)
	if s.CurrentMonthHours != 1 || s.LastMonthHours != 0 {
		t.Errorf("got current=%v last=%v, want current=1 last=0", s.CurrentMonthHours, s.LastMonthHours)
	}
}

func TestCompute_TopProjectsTruncatedAndStable(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntry{
		entry("tie-1", 2, day),
		entry("small", 1, day),
		entry("big", 9, day),
		entry("tie-2", 2, day),
		entry("tie-3", 2, day),
		entry("mid", 5, day),
		entry("tie-4", 2, day),
	}
	s := Compute(entries, day)
	want := []string{"big", "mid", "tie-1", "tie-2", "tie-3"}
	if len(s.TopProjects) != len(want) {
		t.Fatalf("len(TopProjects) = %d, want %d", len(s.TopProjects), len(want))
	}
	for i, p := range want {
		if s.TopProjects[i].Project != p {
			t.Errorf("TopProjects[%d] = %q, want %q", i, s.TopProjects[i].Project, p)
		}
	}
	if len(s.Projects) != 7 {
		t.Errorf("len(Projects) = %d, want 7", len(s.Projects))
	}
}

func TestCompute_ProjectKeysCaseSensitive(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s := Compute([]domain.TimeEntry{entry("Acme", 1, day), entry("acme", 1, day), entry("Acme", 2, day)}, day)
	if len(s.Projects) != 2 {
		t.Fatalf("len(Projects) = %d, want 2", len(s.Projects))
	}
	if s.Projects[0].Project != "Acme" || s.Projects[0].Hours != 3 || s.Projects[0].Entries != 2 {
		t.Errorf("Projects[0] = %+v", s.Projects[0])
	}
}

func TestCompute_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	projects := []string{"A", "B", "C", "D", "E", "F", "G"}

	for round := 0; round < 50; round++ {
		n := rng.Intn(40)
		entries := make([]domain.TimeEntry, n)
		var sum float64
		for i := range entries {
			// Quarter hours keep float sums exact regardless of order.
			h := float64(rng.Intn(96)+1) / 4
			d := now.AddDate(0, 0, -rng.Intn(90))
			entries[i] = entry(projects[rng.Intn(len(projects))], h, d)
			sum += h
		}

		s := Compute(entries, now)
		shuffled := append([]domain.TimeEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		s2 := Compute(shuffled, now)

		if s.TotalHours != sum || s2.TotalHours != sum {
			t.Fatalf("round %d: TotalHours = %v / %v, want %v", round, s.TotalHours, s2.TotalHours, sum)
		}
		if (s.DailyAverage == 0) != (s.UniqueDays == 0) {
			t.Fatalf("round %d: DailyAverage=%v UniqueDays=%d", round, s.DailyAverage, s.UniqueDays)
		}
		if len(s.TopProjects) > TopProjectLimit {
			t.Fatalf("round %d: %d top projects", round, len(s.TopProjects))
		}
		for i := 1; i < len(s.TopProjects); i++ {
			if s.TopProjects[i].Hours > s.TopProjects[i-1].Hours {
				t.Fatalf("round %d: top projects not descending: %+v", round, s.TopProjects)
			}
		}
		for _, v := range []float64{s.TotalHours, s.CurrentMonthHours, s.LastMonthHours, s.DailyAverage} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				t.Fatalf("round %d: invalid aggregate %v in %+v", round, v, s)
			}
		}
		if math.IsNaN(s.MonthlyChangePercent) || math.IsInf(s.MonthlyChangePercent, 0) {
			t.Fatalf("round %d: MonthlyChangePercent = %v", round, s.MonthlyChangePercent)
		}
	}
}

func TestCompute_NonFiniteHoursIgnored(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s := Compute([]domain.TimeEntry{entry("A", math.NaN(), day), entry("A", 2, day)}, day)
	if s.TotalHours != 2 {
		t.Errorf("TotalHours = %v, want 2", s.TotalHours)
	}
	if s.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, want 2", s.TotalEntries)
	}
}
