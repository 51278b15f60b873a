// Package stats aggregates time entries into the figures shown by the
// statistics, calendar and week views. Every function here is pure: it never
// fails and never reads the clock; callers pass "now" explicitly.
package stats

import (
	"math"
	"sort"
	"time"

	"worklog/internal/domain"
	"worklog/internal/timecalc"
)

// TopProjectLimit caps the number of ranked projects.
const TopProjectLimit = 5

// ProjectTotal accumulates the hours and entry count of one project.
type ProjectTotal struct {
	Project string  `json:"project"`
	Hours   float64 `json:"hours"`
	Entries int     `json:"entries"`
	Share   float64 `json:"share"` // percent of all hours
}

// Stats are the aggregates over a whole entry collection.
type Stats struct {
	TotalHours           float64        `json:"totalHours"`
	CurrentMonthHours    float64        `json:"currentMonthHours"`
	LastMonthHours       float64        `json:"lastMonthHours"`
	MonthlyChangePercent float64        `json:"monthlyChangePercent"`
	TotalEntries         int            `json:"totalEntries"`
	UniqueDays           int            `json:"uniqueDays"`
	DailyAverage         float64        `json:"dailyAverage"`
	Projects             []ProjectTotal `json:"projects"`
	TopProjects          []ProjectTotal `json:"topProjects"`
}

// Compute derives Stats from entries. Month and day buckets are calendar
// buckets in now's location; month bounds are inclusive on both ends.
// Non-finite hours count as zero so the result is always finite.
func Compute(entries []domain.TimeEntry, now time.Time) Stats {
	loc := now.Location()
	curStart, curEnd := timecalc.MonthRange(now)
	lastStart, lastEnd := timecalc.PreviousMonthRange(now)

	s := Stats{TotalEntries: len(entries)}
	index := make(map[string]int)
	days := make(map[string]struct{})
	projects := []ProjectTotal{}

	for _, e := range entries {
		hours := finiteHours(e.Hours)
		date := e.Date.In(loc)

		s.TotalHours += hours
		if timecalc.Within(date, curStart, curEnd) {
			s.CurrentMonthHours += hours
		}
		if timecalc.Within(date, lastStart, lastEnd) {
			s.LastMonthHours += hours
		}

		i, ok := index[e.Project]
		if !ok {
			i = len(projects)
			index[e.Project] = i
			projects = append(projects, ProjectTotal{Project: e.Project})
		}
		projects[i].Hours += hours
		projects[i].Entries++

		days[timecalc.DayKey(date)] = struct{}{}
	}

	s.UniqueDays = len(days)
	s.DailyAverage = ratio(s.TotalHours, float64(s.UniqueDays))
	s.MonthlyChangePercent = ratio(s.CurrentMonthHours-s.LastMonthHours, s.LastMonthHours) * 100

	for i := range projects {
		projects[i].Share = ratio(projects[i].Hours, s.TotalHours) * 100
	}
	s.Projects = projects
	s.TopProjects = rank(projects, TopProjectLimit)
	return s
}

// rank returns at most n projects by hours descending. Ties keep first-seen order.
func rank(projects []ProjectTotal, n int) []ProjectTotal {
	top := make([]ProjectTotal, len(projects))
	copy(top, projects)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Hours > top[j].Hours })
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// finiteHours maps NaN and infinite hours to zero.
func finiteHours(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	return h
}

// ratio divides, returning 0 for a non-positive denominator.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
