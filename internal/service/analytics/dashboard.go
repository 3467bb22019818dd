package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/Alijeyrad/mindwell_backend/internal/repo"
	"github.com/Alijeyrad/mindwell_backend/internal/service/assessment"
)

const (
	DefaultRecentFlagged = 5
	seriesDays           = 7
	dayLayout            = "2006-01-02"

	// windowDays covers the 7-day series and both halves of the weekly trend.
	windowDays = 14
)

type Stats struct {
	TotalStudents int     `json:"totalStudents"`
	ActiveToday   int     `json:"activeToday"`
	FlaggedCases  int     `json:"flaggedCases"`
	AverageScore  int     `json:"averageScore"`
	WeeklyTrend   float64 `json:"weeklyTrend"`
}

type DailyPoint struct {
	Date             string `json:"date"`
	TotalAssessments int    `json:"totalAssessments"`
	AverageScore     int    `json:"averageScore"`
	FlaggedCount     int    `json:"flaggedCount"`
}

type SeverityCount struct {
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

type Dashboard struct {
	Stats         Stats              `json:"stats"`
	Daily         []DailyPoint       `json:"daily"`
	Severity      []SeverityCount    `json:"severity"`
	RecentFlagged []*repo.Assessment `json:"recentFlagged"`
	GeneratedAt   time.Time          `json:"generatedAt"`
}

// BuildDashboard aggregates assessments as of now. Days are UTC calendar days.
func BuildDashboard(assessments []*repo.Assessment, now time.Time) Dashboard {
	var flagged []*repo.Assessment
	for _, a := range assessments {
		if a.FlaggedForIntervention {
			flagged = append(flagged, a)
		}
	}
	return buildDashboard(assessments, totalsOf(assessments), flagged, now, DefaultRecentFlagged)
}

// totalsOf computes in memory what AssessmentRepo.Totals computes in SQL.
func totalsOf(assessments []*repo.Assessment) repo.AssessmentTotals {
	t := repo.AssessmentTotals{Severity: make(map[string]int)}
	students := make(map[string]struct{})
	for _, a := range assessments {
		t.Assessments++
		t.ScoreSum += a.TotalScore
		students[a.UserID] = struct{}{}
		if a.FlaggedForIntervention {
			t.Flagged++
		}
		sev := a.SeverityLevel
		if sev == "" {
			sev = assessment.SeverityMinimal.String()
		}
		t.Severity[sev]++
	}
	t.Students = len(students)
	return t
}

// buildDashboard combines table-wide totals with the recent window. Rows in
// window older than 14 days are ignored; flagged need not be sorted.
func buildDashboard(window []*repo.Assessment, totals repo.AssessmentTotals, flagged []*repo.Assessment, now time.Time, recent int) Dashboard {
	now = now.UTC()
	today := now.Format(dayLayout)

	d := Dashboard{
		Daily:         make([]DailyPoint, seriesDays),
		RecentFlagged: newestFirst(flagged, recent),
		GeneratedAt:   now,
	}

	activeToday := make(map[string]struct{})
	dayIndex := make(map[string]int, seriesDays)
	daySums := make([]int, seriesDays)

	for i := 0; i < seriesDays; i++ {
		day := now.AddDate(0, 0, i-(seriesDays-1)).Format(dayLayout)
		d.Daily[i].Date = day
		dayIndex[day] = i
	}

	var lastWeek, prevWeek int
	weekAgo := now.Add(-7 * 24 * time.Hour)
	twoWeeksAgo := now.Add(-windowDays * 24 * time.Hour)

	for _, a := range window {
		day := a.CreatedAt.UTC().Format(dayLayout)
		if day == today {
			activeToday[a.UserID] = struct{}{}
		}
		if i, ok := dayIndex[day]; ok {
			d.Daily[i].TotalAssessments++
			daySums[i] += a.TotalScore
			if a.FlaggedForIntervention {
				d.Daily[i].FlaggedCount++
			}
		}

		switch {
		case a.CreatedAt.After(weekAgo) && !a.CreatedAt.After(now):
			lastWeek++
		case a.CreatedAt.After(twoWeeksAgo) && !a.CreatedAt.After(weekAgo):
			prevWeek++
		}
	}

	for i := range d.Daily {
		if n := d.Daily[i].TotalAssessments; n > 0 {
			d.Daily[i].AverageScore = roundDiv(daySums[i], n)
		}
	}

	d.Stats.TotalStudents = totals.Students
	d.Stats.ActiveToday = len(activeToday)
	d.Stats.FlaggedCases = totals.Flagged
	if totals.Assessments > 0 {
		d.Stats.AverageScore = roundDiv(totals.ScoreSum, totals.Assessments)
	}
	d.Stats.WeeklyTrend = percentChange(prevWeek, lastWeek)
	d.Severity = severityCounts(totals.Severity)

	return d
}

func newestFirst(in []*repo.Assessment, limit int) []*repo.Assessment {
	sorted := make([]*repo.Assessment, len(in))
	copy(sorted, in)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func roundDiv(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}

// percentChange is rounded to one decimal. Growth from zero reports 100.
func percentChange(prev, cur int) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	pct := float64(cur-prev) / float64(prev) * 100
	return math.Round(pct*10) / 10
}

// severityCounts lists known tiers mildest first, then any others by name.
func severityCounts(m map[string]int) []SeverityCount {
	out := make([]SeverityCount, 0, len(m))
	known := make(map[string]bool)
	for tier := assessment.SeverityMinimal; tier <= assessment.SeveritySevere; tier++ {
		s := tier.String()
		known[s] = true
		if n := m[s]; n > 0 {
			out = append(out, SeverityCount{Severity: s, Count: n})
		}
	}

	var other []string
	for s := range m {
		if !known[s] {
			other = append(other, s)
		}
	}
	sort.Strings(other)
	for _, s := range other {
		out = append(out, SeverityCount{Severity: s, Count: m[s]})
	}
	return out
}
