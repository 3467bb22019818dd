package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/Alijeyrad/mindwell_backend/internal/repo"
)

// profileWindow is how many of a student's latest totals feed the risk level.
const profileWindow = 3

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// Trend compares the two latest totals. Higher totals mean worse wellbeing.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendWorsening Trend = "worsening"
)

// Risk and trend cut-offs on raw totals.
const (
	highRiskAverage     = 15
	moderateRiskAverage = 8
	trendMargin         = 2
	wellnessScale       = 30
)

type StudentProfile struct {
	UserID           string    `json:"userId"`
	DisplayName      string    `json:"displayName"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	RecentAverage    float64   `json:"recentAverage"`
	WellnessScore    int       `json:"wellnessScore"`
	Trend            Trend     `json:"trend"`
	TotalAssessments int       `json:"totalAssessments"`
	LastCheckIn      time.Time `json:"lastCheckIn"`
	Flagged          bool      `json:"flagged"`
}

// BuildStudentProfiles derives one profile per student from their full
// assessment history. Input order does not matter.
func BuildStudentProfiles(assessments []*repo.Assessment) []StudentProfile {
	byUser := make(map[string][]*repo.Assessment)
	for _, a := range assessments {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}

	stats := make([]repo.UserAssessmentStats, 0, len(byUser))
	var latest []*repo.Assessment
	for user, rows := range byUser {
		rows = newestFirst(rows, len(rows))
		st := repo.UserAssessmentStats{UserID: user, Count: len(rows), LastAt: rows[0].CreatedAt}
		for _, a := range rows {
			st.EverFlagged = st.EverFlagged || a.FlaggedForIntervention
		}
		stats = append(stats, st)
		latest = append(latest, rows[:min(profileWindow, len(rows))]...)
	}
	return buildProfiles(stats, latest)
}

// buildProfiles expects latest to hold at most profileWindow rows per user.
// Students are ordered riskiest first, then by most recent check-in.
func buildProfiles(stats []repo.UserAssessmentStats, latest []*repo.Assessment) []StudentProfile {
	recent := make(map[string][]*repo.Assessment, len(stats))
	for _, a := range latest {
		recent[a.UserID] = append(recent[a.UserID], a)
	}

	out := make([]StudentProfile, 0, len(stats))
	for _, st := range stats {
		rows := newestFirst(recent[st.UserID], profileWindow)
		avg := averageTotal(rows)
		out = append(out, StudentProfile{
			UserID:           st.UserID,
			DisplayName:      displayName(st.UserID),
			RiskLevel:        riskFor(avg),
			RecentAverage:    math.Round(avg*10) / 10,
			WellnessScore:    wellnessScore(avg),
			Trend:            trendOf(rows),
			TotalAssessments: st.Count,
			LastCheckIn:      st.LastAt.UTC(),
			Flagged:          st.EverFlagged,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := riskRank(out[i].RiskLevel), riskRank(out[j].RiskLevel)
		if ri != rj {
			return ri > rj
		}
		if !out[i].LastCheckIn.Equal(out[j].LastCheckIn) {
			return out[i].LastCheckIn.After(out[j].LastCheckIn)
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

func averageTotal(rows []*repo.Assessment) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0
	for _, a := range rows {
		sum += a.TotalScore
	}
	return float64(sum) / float64(len(rows))
}

func riskFor(avg float64) RiskLevel {
	switch {
	case avg >= highRiskAverage:
		return RiskHigh
	case avg >= moderateRiskAverage:
		return RiskModerate
	default:
		return RiskLow
	}
}

func riskRank(r RiskLevel) int {
	switch r {
	case RiskHigh:
		return 2
	case RiskModerate:
		return 1
	default:
		return 0
	}
}

// trendOf needs rows newest first.
func trendOf(rows []*repo.Assessment) Trend {
	if len(rows) < 2 {
		return TrendStable
	}
	latest, previous := rows[0].TotalScore, rows[1].TotalScore
	switch {
	case latest > previous+trendMargin:
		return TrendWorsening
	case latest < previous-trendMargin:
		return TrendImproving
	default:
		return TrendStable
	}
}

// wellnessScore inverts the recent average onto 0..100.
func wellnessScore(avg float64) int {
	score := int(math.Round((wellnessScale - avg) / wellnessScale * 100))
	return max(0, min(100, score))
}

// displayName keeps student identities out of staff listings.
func displayName(userID string) string {
	if len(userID) <= 4 {
		return "Student" + userID
	}
	return "Student" + userID[len(userID)-4:]
}
