package assessment

import (
	"fmt"
	"strings"
)

// Severity is an ordinal tier. Larger values are more severe.
type Severity int

const (
	SeverityMinimal Severity = iota
	SeverityMild
	SeverityModerate
	SeveritySevere
)

var severityNames = [...]string{"minimal", "mild", "moderate", "severe"}

func (s Severity) String() string {
	if s < SeverityMinimal || s > SeveritySevere {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSeverity accepts the lower-case tier names. An empty string is minimal,
// matching how rows without a stored tier are counted.
func ParseSeverity(s string) (Severity, error) {
	if s == "" {
		return SeverityMinimal, nil
	}
	for i, n := range severityNames {
		if strings.EqualFold(n, s) {
			return Severity(i), nil
		}
	}
	return SeverityMinimal, fmt.Errorf("unknown severity %q", s)
}

// Recommendation codes attached to each tier.
const (
	RecommendUrgentContact     = "urgent-contact"
	RecommendScheduleCounselor = "schedule-counselor"
	RecommendMonitor           = "monitor"
	RecommendSelfCare          = "self-care"
)

var recommendationText = map[string]string{
	RecommendUrgentContact:     "Your responses suggest you may be going through a very difficult time. Please contact a counselor or a crisis line today. If you are in immediate danger, call your local emergency number.",
	RecommendScheduleCounselor: "Your responses suggest moderate distress. We recommend scheduling a session with a campus counselor in the next few days.",
	RecommendMonitor:           "Your responses suggest mild symptoms. Keep checking in, and reach out to a counselor if things get harder.",
	RecommendSelfCare:          "Your responses suggest minimal symptoms. Keep up healthy routines like sleep, movement and time with friends.",
}

// RecommendationText returns the student-facing message for a code.
func RecommendationText(code string) string {
	return recommendationText[code]
}

// Bounds holds the inclusive lower bounds that select one tier.
type Bounds struct {
	Depression int
	Anxiety    int
	Total      int
}

func (b Bounds) matches(depression, anxiety, total int) bool {
	return depression >= b.Depression || anxiety >= b.Anxiety || total >= b.Total
}

// Thresholds are evaluated severe first; the first matching tier wins.
type Thresholds struct {
	Severe   Bounds
	Moderate Bounds
	Mild     Bounds
}

// DefaultThresholds are raw sums, not percentages.
var DefaultThresholds = Thresholds{
	Severe:   Bounds{Depression: 15, Anxiety: 15, Total: 20},
	Moderate: Bounds{Depression: 10, Anxiety: 10, Total: 15},
	Mild:     Bounds{Depression: 5, Anxiety: 5, Total: 8},
}

// Tier maps subscale and total sums to a severity.
func (t Thresholds) Tier(depression, anxiety, total int) Severity {
	switch {
	case t.Severe.matches(depression, anxiety, total):
		return SeveritySevere
	case t.Moderate.matches(depression, anxiety, total):
		return SeverityModerate
	case t.Mild.matches(depression, anxiety, total):
		return SeverityMild
	default:
		return SeverityMinimal
	}
}

func recommendationFor(s Severity) string {
	switch s {
	case SeveritySevere:
		return RecommendUrgentContact
	case SeverityModerate:
		return RecommendScheduleCounselor
	case SeverityMild:
		return RecommendMonitor
	default:
		return RecommendSelfCare
	}
}

// Responses maps question id to the selected answer value.
type Responses map[string]int

// Result is derived from a submission and never mutated.
type Result struct {
	Total          int            `json:"total"`
	MaxPossible    int            `json:"maxPossible"`
	Depression     int            `json:"depression"`
	Anxiety        int            `json:"anxiety"`
	Subscales      map[string]int `json:"subscales"`
	Severity       Severity       `json:"severity"`
	Flagged        bool           `json:"flagged"`
	Recommendation string         `json:"recommendation"`
}

// Score computes the result for responses already accepted by form.Validate.
// It has no side effects.
func Score(form Form, responses Responses) Result {
	return DefaultThresholds.Score(form, responses)
}

func (t Thresholds) Score(form Form, responses Responses) Result {
	res := Result{
		MaxPossible: len(form.Questions) * form.MaxValue,
		Subscales:   make(map[string]int),
	}

	for _, q := range form.Questions {
		v := responses[q.ID]
		res.Total += v
		res.Subscales[q.Tag] += v
	}

	res.Depression = res.Subscales[TagDepression]
	res.Anxiety = res.Subscales[TagAnxiety]
	res.Severity = t.Tier(res.Depression, res.Anxiety, res.Total)
	res.Flagged = res.Severity == SeveritySevere
	res.Recommendation = recommendationFor(res.Severity)

	return res
}
