package assessment

import (
	"fmt"
	"sort"
	"strings"
)

// Subscale tags.
const (
	TagDepression = "depression-screen"
	TagAnxiety    = "anxiety-screen"
	TagAcademic   = "academic-wellbeing"
	TagSocial     = "social-wellbeing"
)

// Form types.
const (
	FormPHQ9          = "phq9"
	FormGAD7          = "gad7"
	FormStudentScreen = "student-screen"
)

type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// Form is a fixed questionnaire. Every question takes an answer in [0, MaxValue].
type Form struct {
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	MaxValue  int        `json:"maxValue"`
	Options   []string   `json:"options"`
	Questions []Question `json:"questions"`
}

// ValidationError lists every problem found in a submission.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid responses: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidResponses }

// Validate rejects partial submissions, unknown question ids and out-of-range
// values. Problems are reported in question order.
func (f Form) Validate(r Responses) error {
	var problems []string

	known := make(map[string]struct{}, len(f.Questions))
	for _, q := range f.Questions {
		known[q.ID] = struct{}{}
		v, ok := r[q.ID]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s: missing answer", q.ID))
		case v < 0 || v > f.MaxValue:
			problems = append(problems, fmt.Sprintf("%s: value %d outside 0..%d", q.ID, v, f.MaxValue))
		}
	}

	var unknown []string
	for id := range r {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		problems = append(problems, fmt.Sprintf("%s: unknown question", id))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

var frequencyOptions = []string{
	"Not at all",
	"Several days",
	"More than half the days",
	"Nearly every day",
}

var phq9Questions = []Question{
	{ID: "phq9_1", Text: "Little interest or pleasure in doing things", Tag: TagDepression},
	{ID: "phq9_2", Text: "Feeling down, depressed, or hopeless", Tag: TagDepression},
	{ID: "phq9_3", Text: "Trouble falling or staying asleep, or sleeping too much", Tag: TagDepression},
	{ID: "phq9_4", Text: "Feeling tired or having little energy", Tag: TagDepression},
	{ID: "phq9_5", Text: "Poor appetite or overeating", Tag: TagDepression},
	{ID: "phq9_6", Text: "Feeling bad about yourself, or that you are a failure or have let yourself or your family down", Tag: TagDepression},
	{ID: "phq9_7", Text: "Trouble concentrating on things, such as reading or studying", Tag: TagDepression},
	{ID: "phq9_8", Text: "Moving or speaking so slowly that other people could have noticed, or being so fidgety or restless that you have been moving around a lot more than usual", Tag: TagDepression},
	{ID: "phq9_9", Text: "Thoughts that you would be better off dead, or of hurting yourself", Tag: TagDepression},
}

var gad7Questions = []Question{
	{ID: "gad7_1", Text: "Feeling nervous, anxious, or on edge", Tag: TagAnxiety},
	{ID: "gad7_2", Text: "Not being able to stop or control worrying", Tag: TagAnxiety},
	{ID: "gad7_3", Text: "Worrying too much about different things", Tag: TagAnxiety},
	{ID: "gad7_4", Text: "Trouble relaxing", Tag: TagAnxiety},
	{ID: "gad7_5", Text: "Being so restless that it is hard to sit still", Tag: TagAnxiety},
	{ID: "gad7_6", Text: "Becoming easily annoyed or irritable", Tag: TagAnxiety},
	{ID: "gad7_7", Text: "Feeling afraid, as if something awful might happen", Tag: TagAnxiety},
}

var campusQuestions = []Question{
	{ID: "acad_1", Text: "Feeling overwhelmed by coursework or deadlines", Tag: TagAcademic},
	{ID: "acad_2", Text: "Worrying about grades or academic performance", Tag: TagAcademic},
	{ID: "acad_3", Text: "Avoiding classes or study sessions", Tag: TagAcademic},
	{ID: "soc_1", Text: "Feeling lonely or isolated from others on campus", Tag: TagSocial},
	{ID: "soc_2", Text: "Avoiding friends or social activities", Tag: TagSocial},
	{ID: "soc_3", Text: "Feeling you have no one to talk to", Tag: TagSocial},
}

func concat(groups ...[]Question) []Question {
	var out []Question
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var catalog = map[string]Form{
	FormPHQ9: {
		Type:      FormPHQ9,
		Title:     "PHQ-9 depression screen",
		MaxValue:  3,
		Options:   frequencyOptions,
		Questions: phq9Questions,
	},
	FormGAD7: {
		Type:      FormGAD7,
		Title:     "GAD-7 anxiety screen",
		MaxValue:  3,
		Options:   frequencyOptions,
		Questions: gad7Questions,
	},
	FormStudentScreen: {
		Type:      FormStudentScreen,
		Title:     "Student wellbeing check-in",
		MaxValue:  3,
		Options:   frequencyOptions,
		Questions: concat(phq9Questions, gad7Questions, campusQuestions),
	},
}

// Lookup returns the form registered for type t.
func Lookup(t string) (Form, error) {
	f, ok := catalog[t]
	if !ok {
		return Form{}, fmt.Errorf("%w: %q", ErrUnknownForm, t)
	}
	return f, nil
}

// Forms lists the catalog ordered by type.
func Forms() []Form {
	out := make([]Form, 0, len(catalog))
	for _, f := range catalog {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
