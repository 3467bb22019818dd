// Package safety gates chat messages against a crisis phrase denylist.
//
// Matching is a case-insensitive substring test with no stemming or fuzzy
// matching. Over-flagging is acceptable; a missed crisis message is not.
package safety

import (
	"slices"
	"strings"
)

// DefaultDenylist is always active. Configured phrases extend it.
var DefaultDenylist = []string{
	"suicide",
	"kill myself",
	"end my life",
	"self harm",
	"want to die",
}

// CrisisReply is returned instead of a generated reply for flagged messages.
const CrisisReply = "I hear you're going through something very serious. " +
	"Please reach out immediately to a trusted friend, family member, or a professional counselor. " +
	"If you are in immediate danger, call your local emergency number right now. " +
	"You matter, and there are people who want to help you."

// Verdict is the result of classifying one message. Phrase is the first
// denylist entry that matched.
type Verdict struct {
	Flagged bool   `json:"flagged"`
	Phrase  string `json:"-"`
}

// Reply returns the canned reply for a flagged verdict and "" otherwise.
func (v Verdict) Reply() string {
	if v.Flagged {
		return CrisisReply
	}
	return ""
}

type Classifier struct {
	phrases []string
}

// NewClassifier returns a classifier over DefaultDenylist plus extra.
// Blank and duplicate phrases are dropped.
func NewClassifier(extra ...string) *Classifier {
	phrases := make([]string, 0, len(DefaultDenylist)+len(extra))
	for _, p := range slices.Concat(DefaultDenylist, extra) {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || slices.Contains(phrases, p) {
			continue
		}
		phrases = append(phrases, p)
	}
	return &Classifier{phrases: phrases}
}

// Phrases returns a copy of the active denylist.
func (c *Classifier) Phrases() []string {
	return slices.Clone(c.phrases)
}

// Classify never fails.
func (c *Classifier) Classify(message string) Verdict {
	lower := strings.ToLower(message)
	for _, p := range c.phrases {
		if strings.Contains(lower, p) {
			return Verdict{Flagged: true, Phrase: p}
		}
	}
	return Verdict{}
}

var defaultClassifier = NewClassifier()

// Classify checks message against DefaultDenylist only.
func Classify(message string) Verdict {
	return defaultClassifier.Classify(message)
}
