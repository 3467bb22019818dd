package chat

import (
	"fmt"
	"strings"

	"github.com/Alijeyrad/mindwell_backend/internal/repo"
)

func counselorPrompt(message string) string {
	return fmt.Sprintf(`You are a compassionate AI mental health counselor for university students.

USER MESSAGE: "%s"

RESPONSE REQUIREMENTS:
- Acknowledge the emotional state you detect, then offer guidance
- Use reflection, validation and gentle questioning
- Offer one specific coping strategy relevant to how they feel
- Keep it to 2-4 sentences
- If stress or anxiety seems high, include a breathing or grounding technique
- If you notice signs of depression, focus on validation and gentle encouragement
- Keep a hopeful, supportive tone`, message)
}

// transcript renders turns oldest first as "role: content" lines.
func transcript(turns []*repo.ChatTurn) string {
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Content)
	}
	return b.String()
}

func summaryPrompt(conversation string) string {
	return "Summarize the following counseling conversation into a short, empathetic session summary:\n\n" + conversation
}
