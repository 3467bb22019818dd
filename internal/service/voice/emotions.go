package voice

// Emotion labels produced by the classifier.
const (
	EmotionAnger     = "Anger"
	EmotionDisgust   = "Disgust"
	EmotionFear      = "Fear"
	EmotionHappiness = "Happiness"
	EmotionNeutral   = "Neutral"
	EmotionSadness   = "Sadness"
	EmotionSurprise  = "Surprise"
)

type MentalHealth struct {
	Status     string `json:"status"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion"`
}

var mentalHealthByEmotion = map[string]MentalHealth{
	EmotionAnger:     {Status: "elevated_stress", Severity: "moderate", Suggestion: "Consider anger management techniques"},
	EmotionDisgust:   {Status: "emotional_discomfort", Severity: "mild", Suggestion: "Take time to process these feelings"},
	EmotionFear:      {Status: "anxiety_symptoms", Severity: "moderate", Suggestion: "Try grounding exercises and seek support"},
	EmotionHappiness: {Status: "positive_emotional_state", Severity: "none", Suggestion: "Great! Keep nurturing positive emotions"},
	EmotionNeutral:   {Status: "balanced_emotional_state", Severity: "none", Suggestion: "Maintain emotional balance with self-care"},
	EmotionSadness:   {Status: "low_mood_indicators", Severity: "moderate", Suggestion: "Consider reaching out to supportive people"},
	EmotionSurprise:  {Status: "emotional_reactivity", Severity: "mild", Suggestion: "Take a moment to process unexpected feelings"},
}

// MentalHealthFor maps a classifier label to its wellbeing reading. ok is false
// for labels the model was not trained on.
func MentalHealthFor(emotion string) (MentalHealth, bool) {
	mh, ok := mentalHealthByEmotion[emotion]
	return mh, ok
}
