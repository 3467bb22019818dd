package constants

const (
	AppName      = "mindwell"
	DisplayName  = "MindWell"
	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "MINDWELL"
)

// NATS subjects. The user travels in the payload, never in the subject.
const (
	SubjectAssessmentFlagged = "mindwell.assessment.flagged"
	SubjectChatFlagged       = "mindwell.chat.flagged"
)

// SubjectAllFlagged matches both flag subjects.
const SubjectAllFlagged = "mindwell.*.flagged"
