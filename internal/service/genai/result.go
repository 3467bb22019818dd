package genai

// Reason classifies the outcome of one generation call so callers can pick
// fallback text without inspecting transport errors.
type Reason string

const (
	ReasonOK            Reason = "ok"
	ReasonNotConfigured Reason = "not_configured"
	ReasonUnavailable   Reason = "unavailable"
	ReasonEmptyResponse Reason = "empty_response"
	ReasonCanceled      Reason = "canceled"
)

// Result is either Text with ReasonOK or a failure Reason with its cause.
type Result struct {
	Text   string
	Reason Reason
	Err    error
}

func (r Result) OK() bool { return r.Reason == ReasonOK }

func success(text string) Result { return Result{Text: text, Reason: ReasonOK} }

func failure(reason Reason, err error) Result { return Result{Reason: reason, Err: err} }

// FallbackReply is the empathetic text shown to a student when generation
// fails for reason.
func FallbackReply(reason Reason) string {
	switch reason {
	case ReasonUnavailable:
		return "I'm having trouble connecting to my AI service right now. In the meantime, remember that it's okay to feel what you're feeling, and seeking support is a sign of strength. Is there something specific you'd like to talk about?"
	case ReasonEmptyResponse:
		return "I'm here to listen and support you. Could you tell me more about how you're feeling right now?"
	default:
		return "I'm experiencing some technical difficulties, but I'm still here for you. How are you feeling right now, and is there anything specific on your mind?"
	}
}

// ErrorMessage is the short client-facing error for reason.
func ErrorMessage(reason Reason) string {
	switch reason {
	case ReasonNotConfigured:
		return "AI service not configured"
	case ReasonUnavailable:
		return "AI service temporarily unavailable. Please try again."
	case ReasonEmptyResponse:
		return "Invalid AI response"
	default:
		return "Something went wrong. Please try again."
	}
}
