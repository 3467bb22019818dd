package chat

import (
	"errors"
	"fmt"

	"github.com/Alijeyrad/mindwell_backend/internal/service/genai"
)

var (
	ErrInvalidRequest   = errors.New("missing userId or message")
	ErrNoHistory        = errors.New("no chat history found")
	ErrGenerationFailed = errors.New("reply generation failed")
	ErrSummaryFailed    = errors.New("summarization failed")
	ErrStorage          = errors.New("chat storage unavailable")
)

// FallbackError carries the reply a student should still see when the turn
// could not be completed. errors.Is matches Kind.
type FallbackError struct {
	Kind   error
	Reason genai.Reason
	Reply  string
	Err    error
}

func (e *FallbackError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *FallbackError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
