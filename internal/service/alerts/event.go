package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Alijeyrad/mindwell_backend/pkg/constants"
)

const (
	KindAssessment = "assessment"
	KindChat       = "chat"
)

// FlagEvent is published on NATS whenever something needs human follow-up.
type FlagEvent struct {
	Kind       string    `json:"kind"`
	UserID     string    `json:"userId"`
	Severity   string    `json:"severity,omitempty"`
	Excerpt    string    `json:"excerpt,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Subject returns the NATS subject for the event kind. User ids are free-form
// and may contain dots, so they stay in the payload.
func (e FlagEvent) Subject() string {
	if e.Kind == KindAssessment {
		return constants.SubjectAssessmentFlagged
	}
	return constants.SubjectChatFlagged
}

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Publish encodes ev and sends it. A nil publisher is a no-op so services work
// without a broker.
func Publish(p Publisher, ev FlagEvent) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode flag event: %w", err)
	}
	if err := p.Publish(ev.Subject(), data); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Subject(), err)
	}
	return nil
}

func DecodeEvent(data []byte) (FlagEvent, error) {
	var ev FlagEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return FlagEvent{}, fmt.Errorf("decode flag event: %w", err)
	}
	if ev.UserID == "" || (ev.Kind != KindAssessment && ev.Kind != KindChat) {
		return FlagEvent{}, fmt.Errorf("decode flag event: missing kind or user")
	}
	return ev, nil
}
