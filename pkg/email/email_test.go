package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/mindwell_backend/config"
)

func TestFromCentralConfig_KeepsDefaults(t *testing.T) {
	cfg := FromCentralConfig(config.EmailConfig{Enabled: true, From: "alerts@campus.example"})

	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 30*time.Second, cfg.SMTPTimeout())
	assert.Equal(t, "alerts@campus.example", cfg.From)
}

func TestNew_EnabledWithoutHost(t *testing.T) {
	_, err := New(Config{Enabled: true})
	assert.Error(t, err)
}

func TestSend_Disabled(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)

	err = c.Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "s", TextBody: "t"})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestBuildMessage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		msg     Message
		wantErr bool
	}{
		{"ok", "a@b.c", Message{To: []string{"x@y.z"}, Subject: "s", TextBody: "t"}, false},
		{"no from", "", Message{To: []string{"x@y.z"}, Subject: "s", TextBody: "t"}, true},
		{"blank recipients", "a@b.c", Message{To: []string{"  "}, Subject: "s", TextBody: "t"}, true},
		{"no subject", "a@b.c", Message{To: []string{"x@y.z"}, TextBody: "t"}, true},
		{"no body", "a@b.c", Message{To: []string{"x@y.z"}, Subject: "s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMessage(tt.from, tt.msg)
			if (err != nil) != tt.wantErr {
				t.Errorf("buildMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildFlagAlertEmail(t *testing.T) {
	m := BuildFlagAlertEmail(AlertEmailData{
		To:         "oncall@campus.example",
		Kind:       "chat",
		UserID:     "student-7",
		Excerpt:    "<b>I want to die</b>",
		OccurredAt: time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, []string{"oncall@campus.example"}, m.To)
	assert.Contains(t, m.Subject, "student-7")
	assert.Contains(t, m.TextBody, "I want to die")
	assert.Contains(t, m.HTMLBody, "&lt;b&gt;I want to die&lt;/b&gt;")
	assert.NotContains(t, m.HTMLBody, "<b>I want")

	_, err := buildMessage("alerts@campus.example", m)
	assert.NoError(t, err)
}

func TestBuildMessage_UrgentAndErrors(t *testing.T) {
	msg, err := buildMessage("alerts@campus.example", Message{To: []string{"x@y.z"}, Subject: "s", TextBody: "t", Urgent: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, msg.GetHeader("X-Priority"))

	_, err = buildMessage("alerts@campus.example", Message{Subject: "s", TextBody: "t"})
	assert.ErrorIs(t, err, ErrInvalidMessage)
}
