package email

import (
	"fmt"
	"html"
	"time"
)

// AlertEmailData describes a flagged event for the on-call counselor.
type AlertEmailData struct {
	To         string
	Kind       string // "assessment" or "chat"
	UserID     string
	Severity   string
	Excerpt    string
	OccurredAt time.Time
	AppName    string
}

// BuildFlagAlertEmail renders the counselor notification for a flagged event.
// Chat excerpts are included verbatim so the counselor can triage without
// opening the dashboard.
func BuildFlagAlertEmail(data AlertEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "MindWell"
	}

	when := data.OccurredAt.UTC().Format(time.RFC1123)
	subject := fmt.Sprintf("[%s] Flagged %s for student %s", appName, data.Kind, data.UserID)

	detail := ""
	if data.Severity != "" {
		detail = fmt.Sprintf("Severity: %s\n", data.Severity)
	}
	if data.Excerpt != "" {
		detail += fmt.Sprintf("Message: %q\n", data.Excerpt)
	}

	textBody := fmt.Sprintf(`A %s was flagged for human follow-up.

Student: %s
Time: %s
%s
Please review and reach out to the student as soon as possible.

%s safety alerts`,
		data.Kind, data.UserID, when, detail, appName)

	htmlDetail := ""
	if data.Severity != "" {
		htmlDetail += fmt.Sprintf("<p>Severity: <strong>%s</strong></p>", html.EscapeString(data.Severity))
	}
	if data.Excerpt != "" {
		htmlDetail += fmt.Sprintf(`<p style="background-color: #fef2f2; padding: 10px 15px; border-radius: 4px;">%s</p>`,
			html.EscapeString(data.Excerpt))
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #dc2626;">Flagged %s</h2>
    <p>Student: <strong>%s</strong></p>
    <p>Time: %s</p>
    %s
    <p>Please review and reach out to the student as soon as possible.</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">%s safety alerts</p>
</body>
</html>`,
		html.EscapeString(data.Kind), html.EscapeString(data.UserID), when, htmlDetail, html.EscapeString(appName))

	return Message{
		To:       []string{data.To},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
		Urgent:   true,
	}
}
