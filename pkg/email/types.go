package email

// Message is one outgoing e-mail. At least one of TextBody and HTMLBody must
// be set; with both, HTMLBody is sent as the alternative part.
type Message struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
	// Urgent marks the message high priority for mail clients.
	Urgent bool
}
