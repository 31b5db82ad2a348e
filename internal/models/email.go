package models

// EmailMessage is one outbound notification email. Messages are built fresh
// per submission and never persisted or reused.
type EmailMessage struct {
	MessageID   string
	FromName    string
	FromAddress string
	ToAddress   string
	Subject     string
	BodyHTML    string
	Attachments []*EmailAttachment
}

// EmailAttachment is an in-memory file forwarded on the admin copy of a
// booking notification.
type EmailAttachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

func (e *EmailAttachment) Size() int {
	return len(e.Content)
}

func (e *EmailMessage) HasAttachments() bool {
	return len(e.Attachments) > 0
}
