package email

// Message represents an outgoing email message
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// TemplateData represents data passed into email templates
type TemplateData map[string]interface{}
