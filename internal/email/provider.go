package email

import (
	"github.com/Arbaj2004/Smart-Learn/internal/config"
	"github.com/Arbaj2004/Smart-Learn/internal/logger"
)

// Provider defines the interface for sending email
type Provider interface {
	// Send delivers a single email message
	Send(msg *Message) error
}

// NewProvider picks a provider based on configuration. Without SMTP
// credentials it falls back to logging messages, which keeps local
// development working without a mail server.
func NewProvider(cfg *config.Config) Provider {
	if cfg.Email.SMTPHost == "" {
		return &LogProvider{}
	}
	return NewGomailProvider(cfg)
}

// LogProvider writes messages to the application log instead of
// delivering them. Used in development.
type LogProvider struct{}

func (p *LogProvider) Send(msg *Message) error {
	logger.Info("email not sent (no SMTP configured)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
