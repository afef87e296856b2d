package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Arbaj2004/Smart-Learn/internal/config"
)

// GomailProvider delivers email over SMTP
type GomailProvider struct {
	cfg *config.Config
}

func NewGomailProvider(cfg *config.Config) *GomailProvider {
	return &GomailProvider{cfg: cfg}
}

func (p *GomailProvider) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", p.cfg.Email.FromName, p.cfg.Email.FromEmail))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUser,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}
