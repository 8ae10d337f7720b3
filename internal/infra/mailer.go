package infra

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/config"

	"github.com/jordan-wright/email"
)

// EmailMessage is a provider-neutral HTML email.
type EmailMessage struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []EmailAttachment
}

type EmailAttachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SMTPMailer sends EmailMessage through an SMTP relay.
type SMTPMailer struct {
	from     string
	host     string
	user     string
	password string
	addr     string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	from := cfg.EmailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPMailer{
		from:     from,
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers msg. The SMTP client has no context support; ctx is only
// checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = msg.To
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)

	for _, a := range msg.Attachments {
		if _, err := e.Attach(bytes.NewReader(a.Data), a.Filename, a.ContentType); err != nil {
			return fmt.Errorf("smtp: attach %s: %w", a.Filename, err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("smtp: send: %w", err)
	}
	return nil
}
