package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender dispatches transactional email. Satisfied by Mailgun and by test fakes.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	From   string
}

func NewMailgun(domain, apiKey, from string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, From: from}
}

// Send sends an email via Mailgun. html is optional; if provided it will be used as HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.From, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

var _ Sender = (*Mailgun)(nil)
