package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Mailer delivers alerts to a fixed address over SMTP.
type Mailer struct {
	Host     string
	Port     int
	From     string
	To       string
	Username string
	Password string
}

func (m Mailer) Notify(ctx context.Context, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return fmt.Errorf("notify sender: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("notify recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{mail.WithTLSPolicy(mail.TLSOpportunistic)}
	if m.Port != 0 {
		opts = append(opts, mail.WithPort(m.Port))
	}
	if m.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.Username),
			mail.WithPassword(m.Password),
		)
	}
	client, err := mail.NewClient(m.Host, opts...)
	if err != nil {
		return fmt.Errorf("notify client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
