// Package mailer delivers transactional mail. With SMTP configured it sends
// over the wire; otherwise message bodies are logged to the console, which
// is the expected mode in development and tests.
package mailer

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"translationportal/internal/infra"
)

// Message is one outbound mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends transactional messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New selects the SMTP mailer when configured, the console mailer otherwise.
func New(cfg *infra.Config, logger infra.Logger) Mailer {
	if cfg.SMTPConfigured() {
		return &smtpMailer{cfg: cfg, logger: logger}
	}
	return &consoleMailer{logger: logger}
}

type smtpMailer struct {
	cfg    *infra.Config
	logger infra.Logger
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	message := mail.NewMsg()
	if err := message.From(m.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := message.To(msg.To); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	message.Subject(msg.Subject)
	message.SetBodyString(mail.TypeTextPlain, msg.Body)

	opts := []mail.Option{mail.WithPort(m.cfg.SMTPPort)}
	if m.cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.SMTPUser),
			mail.WithPassword(m.cfg.SMTPPass),
		)
	}
	client, err := mail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	m.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
	return nil
}

type consoleMailer struct {
	logger infra.Logger
}

func (m *consoleMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("mail (console fallback)")
	return nil
}
