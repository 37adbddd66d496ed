package email

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

const welcomeSubject = "Welcome to Taskboard"

type Sender interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// LogSender logs emails instead of sending them. Used when ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) SendWelcome(ctx context.Context, to, name string) error {
	s.logger.InfoContext(ctx, "welcome email (local dev)", "to", to, "subject", welcomeSubject, "body", welcomeBody(name))
	return nil
}

// ResendSender sends emails via the Resend API. Used in staging and production.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) SendWelcome(ctx context.Context, to, name string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: welcomeSubject,
		Html:    welcomeBody(name),
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NopSender drops every message; used when no API key is configured.
type NopSender struct{}

func (NopSender) SendWelcome(context.Context, string, string) error { return nil }

// NewSender returns a LogSender for ENV=local, a ResendSender when an API key
// is configured, and a NopSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	switch {
	case env == "local":
		return &LogSender{logger: logger.With("component", "email")}
	case apiKey != "":
		return &ResendSender{
			client: resend.NewClient(apiKey),
			from:   from,
		}
	default:
		return NopSender{}
	}
}

func welcomeBody(name string) string {
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + html.EscapeString(name)
	}
	return fmt.Sprintf(`<p>%s,</p><p>Your account is ready. Sign in to start organising your tasks.</p>`, greeting)
}
