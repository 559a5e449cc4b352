package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fleetops/fleet-scheduler/internal/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers a single message. Implementations must not panic; the
// caller treats every failure as best-effort.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer returns an SMTP mailer when SMTP_HOST is configured and a
// log-only mailer otherwise.
func NewMailer(cfg *config.Config, log zerolog.Logger) Mailer {
	if cfg.SMTPHost == "" {
		return &LogMailer{log: log}
	}
	return &SMTPMailer{
		addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		host: cfg.SMTPHost,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

type SMTPMailer struct {
	addr string
	host string
	user string
	pass string
	from string
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("empty recipient")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	return smtp.SendMail(m.addr, auth, m.from, []string{msg.To}, []byte(b.String()))
}

// LogMailer is the unconfigured fallback; it records the message and
// reports success.
type LogMailer struct {
	log zerolog.Logger
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("mail delivery skipped (smtp not configured)")
	return nil
}
