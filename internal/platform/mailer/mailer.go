// Package mailer delivers transactional email such as login passcodes.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/ncert-revision/revision-api/internal/config"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/redact"
)

// ErrSendFailed is returned when a message could not be handed to the server.
var ErrSendFailed = errors.New("failed to send email")

// Mailer sends plain-text messages.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends mail through an authenticated SMTP relay. smtp.SendMail
// upgrades the connection with STARTTLS when the server offers it.
type SMTPMailer struct {
	addr   string
	from   string
	auth   smtp.Auth
	send   sendFunc
	logger *slog.Logger
}

// New returns an SMTP mailer for cfg, or nil when mail is not configured.
func New(cfg config.MailConfig, logger *slog.Logger) Mailer {
	if !cfg.Enabled() {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{
		addr:   net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		from:   cfg.SMTPEmail,
		auth:   smtp.PlainAuth("", cfg.SMTPEmail, cfg.SMTPPassword, cfg.SMTPHost),
		send:   smtp.SendMail,
		logger: logger.With(slog.String("component", "mailer")),
	}
}

// Send implements Mailer.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	log := logger.FromContextOrDefault(ctx, m.logger)
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return fmt.Errorf("%w: header contains line break", ErrSendFailed)
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	if err := m.send(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		log.Error("smtp delivery failed", slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	log.Info("email sent", slog.String("subject", subject))
	return nil
}
