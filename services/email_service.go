// File: /services/email_service.go
package services

import (
	"fmt"
	"log/slog"
	"strconv"

	"gopkg.in/gomail.v2"

	"photogram-api/config"
	"photogram-api/metrics"
)

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	config config.SMTP
	sender mailSender
	log    *slog.Logger
}

// NewEmailService returns a service that sends nothing when no SMTP host is configured.
func NewEmailService(cfg config.SMTP, log *slog.Logger) *EmailService {
	es := &EmailService{config: cfg, log: log}
	if cfg.Host != "" {
		es.sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return es
}

func (es *EmailService) Enabled() bool {
	return es.sender != nil
}

// SendWelcomeEmail greets a newly registered user.
func (es *EmailService) SendWelcomeEmail(email, username string) error {
	if !es.Enabled() {
		es.log.Debug("SMTP not configured, skipping welcome email", slog.String("email", email))
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Welcome to %s!", es.config.FromName))

	textBody := fmt.Sprintf(`Hello %s!

Your account is ready. Fill in your profile, share your first photo and
subscribe to people whose posts you want to see in your feed.

The %s Team
This is an automated email, please do not reply.
`, username, es.config.FromName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>Hello %s!</h2>
    <p>Your account is ready. Fill in your profile, share your first photo and
    subscribe to people whose posts you want to see in your feed.</p>
    <p><strong>The %s Team</strong></p>
    <p><small>This is an automated email, please do not reply.</small></p>
</body>
</html>`, username, es.config.FromName)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	err := es.sender.DialAndSend(m)
	metrics.EmailsSentTotal.WithLabelValues(strconv.FormatBool(err == nil)).Inc()
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	es.log.Info("Welcome email sent", slog.String("email", email))
	return nil
}
