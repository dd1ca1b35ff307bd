package mailing

import (
	"fmt"
	"html"
	"pantrypal/internal/utils"
	"strconv"

	"gopkg.in/gomail.v2"
)

type (
	MailConfig struct {
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	mailer struct {
		config MailConfig
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// Configured reports whether enough is set to reach an SMTP server.
func (c MailConfig) Configured() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPEmail != ""
}

func NewMailer(config MailConfig) Mailer {
	return &mailer{config: config}
}

func (m *mailer) SendMail(toEmail string, subject string, body string) error {
	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port %q: %w", m.config.SMTPPort, err)
	}

	message := gomail.NewMessage()
	message.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	message.SetHeader("To", toEmail)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)
	message.AddAlternative("text/html", "<p>"+html.EscapeString(body)+"</p>")

	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(message)
}
