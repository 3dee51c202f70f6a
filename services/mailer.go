package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// MailConfig holds the SMTP transport configuration for outbound
// notifications
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	LoginURL string
}

// NewMailConfigFromEnv builds the mail configuration from the
// environment. Missing values are reported at send time, not here, so
// the server can run without a mail transport.
func NewMailConfigFromEnv() *MailConfig {
	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			port = parsed
		}
	}
	return &MailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		LoginURL: os.Getenv("APP_LOGIN_URL"),
	}
}

// Validate reports the first missing transport setting
func (c *MailConfig) Validate() error {
	switch {
	case c.Host == "":
		return fmt.Errorf("SMTP_HOST is not set")
	case c.Username == "":
		return fmt.Errorf("SMTP_USERNAME is not set")
	case c.Password == "":
		return fmt.Errorf("SMTP_PASSWORD is not set")
	case c.From == "":
		return fmt.Errorf("SMTP_FROM is not set")
	}
	return nil
}

// SMTPWelcomeMailer sends welcome emails over SMTP. Delivery is not
// idempotent: a retried workflow may send a duplicate email, which is
// acceptable since the operation it supports is not retried blindly.
type SMTPWelcomeMailer struct {
	config *MailConfig
}

// NewSMTPWelcomeMailer creates a mailer with the given transport config
func NewSMTPWelcomeMailer(config *MailConfig) *SMTPWelcomeMailer {
	return &SMTPWelcomeMailer{config: config}
}

// SendWelcome composes and delivers the welcome email. It never
// returns an error to the caller; all failures are reported through
// the SendResult so the provisioning outcome is unaffected.
func (m *SMTPWelcomeMailer) SendWelcome(ctx context.Context, email *WelcomeEmail) SendResult {
	if email.LoginURL == "" {
		email.LoginURL = m.config.LoginURL
	}
	if err := m.config.Validate(); err != nil {
		return SendResult{Success: false, Error: fmt.Sprintf("mail transport not configured: %v", err)}
	}

	client, err := mail.NewClient(m.config.Host,
		mail.WithPort(m.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.config.Username),
		mail.WithPassword(m.config.Password),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return SendResult{Success: false, Error: fmt.Sprintf("failed to create mail client: %v", err)}
	}

	// Verify transport reachability and credentials before composing
	// the send, so auth and connectivity problems are distinguishable.
	if err := client.DialWithContext(ctx); err != nil {
		return SendResult{Success: false, Error: classifyDialError(err)}
	}
	defer func() {
		if err := client.Close(); err != nil {
			slog.Warn("Failed to close mail client", "error", err)
		}
	}()

	msg := mail.NewMsg()
	msg.SetMessageIDWithValue(uuid.New().String() + "@secureplace")
	if err := msg.From(m.config.From); err != nil {
		return SendResult{Success: false, Error: fmt.Sprintf("invalid sender address: %v", err)}
	}
	if err := msg.To(email.Email); err != nil {
		return SendResult{Success: false, Error: fmt.Sprintf("invalid recipient address: %v", err)}
	}
	msg.Subject("Welcome to Secure Place")
	msg.SetBodyString(mail.TypeTextPlain, welcomeBody(email))

	if err := client.Send(msg); err != nil {
		return SendResult{Success: false, Error: fmt.Sprintf("failed to send welcome email: %v", err)}
	}

	slog.Info("Welcome email sent", "to", email.Email)
	return SendResult{Success: true}
}

// classifyDialError separates authentication failures from
// connectivity failures in the returned error text
func classifyDialError(err error) string {
	text := strings.ToLower(err.Error())
	if strings.Contains(text, "auth") || strings.Contains(text, "535") {
		return fmt.Sprintf("mail transport authentication failed: %v", err)
	}
	return fmt.Sprintf("mail transport unreachable: %v", err)
}

func welcomeBody(email *WelcomeEmail) string {
	firmLine := ""
	if email.FirmName != "" {
		firmLine = fmt.Sprintf("You have been registered as an employee of %s.\n\n", email.FirmName)
	}
	loginURL := email.LoginURL
	if loginURL == "" {
		loginURL = "https://app.secureplace.io/login"
	}
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"An account has been created for you on Secure Place.\n\n"+
			"%s"+
			"Sign in at %s with:\n"+
			"  Email:    %s\n"+
			"  Password: %s\n\n"+
			"Please change your password after your first sign-in.\n",
		email.Name, firmLine, loginURL, email.Email, email.Password)
}
