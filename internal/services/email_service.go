package services

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/eventhubhq/eventhub-backend/internal/config"
)

// Mailer delivers best-effort transactional mail. Implementations never
// return errors to callers; delivery failure is logged and swallowed so the
// parent mutation always succeeds.
type Mailer interface {
	SendEventCreated(toEmail, recipientName, eventTitle string)
	SendRegistrationConfirmation(toEmail, recipientName, eventTitle string, eventDate time.Time)
}

type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendEventCreated(toEmail, recipientName, eventTitle string) {
	subject := "Event Published Successfully - EventHub"
	body := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; padding: 20px;">
<h1>Event Published Successfully!</h1>
<p>Hello %s,</p>
<p>Your event <strong>%s</strong> has been successfully published on EventHub.</p>
<p>Attendees can now discover and register for your event. You can manage it from your dashboard.</p>
<p><a href="%s">View Dashboard</a></p>
<p style="color: #999999; font-size: 12px;">This is an automated email from EventHub. Please do not reply.</p>
</body></html>`, recipientName, eventTitle, m.cfg.BaseURL)

	m.send(toEmail, subject, body)
}

func (m *SMTPMailer) SendRegistrationConfirmation(toEmail, recipientName, eventTitle string, eventDate time.Time) {
	subject := "Registration Confirmed - EventHub"
	body := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; padding: 20px;">
<h1>Registration Confirmed!</h1>
<p>Hello %s,</p>
<p>You have successfully registered for <strong>%s</strong>.</p>
<p><strong>Event Date:</strong> %s</p>
<p>We look forward to seeing you at the event!</p>
<p><a href="%s">View My Events</a></p>
<p style="color: #999999; font-size: 12px;">This is an automated email from EventHub. Please do not reply.</p>
</body></html>`, recipientName, eventTitle, eventDate.Format("January 02, 2006 at 03:04 PM"), m.cfg.BaseURL)

	m.send(toEmail, subject, body)
}

func (m *SMTPMailer) send(toEmail, subject, body string) {
	// Without SMTP credentials, log the mail instead of sending it.
	if m.cfg.SMTPUsername == "" || m.cfg.SMTPPassword == "" {
		slog.Info("email would be sent", "to", toEmail, "subject", subject)
		return
	}

	msg := "From: " + m.cfg.FromName + " <" + m.cfg.FromEmail + ">\r\n" +
		"To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, m.cfg.FromEmail, []string{toEmail}, []byte(msg)); err != nil {
		slog.Error("failed to send email", "to", toEmail, "subject", subject, "error", err)
		return
	}
	slog.Info("email sent", "to", toEmail, "subject", subject)
}
