package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"event-crm/internal/config"
	"event-crm/internal/models"
)

// Mailer sends templated notifications. Delivery is fire-and-forget
// from the workflows' perspective: a failed email never fails the
// underlying mutation.
type Mailer interface {
	SendInquiryNotification(inquiry *models.Inquiry) error
	SendWelcome(to, name, tempPassword string) error
}

type SMTPMailer struct {
	host         string
	port         string
	username     string
	password     string
	notifyTo     string
	dashboardURL string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:         cfg.Host,
		port:         cfg.Port,
		username:     cfg.User,
		password:     cfg.Pass,
		notifyTo:     cfg.NotifyTo,
		dashboardURL: cfg.DashboardURL,
	}
}

// Enabled reports whether SMTP is configured; without a host the mailer
// silently drops messages so local setups work without a mail server.
func (m *SMTPMailer) Enabled() bool {
	return m.host != ""
}

func (m *SMTPMailer) SendInquiryNotification(inquiry *models.Inquiry) error {
	if !m.Enabled() || m.notifyTo == "" {
		return nil
	}

	var msgBlock string
	if inquiry.Message != "" {
		msgBlock = fmt.Sprintf("<p><strong>Message:</strong><br>%s</p>", inquiry.Message)
	}
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333;">New Inquiry Received</h1>
  <p>A new inquiry has been submitted:</p>
  <ul>
    <li><strong>Name:</strong> %s</li>
    <li><strong>Email:</strong> %s</li>
    <li><strong>Phone:</strong> %s</li>
    <li><strong>Event Type:</strong> %s</li>
    <li><strong>Event Date:</strong> %s</li>
    <li><strong>Guest Count:</strong> %d</li>
  </ul>
  %s
  <p><a href="%s">View in Dashboard</a></p>
</div>`,
		inquiry.FullName, inquiry.Email, inquiry.Phone, inquiry.EventType,
		inquiry.EventDate.Format("2006-01-02"), inquiry.GuestCount, msgBlock, m.dashboardURL)

	return m.send(m.notifyTo, "New Inquiry Received", html)
}

func (m *SMTPMailer) SendWelcome(to, name, tempPassword string) error {
	if !m.Enabled() {
		return nil
	}

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333;">Welcome, %s!</h1>
  <p>Your account has been created. Sign in with the temporary password below and change it on first login.</p>
  <p><strong>Temporary password:</strong> %s</p>
  <p><a href="%s">Login to Dashboard</a></p>
</div>`, name, tempPassword, m.dashboardURL)

	return m.send(to, "Your account is ready", html)
}

func (m *SMTPMailer) send(to, subject, html string) error {
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	headers := []string{
		"From: " + m.username,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + html

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.username, []string{to}, []byte(message)); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}
	return nil
}
