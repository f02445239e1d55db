// Package contact relays contact-form submissions to the site owner by email.
package contact

import (
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/Zachkp/portfolio/internal/config"
)

var ErrNotConfigured = errors.New("SMTP credentials not configured")

// Form is the contact form as posted by the page.
type Form struct {
	FullName string `form:"fullName" binding:"required,max=120"`
	Email    string `form:"email" binding:"required,email,max=254"`
	Message  string `form:"message" binding:"required,max=5000"`
}

// Relay delivers a submission somewhere a human will read it.
type Relay interface {
	Send(f Form) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends submissions over SMTP with PLAIN auth.
type Mailer struct {
	cfg  config.SMTP
	log  *log.Logger
	send sendFunc
}

func NewMailer(cfg config.SMTP, logger *log.Logger) *Mailer {
	if logger == nil {
		logger = log.Default()
	}
	return &Mailer{cfg: cfg, log: logger, send: smtp.SendMail}
}

func (m *Mailer) Send(f Form) error {
	if !m.cfg.Configured() {
		return ErrNotConfigured
	}

	msg := Compose(m.cfg.User, m.cfg.To, f)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := m.send(m.cfg.Addr(), auth, m.cfg.User, []string{m.cfg.To}, msg); err != nil {
		m.log.Printf("Error sending email: %v", err)
		return fmt.Errorf("send contact email: %w", err)
	}

	m.log.Printf("Email sent successfully from %s (%s)", f.FullName, f.Email)
	return nil
}

// Compose builds the RFC 5322 message. Header values are stripped of line
// breaks so a submitter cannot inject headers.
func Compose(from, to string, f Form) []byte {
	name := headerSafe(f.FullName)
	replyTo := headerSafe(f.Email)

	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, f.FullName, f.Email, f.Message)

	return []byte("To: " + to + "\r\n" +
		"Subject: Portfolio Contact: " + name + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + replyTo + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
