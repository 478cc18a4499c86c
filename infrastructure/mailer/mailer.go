// Package mailer formats contact-form submissions as HTML email and
// delivers them over SMTP.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"codeslabs/models"
)

var ErrDisabled = errors.New("smtp delivery is not configured")

// Config holds the SMTP settings. An empty Addr disables delivery.
type Config struct {
	Addr     string
	Username string
	Password string
	From     string
	To       string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer delivers contact notifications.
type Mailer struct {
	cfg  Config
	send sendFunc
	now  func() time.Time
}

func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail, now: time.Now}
}

func (m *Mailer) Enabled() bool {
	return m != nil && strings.TrimSpace(m.cfg.Addr) != ""
}

// NotifyContact sends msg to the configured inbox. It returns ErrDisabled
// when no SMTP server is configured.
func (m *Mailer) NotifyContact(ctx context.Context, msg models.ContactMessage) error {
	if !m.Enabled() {
		slog.Info("contact message stored without email delivery", slog.Int64("contact_id", msg.ID))
		return ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	at := msg.CreatedAt
	if at.IsZero() {
		at = m.now()
	}
	htmlBody, err := RenderContactHTML(ctx, msg, at)
	if err != nil {
		return fmt.Errorf("render contact email: %w", err)
	}
	raw, err := buildMessage(m.cfg.From, m.cfg.To, ContactSubject(msg), htmlBody, ContactText(msg, at))
	if err != nil {
		return fmt.Errorf("build contact email: %w", err)
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		host := m.cfg.Addr
		if i := strings.LastIndex(host, ":"); i > 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, host)
	}
	if err := m.send(m.cfg.Addr, auth, m.cfg.From, []string{m.cfg.To}, raw); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	return nil
}

// ContactSubject is the subject line of the notification.
func ContactSubject(msg models.ContactMessage) string {
	return fmt.Sprintf("Nuevo Contacto de %s - %s", msg.CompanyName, msg.ContactName)
}

func buildMessage(from, to, subject, htmlBody, textBody string) ([]byte, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, part := range []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", textBody},
		{"text/html; charset=UTF-8", htmlBody},
	} {
		pw, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := pw.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s\r\n", from)
	fmt.Fprintf(&out, "To: %s\r\n", to)
	fmt.Fprintf(&out, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	out.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", w.Boundary())
	out.Write(body.Bytes())
	return out.Bytes(), nil
}
