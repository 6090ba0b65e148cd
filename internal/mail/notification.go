package mail

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	gomail "github.com/emersion/go-message/mail"

	"github.com/brainscroller/site/internal/model"
)

const (
	notProvided = "(not provided)"
	noSubject   = "(none)"
)

// ComposerConfig holds the fixed addressing for operator notifications.
type ComposerConfig struct {
	FromName    string
	FromAddress string
	Operator    string // mailbox that receives every notification
	SubjectTag  string // e.g. "BrainScroller" renders "[BrainScroller] <subject>"
}

// Notification is a composed operator email ready for a Sender.
type Notification struct {
	To      []string
	Subject string
	ReplyTo string // empty when the submitter gave no usable address
	Body    string
	Raw     []byte
}

// Composer turns contact submissions into operator notifications.
type Composer struct {
	cfg ComposerConfig
	now func() time.Time
}

// NewComposer returns a Composer for cfg.
func NewComposer(cfg ComposerConfig) *Composer {
	return &Composer{cfg: cfg, now: time.Now}
}

// Subject returns the notification subject for sub.
func (c *Composer) Subject(sub model.ContactSubmission) string {
	if sub.Subject != "" {
		return fmt.Sprintf("[%s] %s", c.cfg.SubjectTag, sub.Subject)
	}
	return fmt.Sprintf("New message from %s contact form", c.cfg.SubjectTag)
}

// Body returns the plain-text notification body for sub.
func (c *Composer) Body(sub model.ContactSubmission) string {
	email := sub.Email
	if email == "" {
		email = notProvided
	}
	subject := sub.Subject
	if subject == "" {
		subject = noSubject
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📩 New %s Contact Message\n\n", c.cfg.SubjectTag)
	fmt.Fprintf(&b, "From: %s\n", sub.Name)
	fmt.Fprintf(&b, "Email: %s\n", email)
	fmt.Fprintf(&b, "Subject: %s\n\n", subject)
	fmt.Fprintf(&b, "Message:\n%s\n\n", sub.Message)
	b.WriteString("----------------------------------\n")
	fmt.Fprintf(&b, "Sent via %s Contact Page\n", c.cfg.SubjectTag)
	return b.String()
}

// Compose builds the MIME message for sub.
func (c *Composer) Compose(sub model.ContactSubmission) (*Notification, error) {
	n := &Notification{
		To:      []string{c.cfg.Operator},
		Subject: c.Subject(sub),
		ReplyTo: sub.ReplyTo(),
		Body:    c.Body(sub),
	}

	var h gomail.Header
	h.SetDate(c.now())
	h.SetAddressList("From", []*gomail.Address{{Name: c.cfg.FromName, Address: c.cfg.FromAddress}})
	h.SetAddressList("To", []*gomail.Address{{Address: c.cfg.Operator}})
	if n.ReplyTo != "" {
		h.SetAddressList("Reply-To", []*gomail.Address{{Name: sub.Name, Address: n.ReplyTo}})
	}
	h.SetSubject(n.Subject)
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	var buf bytes.Buffer
	w, err := gomail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create message writer: %w", err)
	}
	if _, err := io.WriteString(w, n.Body); err != nil {
		return nil, fmt.Errorf("write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close message writer: %w", err)
	}

	n.Raw = buf.Bytes()
	return n, nil
}
