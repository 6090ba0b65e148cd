package model

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// SourceContactPage tags every message that arrives through the public contact form.
const SourceContactPage = "contact_page"

// emailChar is any character other than '@' and the whitespace set matched
// by JavaScript's \s, which includes NBSP, the Unicode space separators,
// the line and paragraph separators, and the BOM. Go's \s is ASCII only.
const emailChar = `[^\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}@]`

// emailPattern accepts anything shaped like local@domain.tld. It does not
// enforce a TLD length and allows consecutive dots.
var emailPattern = regexp.MustCompile(`^` + emailChar + `+@` + emailChar + `+\.` + emailChar + `+$`)

// ValidEmail reports whether s matches the contact form email pattern.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ContactSubmission is the JSON body posted by the contact form.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// MissingRequired reports whether name or message is empty.
func (s ContactSubmission) MissingRequired() bool {
	return s.Name == "" || s.Message == ""
}

// ReplyTo returns the submitter address when it is present and well formed,
// otherwise "".
func (s ContactSubmission) ReplyTo() string {
	if s.Email != "" && ValidEmail(s.Email) {
		return s.Email
	}
	return ""
}

// StoredMessage is the append-only record written for each accepted submission.
type StoredMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email" db:"email"`
	Subject   *string   `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Source    string    `json:"source" db:"source"`
}

// NewStoredMessage builds the record for sub. Missing or malformed email and
// an empty subject are stored as null.
func NewStoredMessage(sub ContactSubmission, now time.Time) *StoredMessage {
	msg := &StoredMessage{
		ID:        uuid.NewString(),
		Name:      sub.Name,
		Message:   sub.Message,
		CreatedAt: now.UTC(),
		Source:    SourceContactPage,
	}
	if email := sub.ReplyTo(); email != "" {
		msg.Email = &email
	}
	if sub.Subject != "" {
		subject := sub.Subject
		msg.Subject = &subject
	}
	return msg
}
