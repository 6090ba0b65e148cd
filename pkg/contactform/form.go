// Package contactform is the client side of the contact form: field
// validation, a single-flight submit, and the idle/loading/sent/error
// state the UI renders.
package contactform

import (
	"context"
	"errors"
	"sync"

	"github.com/brainscroller/site/internal/model"
)

// State is the form's submission state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSent    State = "sent"
	StateError   State = "error"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidEmail  = errors.New("invalid email")

	// ErrBusy is returned by Submit while a request is in flight.
	ErrBusy = errors.New("submission in progress")
	// ErrNotIdle is returned by Submit after a finished attempt; call Reset first.
	ErrNotIdle = errors.New("form is not idle")
)

// Messages shown to the user.
const (
	MsgMissingFields = "Please fill in your name and message."
	MsgInvalidEmail  = "Please enter a valid email address, or leave it empty."
	MsgSendFailed    = "Could not send your message. Please try again."
)

// Fields are the four inputs of the contact form. All are sent, empty or not.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// EmailInvalid reports whether a non-empty email fails the pattern.
func (f Fields) EmailInvalid() bool {
	return f.Email != "" && !model.ValidEmail(f.Email)
}

// Validate returns ErrMissingFields or ErrInvalidEmail, in that order.
func (f Fields) Validate() error {
	if f.Name == "" || f.Message == "" {
		return ErrMissingFields
	}
	if f.EmailInvalid() {
		return ErrInvalidEmail
	}
	return nil
}

// Form holds the contact form's fields and submission state.
// It is safe for concurrent use; at most one submission is in flight.
type Form struct {
	submitter Submitter

	mu      sync.Mutex
	fields  Fields
	state   State
	message string
	lastErr error
}

// NewForm returns an idle, empty form that submits through s.
func NewForm(s Submitter) *Form {
	return &Form{submitter: s, state: StateIdle}
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Fields returns a copy of the current fields.
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SetFields replaces the field values.
func (f *Form) SetFields(v Fields) {
	f.mu.Lock()
	f.fields = v
	f.mu.Unlock()
}

// Message returns the user-facing message for the last failure, or "".
func (f *Form) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Err returns the underlying error of the last failed submission.
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Submit validates the fields and, if they pass, sends them once.
//
// Validation failures leave the form idle with nothing sent. A send failure
// moves the form to StateError with the fields kept; success moves it to
// StateSent and clears the fields.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case StateLoading:
		f.mu.Unlock()
		return ErrBusy
	case StateSent, StateError:
		f.mu.Unlock()
		return ErrNotIdle
	}

	f.message, f.lastErr = "", nil
	if err := f.fields.Validate(); err != nil {
		f.lastErr = err
		f.message = MsgMissingFields
		if errors.Is(err, ErrInvalidEmail) {
			f.message = MsgInvalidEmail
		}
		f.mu.Unlock()
		return err
	}

	f.state = StateLoading
	fields := f.fields
	f.mu.Unlock()

	err := f.submitter.Send(ctx, fields)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateError
		f.message = MsgSendFailed
		f.lastErr = err
		return err
	}
	f.state = StateSent
	f.fields = Fields{}
	return nil
}

// Reset returns a finished form to idle for a new attempt. Fields are kept.
// It has no effect while a submission is in flight.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateLoading {
		return
	}
	f.state = StateIdle
	f.message, f.lastErr = "", nil
}
