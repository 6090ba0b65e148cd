package service

import (
	"context"
	"errors"

	"github.com/brainscroller/site/internal/model"
)

var (
	// ErrMissingFields is returned when name or message is empty.
	ErrMissingFields = errors.New("missing required fields")

	// ErrDelivery wraps a failed operator notification.
	ErrDelivery = errors.New("failed to send email")
)

// SubmitResult reports what happened to each side effect of an accepted submission.
type SubmitResult struct {
	Message *model.StoredMessage

	MailAttempted  bool
	MailErr        error
	StoreAttempted bool
	StoreErr       error
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates sub, then notifies the operator and appends a
	// StoredMessage independently of each other. The returned error is
	// non-nil only for validation failures and failed notifications;
	// a failed insert is logged and reported in SubmitResult.StoreErr.
	Submit(ctx context.Context, sub model.ContactSubmission) (*SubmitResult, error)
}
