package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/brainscroller/site/internal/mail"
	"github.com/brainscroller/site/internal/metrics"
	"github.com/brainscroller/site/internal/model"
	"github.com/brainscroller/site/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	composer *mail.Composer
	sender   mail.Sender                  // nil when mail is disabled
	repo     repository.MessageRepository // nil when storage is disabled
	now      func() time.Time
}

// NewContactService creates a ContactService.
// A nil sender disables notifications and a nil repo disables storage.
func NewContactService(composer *mail.Composer, sender mail.Sender, repo repository.MessageRepository) ContactService {
	return &contactServiceImpl{
		composer: composer,
		sender:   sender,
		repo:     repo,
		now:      time.Now,
	}
}

// Submit runs the notification and the insert concurrently and waits for both.
func (s *contactServiceImpl) Submit(ctx context.Context, sub model.ContactSubmission) (*SubmitResult, error) {
	if sub.MissingRequired() {
		metrics.RecordSubmission(metrics.OutcomeRejected)
		return nil, ErrMissingFields
	}

	res := &SubmitResult{
		Message:        model.NewStoredMessage(sub, s.now()),
		MailAttempted:  s.sender != nil,
		StoreAttempted: s.repo != nil,
	}

	var wg sync.WaitGroup
	if res.MailAttempted {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res.MailErr = s.notify(ctx, sub)
			metrics.RecordSideEffect(metrics.EffectMail, res.MailErr)
		}()
	}
	if res.StoreAttempted {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res.StoreErr = s.repo.Append(ctx, res.Message)
			metrics.RecordSideEffect(metrics.EffectStore, res.StoreErr)
		}()
	}
	wg.Wait()

	if res.StoreErr != nil {
		slog.ErrorContext(ctx, "message insert failed",
			"message_id", res.Message.ID,
			"error", res.StoreErr,
		)
	}
	if res.MailErr != nil {
		slog.ErrorContext(ctx, "notification send failed",
			"message_id", res.Message.ID,
			"error", res.MailErr,
		)
		metrics.RecordSubmission(metrics.OutcomeFailed)
		return res, fmt.Errorf("%w: %w", ErrDelivery, res.MailErr)
	}

	metrics.RecordSubmission(metrics.OutcomeAccepted)
	slog.InfoContext(ctx, "contact message accepted",
		"message_id", res.Message.ID,
		"mailed", res.MailAttempted,
		"stored", res.StoreAttempted && res.StoreErr == nil,
	)
	return res, nil
}

func (s *contactServiceImpl) notify(ctx context.Context, sub model.ContactSubmission) error {
	n, err := s.composer.Compose(sub)
	if err != nil {
		return fmt.Errorf("compose notification: %w", err)
	}
	return s.sender.Send(ctx, n.To, n.Subject, n.Raw)
}
