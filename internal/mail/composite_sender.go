package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brainscroller/site/internal/metrics"
)

// CompositeSender hands the same message to several senders. It fails if
// any required sender fails. Best-effort senders (the mail archive) are
// logged and counted on failure but never fail the send.
type CompositeSender struct {
	senders    []Sender
	bestEffort []Sender
}

// NewCompositeSender returns a CompositeSender over the non-nil senders.
func NewCompositeSender(senders ...Sender) *CompositeSender {
	cs := &CompositeSender{}
	for _, s := range senders {
		cs.Add(s)
	}
	return cs
}

// Add appends a required sender unless it is nil.
func (cs *CompositeSender) Add(sender Sender) {
	if sender != nil {
		cs.senders = append(cs.senders, sender)
	}
}

// AddBestEffort appends a sender whose failures are only logged.
func (cs *CompositeSender) AddBestEffort(sender Sender) {
	if sender != nil {
		cs.bestEffort = append(cs.bestEffort, sender)
	}
}

func (cs *CompositeSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	if len(cs.senders) == 0 {
		return errors.New("no senders configured")
	}

	var errs []error
	for _, s := range cs.senders {
		if err := s.Send(ctx, to, subject, rawMessage); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("composite send: %w", errors.Join(errs...))
	}

	for _, s := range cs.bestEffort {
		err := s.Send(ctx, to, subject, rawMessage)
		metrics.RecordSideEffect(metrics.EffectArchive, err)
		if err != nil {
			slog.WarnContext(ctx, "mail archive failed", "subject", subject, "error", err)
		}
	}
	return nil
}
