package repository

import (
	"context"

	"github.com/brainscroller/site/internal/model"
)

// DB is a store connection that can report whether it is alive.
type DB interface {
	Ping(ctx context.Context) error
}

// MessageRepository appends contact messages to durable storage.
// Stored messages are never updated or deleted, so no such methods exist.
type MessageRepository interface {
	Append(ctx context.Context, msg *model.StoredMessage) error
}
