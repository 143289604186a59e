package ioutboxrepo

import (
	"context"
	"time"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/outbox"
)

// IOutboxRepository stores notifications that could not be published and are
// awaiting redelivery by the outbox worker.
type IOutboxRepository interface {
	Insert(ctx context.Context, msg outbox.OutboxMessage) error
	GetPendingMessages(ctx context.Context, limit int) ([]outbox.OutboxMessage, error)
	Delete(ctx context.Context, id int64) error
	UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error
}
