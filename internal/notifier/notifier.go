package notifier

import (
	"context"
	"time"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
	"github.com/google/uuid"
)

// Event types published on order mutations.
const (
	EventOrderCreated        = "order.created"
	EventOrderStatusUpdated  = "order.status_updated"
	EventOrderPaymentUpdated = "order.payment_updated"
	EventOrderRepaired       = "order.repaired"
	EventOrderDeleted        = "order.deleted"
)

// Event is the envelope carried on every notification channel. The order
// snapshot is whatever was persisted by the triggering operation; events are
// published only after a successful commit.
type Event struct {
	EventID   string      `json:"eventId"`
	Type      string      `json:"type"`
	OrderID   int64       `json:"orderId"`
	Order     order.Order `json:"order"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewEvent builds an envelope around an order snapshot.
func NewEvent(eventType string, o order.Order) Event {
	return Event{
		EventID:   uuid.NewString(),
		Type:      eventType,
		OrderID:   o.ID,
		Order:     o,
		CreatedAt: time.Now().UTC(),
	}
}

// Dispatcher fans an order event out to its audiences. Implementations are
// fire-and-forget: delivery failures are logged or queued for redelivery,
// never surfaced to the business operation that triggered the event.
type Dispatcher interface {
	// NotifyAdmins publishes to the administrative broadcast channel.
	NotifyAdmins(ctx context.Context, event Event)
	// NotifyOwner publishes to the channel scoped to the order's owner.
	NotifyOwner(ctx context.Context, event Event)
	// PushToOwner attempts delivery to each durable push endpoint the owner
	// registered. An endpoint whose delivery fails is purged; the others are
	// still attempted.
	PushToOwner(ctx context.Context, event Event)
}
