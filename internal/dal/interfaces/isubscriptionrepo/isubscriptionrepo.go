package isubscriptionrepo

import (
	"context"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/subscription"
)

// ISubscriptionRepository stores durable push endpoints.
type ISubscriptionRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]subscription.Subscription, error)
	Insert(ctx context.Context, sub subscription.Subscription) (subscription.Subscription, error)
	GetByID(ctx context.Context, id int64) (*subscription.Subscription, error)
	Delete(ctx context.Context, id int64) error
}
