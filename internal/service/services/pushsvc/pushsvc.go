package pushsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/isubscriptionrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/postgres"
	subscriptionrepo "github.com/divineshedrack33220/pulse-parcel/internal/dal/repositories/subscription/postgres"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/subscription"
)

// PushService manages durable push subscriptions.
type PushService struct {
	subRepo isubscriptionrepo.ISubscriptionRepository
}

// option is a function that configures the PushService.
type option func(*PushService)

// MustNewPushService creates a new PushService.
func MustNewPushService(opts ...option) *PushService {
	s := &PushService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the PushService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *PushService) {
		s.subRepo = subscriptionrepo.NewPostgresSubscriptionRepository(pgClient.Pool())
	}
}

// WithSubscriptionRepository overrides the subscription repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSubscriptionRepository(repo isubscriptionrepo.ISubscriptionRepository) option {
	return func(s *PushService) {
		s.subRepo = repo
	}
}

// Subscribe registers a push endpoint for the calling user.
func (s *PushService) Subscribe(
	ctx context.Context,
	who actor.Actor,
	endpoint, authKey, p256dhKey string,
) (*subscription.Subscription, error) {
	if endpoint == "" {
		return nil, apperror.New(apperror.CodeValidation, "Subscription endpoint is required")
	}

	sub, err := s.subRepo.Insert(ctx, subscription.Subscription{
		UserID:    who.UserID,
		Endpoint:  endpoint,
		AuthKey:   authKey,
		P256dhKey: p256dhKey,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Push subscription registered", "subscription_id", sub.ID, "user_id", sub.UserID)

	return &sub, nil
}

// Unsubscribe removes a push endpoint. Users may only remove their own;
// admins may remove any.
func (s *PushService) Unsubscribe(ctx context.Context, who actor.Actor, id int64) error {
	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !who.IsAdmin && sub.UserID != who.UserID {
		return apperror.ErrForbidden
	}

	return s.subRepo.Delete(ctx, id)
}
