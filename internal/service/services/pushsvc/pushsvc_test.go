package pushsvc

import (
	"context"
	"testing"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) ListByUser(ctx context.Context, userID int64) ([]subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) Insert(ctx context.Context, sub subscription.Subscription) (subscription.Subscription, error) {
	args := m.Called(ctx, sub)
	if fn, ok := args.Get(0).(func(subscription.Subscription) subscription.Subscription); ok {
		return fn(sub), args.Error(1)
	}
	return args.Get(0).(subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) GetByID(ctx context.Context, id int64) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestSubscribe(t *testing.T) {
	repo := &mockSubscriptionRepo{}
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(sub subscription.Subscription) bool {
		return sub.UserID == 7 && sub.Endpoint == "https://push.example/a"
	})).Return(func(sub subscription.Subscription) subscription.Subscription {
		sub.ID = 11
		return sub
	}, nil)

	svc := MustNewPushService(WithSubscriptionRepository(repo))

	sub, err := svc.Subscribe(context.Background(), actor.Actor{UserID: 7}, "https://push.example/a", "auth", "p256dh")
	require.NoError(t, err)
	assert.Equal(t, int64(11), sub.ID)
	assert.Equal(t, int64(7), sub.UserID)
}

func TestSubscribeEmptyEndpoint(t *testing.T) {
	svc := MustNewPushService(WithSubscriptionRepository(&mockSubscriptionRepo{}))

	_, err := svc.Subscribe(context.Background(), actor.Actor{UserID: 7}, "", "auth", "p256dh")

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUnsubscribeOwner(t *testing.T) {
	repo := &mockSubscriptionRepo{}
	repo.On("GetByID", mock.Anything, int64(11)).
		Return(&subscription.Subscription{ID: 11, UserID: 7}, nil)
	repo.On("Delete", mock.Anything, int64(11)).Return(nil).Once()

	svc := MustNewPushService(WithSubscriptionRepository(repo))

	require.NoError(t, svc.Unsubscribe(context.Background(), actor.Actor{UserID: 7}, 11))
	repo.AssertExpectations(t)
}

func TestUnsubscribeForeignSubscription(t *testing.T) {
	repo := &mockSubscriptionRepo{}
	repo.On("GetByID", mock.Anything, int64(11)).
		Return(&subscription.Subscription{ID: 11, UserID: 7}, nil)

	svc := MustNewPushService(WithSubscriptionRepository(repo))

	err := svc.Unsubscribe(context.Background(), actor.Actor{UserID: 8}, 11)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUnsubscribeAsAdmin(t *testing.T) {
	repo := &mockSubscriptionRepo{}
	repo.On("GetByID", mock.Anything, int64(11)).
		Return(&subscription.Subscription{ID: 11, UserID: 7}, nil)
	repo.On("Delete", mock.Anything, int64(11)).Return(nil).Once()

	svc := MustNewPushService(WithSubscriptionRepository(repo))

	require.NoError(t, svc.Unsubscribe(context.Background(), actor.Actor{UserID: 1, IsAdmin: true}, 11))
	repo.AssertExpectations(t)
}
