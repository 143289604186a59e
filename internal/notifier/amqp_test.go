package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/outbox"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeBroker records publishes and fails the configured targets. PushToOwner
// publishes concurrently, so access is guarded.
type fakeBroker struct {
	mu sync.Mutex

	failExchange bool
	failQueues   map[string]bool

	published []publishCall
}

type publishCall struct {
	exchange   string
	routingKey string
	queue      string
	body       []byte
}

func (b *fakeBroker) Publish(exchange, routingKey string, body []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failExchange {
		return errors.New("channel closed")
	}

	b.published = append(b.published, publishCall{exchange: exchange, routingKey: routingKey, body: body})

	return nil
}

func (b *fakeBroker) PublishToQueue(queue string, body []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failQueues[queue] {
		return errors.New("queue unavailable")
	}

	b.published = append(b.published, publishCall{queue: queue, body: body})

	return nil
}

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

type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Insert(ctx context.Context, msg outbox.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetPendingMessages(ctx context.Context, limit int) ([]outbox.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbox.OutboxMessage), args.Error(1)
}

func (m *mockOutboxRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, retryCount, lastError, nextRetryAt)
	return args.Error(0)
}

func testEvent() Event {
	return NewEvent(EventOrderStatusUpdated, order.Order{
		ID:          42,
		OrderNumber: "ORD-000123",
		UserID:      7,
		Status:      order.StatusPacked,
	})
}

func TestNotifyAdminsRouting(t *testing.T) {
	b := &fakeBroker{}
	d := newDispatcher(b, &mockSubscriptionRepo{}, &mockOutboxRepo{})

	d.NotifyAdmins(context.Background(), testEvent())

	require.Len(t, b.published, 1)
	assert.Equal(t, "pulse.orders", b.published[0].exchange)
	assert.Equal(t, "admin.orders", b.published[0].routingKey)

	var decoded Event
	require.NoError(t, json.Unmarshal(b.published[0].body, &decoded))
	assert.Equal(t, int64(42), decoded.OrderID)
	assert.Equal(t, "ORD-000123", decoded.Order.OrderNumber)
}

func TestNotifyOwnerRouting(t *testing.T) {
	b := &fakeBroker{}
	d := newDispatcher(b, &mockSubscriptionRepo{}, &mockOutboxRepo{})

	d.NotifyOwner(context.Background(), testEvent())

	require.Len(t, b.published, 1)
	assert.Equal(t, "user.7.orders", b.published[0].routingKey)
}

func TestBroadcastFailureParksInOutbox(t *testing.T) {
	b := &fakeBroker{failExchange: true}
	outboxRepo := &mockOutboxRepo{}
	outboxRepo.On("Insert", mock.Anything, mock.MatchedBy(func(msg outbox.OutboxMessage) bool {
		return msg.ExchangeName == "pulse.orders" &&
			msg.RoutingKey == "admin.orders" &&
			msg.MaxRetries == defaultMaxRetries &&
			len(msg.Payload) > 0
	})).Return(nil).Once()

	d := newDispatcher(b, &mockSubscriptionRepo{}, outboxRepo)

	// Must not panic or surface the failure.
	d.NotifyAdmins(context.Background(), testEvent())

	outboxRepo.AssertExpectations(t)
}

func TestPushToOwnerFanOut(t *testing.T) {
	b := &fakeBroker{}
	subRepo := &mockSubscriptionRepo{}
	subRepo.On("ListByUser", mock.Anything, int64(7)).Return([]subscription.Subscription{
		{ID: 1, UserID: 7, Endpoint: "https://push.example/a"},
		{ID: 2, UserID: 7, Endpoint: "https://push.example/b"},
	}, nil)

	d := newDispatcher(b, subRepo, &mockOutboxRepo{})

	d.PushToOwner(context.Background(), testEvent())

	require.Len(t, b.published, 2)
	queues := []string{b.published[0].queue, b.published[1].queue}
	assert.ElementsMatch(t, []string{"push.subscription.1", "push.subscription.2"}, queues)
	subRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPushToOwnerPurgesDeadEndpoint(t *testing.T) {
	b := &fakeBroker{failQueues: map[string]bool{"push.subscription.1": true}}
	subRepo := &mockSubscriptionRepo{}
	subRepo.On("ListByUser", mock.Anything, int64(7)).Return([]subscription.Subscription{
		{ID: 1, UserID: 7, Endpoint: "https://push.example/a"},
		{ID: 2, UserID: 7, Endpoint: "https://push.example/b"},
	}, nil)
	subRepo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

	d := newDispatcher(b, subRepo, &mockOutboxRepo{})

	d.PushToOwner(context.Background(), testEvent())

	// The healthy endpoint is still delivered to.
	require.Len(t, b.published, 1)
	assert.Equal(t, "push.subscription.2", b.published[0].queue)
	subRepo.AssertExpectations(t)
}

func TestPushToOwnerNoSubscriptions(t *testing.T) {
	b := &fakeBroker{}
	subRepo := &mockSubscriptionRepo{}
	subRepo.On("ListByUser", mock.Anything, int64(7)).Return([]subscription.Subscription{}, nil)

	d := newDispatcher(b, subRepo, &mockOutboxRepo{})

	d.PushToOwner(context.Background(), testEvent())

	assert.Empty(t, b.published)
}
