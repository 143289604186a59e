package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/ioutboxrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/isubscriptionrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/rabbitmq"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/outbox"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

const (
	// ordersExchange is the topic exchange carrying realtime order events.
	ordersExchange = "pulse.orders"

	adminRoutingKey = "admin.orders"

	defaultMaxRetries = 5
)

func userRoutingKey(userID int64) string {
	return fmt.Sprintf("user.%d.orders", userID)
}

func pushQueueName(subscriptionID int64) string {
	return fmt.Sprintf("push.subscription.%d", subscriptionID)
}

// broker is the slice of the AMQP client the dispatcher needs.
type broker interface {
	Publish(exchange, routingKey string, body []byte) error
	PublishToQueue(queue string, body []byte) error
}

// rabbitBroker adapts *rabbitmq.Client to the broker interface.
type rabbitBroker struct {
	client *rabbitmq.Client
}

func (b *rabbitBroker) Publish(exchange, routingKey string, body []byte) error {
	return b.client.Channel().Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (b *rabbitBroker) PublishToQueue(queue string, body []byte) error {
	q, err := b.client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queue,
		Durable: true,
	})
	if err != nil {
		return err
	}

	return b.Publish("", q.Name, body)
}

// AMQPDispatcher publishes order events to RabbitMQ. Broadcast channels are
// best effort with an outbox fallback; push endpoints get one attempt each
// and are purged on failure.
type AMQPDispatcher struct {
	broker     broker
	subRepo    isubscriptionrepo.ISubscriptionRepository
	outboxRepo ioutboxrepo.IOutboxRepository
}

// NewAMQPDispatcher creates a dispatcher and declares the orders exchange.
func NewAMQPDispatcher(
	client *rabbitmq.Client,
	subRepo isubscriptionrepo.ISubscriptionRepository,
	outboxRepo ioutboxrepo.IOutboxRepository,
) *AMQPDispatcher {
	err := client.DeclareExchange(rabbitmq.DeclareExchangeConfig{
		Name:    ordersExchange,
		Kind:    "topic",
		Durable: true,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to declare orders exchange: %v", err))
	}

	return newDispatcher(&rabbitBroker{client: client}, subRepo, outboxRepo)
}

func newDispatcher(
	b broker,
	subRepo isubscriptionrepo.ISubscriptionRepository,
	outboxRepo ioutboxrepo.IOutboxRepository,
) *AMQPDispatcher {
	return &AMQPDispatcher{
		broker:     b,
		subRepo:    subRepo,
		outboxRepo: outboxRepo,
	}
}

// NotifyAdmins publishes the event to the admin broadcast channel.
func (d *AMQPDispatcher) NotifyAdmins(ctx context.Context, event Event) {
	d.broadcast(ctx, event, adminRoutingKey)
}

// NotifyOwner publishes the event to the owning user's channel.
func (d *AMQPDispatcher) NotifyOwner(ctx context.Context, event Event) {
	d.broadcast(ctx, event, userRoutingKey(event.Order.UserID))
}

// broadcast publishes to the orders exchange. On failure the message is
// parked in the outbox so the worker can redeliver it; the caller is never
// failed.
func (d *AMQPDispatcher) broadcast(ctx context.Context, event Event, routingKey string) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal order event", "event_id", event.EventID, "error", err)

		return
	}

	err = d.broker.Publish(ordersExchange, routingKey, payload)
	if err == nil {
		return
	}

	slog.Warn("Failed to publish order event, parking in outbox",
		"event_id", event.EventID,
		"routing_key", routingKey,
		"error", err,
	)

	now := time.Now()
	outboxErr := d.outboxRepo.Insert(ctx, outbox.OutboxMessage{
		ExchangeName: ordersExchange,
		RoutingKey:   routingKey,
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   defaultMaxRetries,
		LastError:    err.Error(),
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	})
	if outboxErr != nil {
		slog.Error("Failed to park order event in outbox",
			"event_id", event.EventID,
			"routing_key", routingKey,
			"error", outboxErr,
		)
	}
}

// PushToOwner delivers the event to each of the owner's registered push
// endpoints independently. A subscription whose queue rejects the publish is
// purged so it is not attempted again.
func (d *AMQPDispatcher) PushToOwner(ctx context.Context, event Event) {
	subs, err := d.subRepo.ListByUser(ctx, event.Order.UserID)
	if err != nil {
		slog.Error("Failed to list push subscriptions",
			"user_id", event.Order.UserID,
			"error", err,
		)

		return
	}
	if len(subs) == 0 {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal order event", "event_id", event.EventID, "error", err)

		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)

	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			err := d.broker.PublishToQueue(pushQueueName(sub.ID), payload)
			if err == nil {
				return nil
			}

			slog.Warn("Push delivery failed, purging subscription",
				"subscription_id", sub.ID,
				"user_id", sub.UserID,
				"error", err,
			)

			if delErr := d.subRepo.Delete(ctx, sub.ID); delErr != nil {
				slog.Error("Failed to purge dead subscription",
					"subscription_id", sub.ID,
					"error", delErr,
				)
			}

			// Per-endpoint failures never block the remaining endpoints.
			return nil
		})
	}

	_ = g.Wait()
}
