package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/postgres"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/subscription"
	"github.com/jackc/pgx/v5"
)

// PostgresSubscriptionRepository stores durable push endpoints.
type PostgresSubscriptionRepository struct {
	conn postgres.Querier
}

func NewPostgresSubscriptionRepository(conn postgres.Querier) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{
		conn: conn,
	}
}

var subscriptionColumns = []string{"id", "user_id", "endpoint", "auth_key", "p256dh_key", "created_at"}

func scanSubscription(row pgx.Row) (*subscription.Subscription, error) {
	var s subscription.Subscription
	err := row.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.AuthKey, &s.P256dhKey, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// ListByUser retrieves all push endpoints registered by a user.
func (r *PostgresSubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]subscription.Subscription, error) {
	query, args, err := sq.Select(subscriptionColumns...).
		From("push_subscriptions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var result []subscription.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert registers a push endpoint. Re-registering the same endpoint for the
// same user replaces the keys instead of duplicating the row.
func (r *PostgresSubscriptionRepository) Insert(ctx context.Context, sub subscription.Subscription) (subscription.Subscription, error) {
	query, args, err := sq.Insert("push_subscriptions").
		Columns("user_id", "endpoint", "auth_key", "p256dh_key", "created_at").
		Values(sub.UserID, sub.Endpoint, sub.AuthKey, sub.P256dhKey, sub.CreatedAt).
		Suffix(`ON CONFLICT (user_id, endpoint) DO UPDATE
			SET auth_key = EXCLUDED.auth_key, p256dh_key = EXCLUDED.p256dh_key
			RETURNING id`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&sub.ID); err != nil {
		return subscription.Subscription{}, fmt.Errorf("failed to insert subscription: %w", err)
	}

	return sub, nil
}

// GetByID retrieves one subscription.
func (r *PostgresSubscriptionRepository) GetByID(ctx context.Context, id int64) (*subscription.Subscription, error) {
	query, args, err := sq.Select(subscriptionColumns...).
		From("push_subscriptions").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	s, err := scanSubscription(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query subscription: %w", err)
	}

	return s, nil
}

// Delete purges a subscription, either on user request or after a failed
// delivery.
func (r *PostgresSubscriptionRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("push_subscriptions").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	return nil
}
