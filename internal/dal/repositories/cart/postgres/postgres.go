package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/postgres"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/cart"
)

// PostgresCartRepository reads and clears user carts.
type PostgresCartRepository struct {
	conn postgres.Querier
}

func NewPostgresCartRepository(conn postgres.Querier) *PostgresCartRepository {
	return &PostgresCartRepository{
		conn: conn,
	}
}

// GetByUser retrieves the cart lines for a user.
func (r *PostgresCartRepository) GetByUser(ctx context.Context, userID int64) ([]cart.Item, error) {
	query, args, err := sq.Select("user_id", "product_id", "quantity").
		From("carts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("product_id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	var result []cart.Item
	for rows.Next() {
		var item cart.Item
		if err := rows.Scan(&item.UserID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Clear removes all cart lines for a user.
func (r *PostgresCartRepository) Clear(ctx context.Context, userID int64) error {
	query, args, err := sq.Delete("carts").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
