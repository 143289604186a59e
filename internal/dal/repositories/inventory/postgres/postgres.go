package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/postgres"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/product"
	"github.com/jackc/pgx/v5"
)

// PostgresInventoryRepository reads the product catalogue and applies the
// atomic stock decrement.
type PostgresInventoryRepository struct {
	conn postgres.Querier
}

func NewPostgresInventoryRepository(conn postgres.Querier) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{
		conn: conn,
	}
}

// GetByIds retrieves products by their ids.
func (r *PostgresInventoryRepository) GetByIds(ctx context.Context, ids []int64) ([]product.Product, error) {
	query, args, err := sq.Select("id", "name", "price_cents", "stock").
		From("products").
		Where(sq.Eq{"id": ids}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// DecrementStock reserves qty units in a single conditional update. The
// WHERE clause is the serialization point: of two concurrent reservations
// competing for the last units, exactly one matches the row.
func (r *PostgresInventoryRepository) DecrementStock(ctx context.Context, productID int64, qty int) (int, error) {
	query, args, err := sq.Update("products").
		Set("stock", sq.Expr("stock - ?", qty)).
		Where(sq.Eq{"id": productID}).
		Where(sq.GtOrEq{"stock": qty}).
		Suffix("RETURNING stock").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update query: %w", err)
	}

	var remaining int
	err = r.conn.QueryRow(ctx, query, args...).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the product is missing or stock < qty; disambiguate so the
		// caller can surface the right error.
		exists, existsErr := r.exists(ctx, productID)
		if existsErr != nil {
			return 0, existsErr
		}
		if !exists {
			return 0, apperror.ErrProductNotFound
		}

		return 0, apperror.ErrInsufficientStock
	}
	if err != nil {
		return 0, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return remaining, nil
}

func (r *PostgresInventoryRepository) exists(ctx context.Context, productID int64) (bool, error) {
	query, args, err := sq.Select("1").
		From("products").
		Where(sq.Eq{"id": productID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build select query: %w", err)
	}

	var one int
	err = r.conn.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check product: %w", err)
	}

	return true, nil
}
