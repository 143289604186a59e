package postgresrepo

import (
	"context"
	"fmt"

	"github.com/divineshedrack33220/pulse-parcel/internal/dal/postgres"
)

// PostgresOrderNumberRepository hands out order-number sequence values from
// a database sequence. nextval is atomic, so concurrent creations never
// observe the same value; this replaces counting existing rows, which races
// under concurrency.
type PostgresOrderNumberRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderNumberRepository(conn postgres.Querier) *PostgresOrderNumberRepository {
	return &PostgresOrderNumberRepository{
		conn: conn,
	}
}

// NextVal returns the next value of the order-number sequence.
func (r *PostgresOrderNumberRepository) NextVal(ctx context.Context) (int64, error) {
	var val int64
	err := r.conn.QueryRow(ctx, "SELECT nextval('order_number_seq')").Scan(&val)
	if err != nil {
		return 0, fmt.Errorf("failed to advance order number sequence: %w", err)
	}

	return val, nil
}
