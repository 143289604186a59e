package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/postgres"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/address"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/jackc/pgx/v5"
)

// PostgresAddressRepository is the read-only address store.
type PostgresAddressRepository struct {
	conn postgres.Querier
}

func NewPostgresAddressRepository(conn postgres.Querier) *PostgresAddressRepository {
	return &PostgresAddressRepository{
		conn: conn,
	}
}

var addressColumns = []string{"id", "user_id", "line1", "city", "state", "country"}

func scanAddress(row pgx.Row) (*address.Address, error) {
	var a address.Address
	err := row.Scan(&a.ID, &a.UserID, &a.Line1, &a.City, &a.State, &a.Country)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// GetByID retrieves an address by id.
func (r *PostgresAddressRepository) GetByID(ctx context.Context, id int64) (*address.Address, error) {
	query, args, err := sq.Select(addressColumns...).
		From("addresses").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	a, err := scanAddress(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query address: %w", err)
	}

	return a, nil
}

// FirstByUser retrieves the user's oldest address, used by the explicit
// repair routine when an order references a missing address.
func (r *PostgresAddressRepository) FirstByUser(ctx context.Context, userID int64) (*address.Address, error) {
	query, args, err := sq.Select(addressColumns...).
		From("addresses").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id ASC").
		Limit(1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	a, err := scanAddress(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query address: %w", err)
	}

	return a, nil
}
