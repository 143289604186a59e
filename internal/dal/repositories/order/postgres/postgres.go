package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/postgres"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
	"github.com/jackc/pgx/v5"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id               int64      `db:"id"`
	OrderNumber      string     `db:"order_number"`
	UserId           int64      `db:"user_id"`
	AddressId        int64      `db:"address_id"`
	SubtotalCents    int64      `db:"subtotal_cents"`
	DeliveryFeeCents int64      `db:"delivery_fee_cents"`
	TotalCents       int64      `db:"total_cents"`
	Status           string     `db:"status"`
	PaymentMethod    string     `db:"payment_method"`
	PaymentStatus    string     `db:"payment_status"`
	Notes            string     `db:"notes"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeliveredAt      *time.Time `db:"delivered_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	method, err := order.ParsePaymentMethod(o.PaymentMethod)
	if err != nil {
		return nil, err
	}
	payStatus, err := order.ParsePaymentStatus(o.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:               o.Id,
		OrderNumber:      o.OrderNumber,
		UserID:           o.UserId,
		AddressID:        o.AddressId,
		SubtotalCents:    o.SubtotalCents,
		DeliveryFeeCents: o.DeliveryFeeCents,
		TotalCents:       o.TotalCents,
		Status:           status,
		PaymentMethod:    method,
		PaymentStatus:    payStatus,
		Notes:            o.Notes,
		Items:            []order.OrderItem{}, // Populated separately
		Tracking:         []order.TrackingEntry{},
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		DeliveredAt:      o.DeliveredAt,
	}, nil
}

var orderColumns = []string{
	"id",
	"order_number",
	"user_id",
	"address_id",
	"subtotal_cents",
	"delivery_fee_cents",
	"total_cents",
	"status",
	"payment_method",
	"payment_status",
	"notes",
	"created_at",
	"updated_at",
	"delivered_at",
}

type PostgresOrderRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.OrderNumber,
		&dal.UserId,
		&dal.AddressId,
		&dal.SubtotalCents,
		&dal.DeliveryFeeCents,
		&dal.TotalCents,
		&dal.Status,
		&dal.PaymentMethod,
		&dal.PaymentStatus,
		&dal.Notes,
		&dal.CreatedAt,
		&dal.UpdatedAt,
		&dal.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert persists a new order row and returns it with the generated ID.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := sq.Insert("orders").
		Columns(
			"order_number",
			"user_id",
			"address_id",
			"subtotal_cents",
			"delivery_fee_cents",
			"total_cents",
			"status",
			"payment_method",
			"payment_status",
			"notes",
			"created_at",
			"updated_at",
		).
		Values(
			o.OrderNumber,
			o.UserID,
			o.AddressID,
			o.SubtotalCents,
			o.DeliveryFeeCents,
			o.TotalCents,
			o.Status,
			o.PaymentMethod,
			o.PaymentStatus,
			o.Notes,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}

	return o, nil
}

// InsertItems persists the order line items.
func (r *PostgresOrderRepository) InsertItems(ctx context.Context, items []order.OrderItem) ([]order.OrderItem, error) {
	if len(items) == 0 {
		return []order.OrderItem{}, nil
	}

	builder := sq.Insert("order_items").
		Columns("order_id", "product_id", "product_name", "quantity", "unit_price_cents").
		PlaceholderFormat(sq.Dollar)
	for _, item := range items {
		builder = builder.Values(item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPriceCents)
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order items: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if err := rows.Scan(&items[i].ID); err != nil {
			return nil, fmt.Errorf("failed to scan order item id: %w", err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

// AppendTracking appends one entry to the order's status history. Entries
// are never updated or removed.
func (r *PostgresOrderRepository) AppendTracking(ctx context.Context, orderID int64, entry order.TrackingEntry) error {
	query, args, err := sq.Insert("order_tracking").
		Columns("order_id", "status", "created_at").
		Values(orderID, entry.Status, entry.Timestamp).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append tracking entry: %w", err)
	}

	return nil
}

// GetByID retrieves one order with its items and tracking history.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByNumber retrieves one order by its human-facing order number.
func (r *PostgresOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.getOne(ctx, sq.Eq{"order_number": number})
}

func (r *PostgresOrderRepository) getOne(ctx context.Context, where sq.Eq) (*order.Order, error) {
	query, args, err := sq.Select(orderColumns...).
		From("orders").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	o, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.ErrOrderNotFound
		}

		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	if err := r.loadTracking(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *PostgresOrderRepository) loadItems(ctx context.Context, o *order.Order) error {
	query, args, err := sq.Select("id", "order_id", "product_id", "product_name", "quantity", "unit_price_cents").
		From("order_items").
		Where(sq.Eq{"order_id": o.ID}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item order.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPriceCents)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}

	return rows.Err()
}

func (r *PostgresOrderRepository) loadTracking(ctx context.Context, o *order.Order) error {
	query, args, err := sq.Select("status", "created_at").
		From("order_tracking").
		Where(sq.Eq{"order_id": o.ID}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query tracking entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		var entry order.TrackingEntry
		if err := rows.Scan(&raw, &entry.Timestamp); err != nil {
			return fmt.Errorf("failed to scan tracking entry: %w", err)
		}
		status, err := order.ParseStatus(raw)
		if err != nil {
			return err
		}
		entry.Status = status
		o.Tracking = append(o.Tracking, entry)
	}

	return rows.Err()
}

// Query retrieves orders based on filter criteria. Items and tracking are
// loaded per order.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.UserIds) > 0 {
		builder = builder.Where(sq.Eq{"user_id": filter.UserIds})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(sq.Eq{"status": filter.Statuses})
	}
	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(sq.LtOrEq{"created_at": *filter.To})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	for i := range result {
		if err := r.loadItems(ctx, &result[i]); err != nil {
			return nil, err
		}
		if err := r.loadTracking(ctx, &result[i]); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Update persists the mutable fields of an existing order. Identity, items
// and the tracking log are immutable here; tracking grows only through
// AppendTracking.
func (r *PostgresOrderRepository) Update(ctx context.Context, o *order.Order) error {
	query, args, err := sq.Update("orders").
		Set("address_id", o.AddressID).
		Set("subtotal_cents", o.SubtotalCents).
		Set("delivery_fee_cents", o.DeliveryFeeCents).
		Set("total_cents", o.TotalCents).
		Set("status", o.Status).
		Set("payment_status", o.PaymentStatus).
		Set("notes", o.Notes).
		Set("updated_at", o.UpdatedAt).
		Set("delivered_at", o.DeliveredAt).
		Where(sq.Eq{"id": o.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrOrderNotFound
	}

	return nil
}

// Delete hard-removes an order with its items and tracking log. No
// tombstone is kept.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) error {
	for _, table := range []string{"order_tracking", "order_items"} {
		query, args, err := sq.Delete(table).
			Where(sq.Eq{"order_id": id}).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete query: %w", err)
		}
		if _, err := r.conn.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to delete order children: %w", err)
		}
	}

	query, args, err := sq.Delete("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrOrderNotFound
	}

	return nil
}

// NumberExists reports whether an order number is already taken.
func (r *PostgresOrderRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	query, args, err := sq.Select("1").
		From("orders").
		Where(sq.Eq{"order_number": number}).
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
		return false, fmt.Errorf("failed to check order number: %w", err)
	}

	return true, nil
}
