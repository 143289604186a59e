package iorderrepo

import (
	"context"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
)

// IOrderRepository is the persistence contract for orders, their items and
// the append-only tracking log.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	InsertItems(ctx context.Context, items []order.OrderItem) ([]order.OrderItem, error)
	AppendTracking(ctx context.Context, orderID int64, entry order.TrackingEntry) error
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	GetByNumber(ctx context.Context, number string) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	Update(ctx context.Context, o *order.Order) error
	Delete(ctx context.Context, id int64) error
	NumberExists(ctx context.Context, number string) (bool, error)
}
