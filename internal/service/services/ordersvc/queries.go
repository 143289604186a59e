package ordersvc

import (
	"context"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
)

// GetOrder retrieves one order. Admins see every order; users only their
// own.
func (s *OrderService) GetOrder(ctx context.Context, who actor.Actor, orderID int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !who.CanAccessOrderOf(o.UserID) {
		return nil, apperror.ErrForbidden
	}

	return o, nil
}

// TrackByNumber retrieves one order by its human-facing number, with the
// same access rules as GetOrder.
func (s *OrderService) TrackByNumber(ctx context.Context, who actor.Actor, number string) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if !who.CanAccessOrderOf(o.UserID) {
		return nil, apperror.ErrForbidden
	}

	return o, nil
}

// GetOrders retrieves orders matching the filter. Non-admin callers are
// scoped to their own orders regardless of the requested filter.
func (s *OrderService) GetOrders(
	ctx context.Context,
	who actor.Actor,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	if !who.IsAdmin {
		filter.UserIds = []int64{who.UserID}
	}

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	return orders, nil
}
