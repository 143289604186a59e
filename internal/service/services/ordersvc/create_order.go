package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/divineshedrack33220/pulse-parcel/internal/notifier"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
	"github.com/spf13/viper"
)

// CreateOrderModel carries the creation request. When Items is empty the
// user's cart supplies the lines.
type CreateOrderModel struct {
	AddressID     int64
	PaymentMethod string
	Notes         string
	Items         []CreateOrderItem
}

// CreateOrderItem is one requested line.
type CreateOrderItem struct {
	ProductID int64
	Quantity  int
}

// CreateOrder validates the request, reserves stock, assigns an order number
// and persists the order. Reservation, persistence and the cart clear share
// one transaction, so a failure anywhere releases the reservation. The
// notification fan-out runs strictly after the commit.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	who actor.Actor,
	model CreateOrderModel,
) (*order.Order, error) {
	method, err := order.ParsePaymentMethod(model.PaymentMethod)
	if err != nil {
		return nil, err
	}

	addr, err := s.addressRepo.GetByID(ctx, model.AddressID)
	if err != nil {
		return nil, err
	}
	if addr.UserID != who.UserID {
		return nil, apperror.ErrForbidden
	}
	if !addr.Deliverable() {
		return nil, apperror.ErrInvalidAddress
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := work.Rollback(ctx); rbErr != nil {
				slog.Error("Failed to rollback order creation", "error", rbErr)
			}
		}
	}()

	lines := model.Items
	if len(lines) == 0 {
		cartItems, err := work.CartRepository().GetByUser(ctx, who.UserID)
		if err != nil {
			return nil, err
		}
		for _, item := range cartItems {
			lines = append(lines, CreateOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
		}
	}
	if len(lines) == 0 {
		return nil, apperror.ErrEmptyOrder
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, apperror.ErrInvalidQuantity
		}
	}

	productIds := make([]int64, len(lines))
	for i, line := range lines {
		productIds[i] = line.ProductID
	}

	products, err := work.InventoryRepository().GetByIds(ctx, productIds)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	items := make([]order.OrderItem, 0, len(lines))
	for _, line := range lines {
		idx, ok := byID[line.ProductID]
		if !ok {
			return nil, apperror.ErrProductNotFound
		}

		if _, err := work.InventoryRepository().DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			return nil, err
		}

		items = append(items, order.OrderItem{
			ProductID:      line.ProductID,
			ProductName:    products[idx].Name,
			Quantity:       line.Quantity,
			UnitPriceCents: products[idx].PriceCents,
		})
	}

	number, err := s.nextOrderNumber(ctx, work)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	subtotal := order.Subtotal(items)
	deliveryFee := viper.GetInt64("orders.delivery_fee_cents")

	o := order.Order{
		OrderNumber:      number,
		UserID:           who.UserID,
		AddressID:        addr.ID,
		Items:            items,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: deliveryFee,
		TotalCents:       subtotal + deliveryFee,
		Status:           order.StatusPlaced,
		PaymentMethod:    method,
		PaymentStatus:    order.PaymentPending,
		Notes:            model.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	o, err = work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return nil, err
	}

	o.Items, err = work.OrderRepository().InsertItems(ctx, o.Items)
	if err != nil {
		return nil, err
	}

	entry := order.TrackingEntry{Status: order.StatusPlaced, Timestamp: now}
	if err := work.OrderRepository().AppendTracking(ctx, o.ID, entry); err != nil {
		return nil, err
	}
	o.Tracking = append(o.Tracking, entry)

	if err := work.CartRepository().Clear(ctx, who.UserID); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	slog.Info("Order created",
		"order_id", o.ID,
		"order_number", o.OrderNumber,
		"user_id", o.UserID,
		"total_cents", o.TotalCents,
	)

	s.dispatch(ctx, notifier.NewEvent(notifier.EventOrderCreated, o))

	return &o, nil
}

// dispatch fans an event out to every audience. Dispatcher implementations
// swallow delivery failures, so this never fails the business operation.
func (s *OrderService) dispatch(ctx context.Context, event notifier.Event) {
	s.dispatcher.NotifyAdmins(ctx, event)
	s.dispatcher.NotifyOwner(ctx, event)
	s.dispatcher.PushToOwner(ctx, event)
}
