package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/divineshedrack33220/pulse-parcel/internal/notifier"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
)

// UpdateStatus applies a lifecycle transition. Administrator-only. The
// lifecycle is strictly forward (Placed -> Packed -> In Transit ->
// Delivered) with Cancelled reachable from any non-terminal state;
// transitions out of Delivered or Cancelled are rejected. Re-applying the
// current status is an idempotent no-op: no tracking entry is appended, but
// the order is persisted and re-broadcast.
func (s *OrderService) UpdateStatus(
	ctx context.Context,
	who actor.Actor,
	orderID int64,
	newStatus string,
) (*order.Order, error) {
	if !who.IsAdmin {
		return nil, apperror.ErrForbidden
	}

	status, err := order.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := work.Rollback(ctx); rbErr != nil {
				slog.Error("Failed to rollback status update", "error", rbErr)
			}
		}
	}()

	o, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.CanTransition(o.Status, status) {
		return nil, apperror.ErrInvalidStatus
	}

	now := time.Now()
	changed := o.Status != status

	o.UpdatedAt = now
	if changed {
		o.Status = status
		if status == order.StatusDelivered {
			o.DeliveredAt = &now
		}
	}

	if err := work.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if changed {
		entry := order.TrackingEntry{Status: status, Timestamp: now}
		if err := work.OrderRepository().AppendTracking(ctx, o.ID, entry); err != nil {
			return nil, err
		}
		o.Tracking = append(o.Tracking, entry)
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	slog.Info("Order status updated",
		"order_id", o.ID,
		"order_number", o.OrderNumber,
		"status", o.Status,
		"changed", changed,
	)

	s.dispatch(ctx, notifier.NewEvent(notifier.EventOrderStatusUpdated, *o))

	return o, nil
}

// UpdatePaymentStatus moves the payment axis. Administrator-only,
// independent of the lifecycle: it never appends tracking and never touches
// Status.
func (s *OrderService) UpdatePaymentStatus(
	ctx context.Context,
	who actor.Actor,
	orderID int64,
	newPaymentStatus string,
) (*order.Order, error) {
	if !who.IsAdmin {
		return nil, apperror.ErrForbidden
	}

	payStatus, err := order.ParsePaymentStatus(newPaymentStatus)
	if err != nil {
		return nil, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := work.Rollback(ctx); rbErr != nil {
				slog.Error("Failed to rollback payment status update", "error", rbErr)
			}
		}
	}()

	o, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	o.PaymentStatus = payStatus
	o.UpdatedAt = time.Now()

	if err := work.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	slog.Info("Order payment status updated",
		"order_id", o.ID,
		"payment_status", o.PaymentStatus,
	)

	s.dispatch(ctx, notifier.NewEvent(notifier.EventOrderPaymentUpdated, *o))

	return o, nil
}

// DeleteOrder hard-removes an order. Administrator-only; no tombstone.
func (s *OrderService) DeleteOrder(ctx context.Context, who actor.Actor, orderID int64) error {
	if !who.IsAdmin {
		return apperror.ErrForbidden
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := work.Rollback(ctx); rbErr != nil {
				slog.Error("Failed to rollback order delete", "error", rbErr)
			}
		}
	}()

	o, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := work.OrderRepository().Delete(ctx, orderID); err != nil {
		return err
	}

	if err := work.Commit(ctx); err != nil {
		return err
	}
	committed = true

	slog.Info("Order deleted", "order_id", orderID, "order_number", o.OrderNumber)

	s.dispatch(ctx, notifier.NewEvent(notifier.EventOrderDeleted, *o))

	return nil
}
