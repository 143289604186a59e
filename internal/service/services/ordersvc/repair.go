package ordersvc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/divineshedrack33220/pulse-parcel/internal/notifier"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
)

// RepairOrder restores the derived fields of a partially-migrated order
// record: subtotal and total are recomputed from the item snapshots, and an
// order referencing a missing address is pointed at the owner's first
// available one. This is an explicit administrator operation; the status
// transition path fails cleanly on corrupt records instead of patching them
// inline.
func (s *OrderService) RepairOrder(ctx context.Context, who actor.Actor, orderID int64) (*order.Order, error) {
	if !who.IsAdmin {
		return nil, apperror.ErrForbidden
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := work.Rollback(ctx); rbErr != nil {
				slog.Error("Failed to rollback order repair", "error", rbErr)
			}
		}
	}()

	o, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	repaired := false

	subtotal := order.Subtotal(o.Items)
	total := subtotal + o.DeliveryFeeCents
	if o.SubtotalCents != subtotal || o.TotalCents != total {
		o.SubtotalCents = subtotal
		o.TotalCents = total
		repaired = true
	}

	if _, err := s.addressRepo.GetByID(ctx, o.AddressID); err != nil {
		if !errors.Is(err, apperror.ErrAddressNotFound) {
			return nil, err
		}

		fallback, err := s.addressRepo.FirstByUser(ctx, o.UserID)
		if err != nil {
			return nil, err
		}
		o.AddressID = fallback.ID
		repaired = true
	}

	if !repaired {
		return o, nil
	}

	o.UpdatedAt = time.Now()
	if err := work.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	slog.Info("Order repaired",
		"order_id", o.ID,
		"order_number", o.OrderNumber,
		"subtotal_cents", o.SubtotalCents,
		"total_cents", o.TotalCents,
		"address_id", o.AddressID,
	)

	s.dispatch(ctx, notifier.NewEvent(notifier.EventOrderRepaired, *o))

	return o, nil
}
