package icartrepo

import (
	"context"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/cart"
)

// ICartRepository supplies the cart contents at creation time and clears
// them once the order is persisted.
type ICartRepository interface {
	GetByUser(ctx context.Context, userID int64) ([]cart.Item, error)
	Clear(ctx context.Context, userID int64) error
}
