package iinventoryrepo

import (
	"context"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/product"
)

// IInventoryRepository is the order core's view of the product store. The
// only write it is allowed is the atomic stock decrement.
type IInventoryRepository interface {
	GetByIds(ctx context.Context, ids []int64) ([]product.Product, error)
	// DecrementStock atomically reserves qty units and returns the remaining
	// stock. Fails with apperror.ErrInsufficientStock when stock < qty,
	// leaving the row untouched.
	DecrementStock(ctx context.Context, productID int64, qty int) (int, error)
}
