package iaddressrepo

import (
	"context"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/address"
)

// IAddressRepository is the read-only address contract the order core
// consumes.
type IAddressRepository interface {
	GetByID(ctx context.Context, id int64) (*address.Address, error)
	FirstByUser(ctx context.Context, userID int64) (*address.Address, error)
}
