package iordernumrepo

import "context"

// IOrderNumberRepository allocates order-number sequence values. The
// sequence is the store's atomic counter; two concurrent calls never observe
// the same value.
type IOrderNumberRepository interface {
	NextVal(ctx context.Context) (int64, error)
}
