package uow

import (
	"context"

	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/icartrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/iinventoryrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/iordernumrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/iorderrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/ioutboxrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/postgres"
	cartrepo "github.com/divineshedrack33220/pulse-parcel/internal/dal/repositories/cart/postgres"
	inventoryrepo "github.com/divineshedrack33220/pulse-parcel/internal/dal/repositories/inventory/postgres"
	ordernumrepo "github.com/divineshedrack33220/pulse-parcel/internal/dal/repositories/ordernumber/postgres"
	orderrepo "github.com/divineshedrack33220/pulse-parcel/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/divineshedrack33220/pulse-parcel/internal/dal/repositories/outbox/postgres"
	"github.com/jackc/pgx/v5"
)

// unitOfWork shares one transaction between the repositories touched by a
// single business operation. Stock decrement, order persistence, cart clear
// and the outbox insert either all commit or all roll back; a failure after
// the stock decrement cannot leave a dangling reservation.
type unitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	orderRepo     iorderrepo.IOrderRepository
	inventoryRepo iinventoryrepo.IInventoryRepository
	cartRepo      icartrepo.ICartRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
	orderNumRepo  iordernumrepo.IOrderNumberRepository
}

// NewUnitOfWork creates a unit of work. Until Begin is called the
// repositories run directly on the pool.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	u := &unitOfWork{client: client}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.Querier) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.inventoryRepo = inventoryrepo.NewPostgresInventoryRepository(conn)
	u.cartRepo = cartrepo.NewPostgresCartRepository(conn)
	u.outboxRepo = outboxrepo.NewOutboxRepository(conn)
	u.orderNumRepo = ordernumrepo.NewPostgresOrderNumberRepository(conn)
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) InventoryRepository() iinventoryrepo.IInventoryRepository {
	return u.inventoryRepo
}

func (u *unitOfWork) CartRepository() icartrepo.ICartRepository {
	return u.cartRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func (u *unitOfWork) OrderNumberRepository() iordernumrepo.IOrderNumberRepository {
	return u.orderNumRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
