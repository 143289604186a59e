package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/iaddressrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/icartrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/iinventoryrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/iordernumrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/iorderrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/interfaces/ioutboxrepo"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/postgres"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/uow"
	addressrepo "github.com/divineshedrack33220/pulse-parcel/internal/dal/repositories/address/postgres"
	"github.com/divineshedrack33220/pulse-parcel/internal/notifier"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
)

const (
	orderNumberAttempts   = 3
	orderNumberRetryDelay = 50 * time.Millisecond
)

// OrderService is a service for managing the order lifecycle.
type OrderService struct {
	pgClient    *postgres.Client
	newUOW      func() unitOfWork
	addressRepo iaddressrepo.IAddressRepository
	dispatcher  notifier.Dispatcher
}

// unitOfWork shares one transaction between the repositories of a single
// business operation.
type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	InventoryRepository() iinventoryrepo.IInventoryRepository
	CartRepository() icartrepo.ICartRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
	OrderNumberRepository() iordernumrepo.IOrderNumberRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.dispatcher == nil {
		panic("ordersvc: notification dispatcher is required")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
		s.addressRepo = addressrepo.NewPostgresAddressRepository(pgClient.Pool())
	}
}

// WithDispatcher sets the notification dispatcher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDispatcher(dispatcher notifier.Dispatcher) option {
	return func(s *OrderService) {
		s.dispatcher = dispatcher
	}
}

// WithUnitOfWorkFactory overrides the unit-of-work factory.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// WithAddressRepository overrides the address repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAddressRepository(repo iaddressrepo.IAddressRepository) option {
	return func(s *OrderService) {
		s.addressRepo = repo
	}
}

// nextOrderNumber allocates a unique order number. The sequence behind
// NextVal is atomic, so collisions only occur on databases restored from
// partial dumps; the uniqueness re-check with a bounded retry covers that
// case.
func (s *OrderService) nextOrderNumber(ctx context.Context, work unitOfWork) (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(orderNumberRetryDelay)
		}

		val, err := work.OrderNumberRepository().NextVal(ctx)
		if err != nil {
			return "", err
		}

		candidate := FormatOrderNumber(val)
		exists, err := work.OrderRepository().NumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", apperror.ErrOrderNumberExhausted
}

// FormatOrderNumber renders a sequence value as the human-facing order
// number, e.g. ORD-000123.
func FormatOrderNumber(val int64) string {
	return fmt.Sprintf("ORD-%06d", val)
}
