package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/divineshedrack33220/pulse-parcel/internal/dal/postgres"
	"github.com/divineshedrack33220/pulse-parcel/internal/dal/rabbitmq"
	outboxrepo "github.com/divineshedrack33220/pulse-parcel/internal/dal/repositories/outbox/postgres"
	subscriptionrepo "github.com/divineshedrack33220/pulse-parcel/internal/dal/repositories/subscription/postgres"
	"github.com/divineshedrack33220/pulse-parcel/internal/notifier"
	"github.com/divineshedrack33220/pulse-parcel/internal/otel"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/services/ordersvc"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/services/pushsvc"
	httptransport "github.com/divineshedrack33220/pulse-parcel/internal/transport/http"
	outboxworker "github.com/divineshedrack33220/pulse-parcel/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	pushSvc        *pushsvc.PushService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	outboxWorker   *outboxworker.Worker
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	subRepo := subscriptionrepo.NewPostgresSubscriptionRepository(postgresClient.Pool())
	outboxRepo := outboxrepo.NewOutboxRepository(postgresClient.Pool())

	dispatcher := notifier.NewAMQPDispatcher(rabbitClient, subRepo, outboxRepo)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithDispatcher(dispatcher),
	)

	pushSvc := pushsvc.MustNewPushService(
		pushsvc.WithPostgresClient(postgresClient),
	)

	outboxWorker := outboxworker.NewWorker(outboxRepo, rabbitClient)

	transport := httptransport.NewHTTPTransport(orderSvc, pushSvc)
	transport.RegisterRoutes()

	return &App{
		orderSvc:       orderSvc,
		pushSvc:        pushSvc,
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		outboxWorker:   outboxWorker,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	cancelWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
