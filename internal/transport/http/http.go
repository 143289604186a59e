package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/subscription"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/services/ordersvc"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/middleware/identity"
	createorder "github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/create_order"
	deleteorder "github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/delete_order"
	getorder "github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/get_order"
	listorders "github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/list_orders"
	repairorder "github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/repair_order"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/subscriptions"
	trackorder "github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/track_order"
	updatepayment "github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/update_payment"
	updatestatus "github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/update_status"
	"github.com/divineshedrack33220/pulse-parcel/pkg/http/middleware/trace"
	"github.com/divineshedrack33220/pulse-parcel/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type orderService interface {
	CreateOrder(ctx context.Context, who actor.Actor, model ordersvc.CreateOrderModel) (*order.Order, error)
	GetOrder(ctx context.Context, who actor.Actor, orderID int64) (*order.Order, error)
	GetOrders(ctx context.Context, who actor.Actor, filter order.QueryOrdersModel) ([]order.Order, error)
	TrackByNumber(ctx context.Context, who actor.Actor, number string) (*order.Order, error)
	UpdateStatus(ctx context.Context, who actor.Actor, orderID int64, newStatus string) (*order.Order, error)
	UpdatePaymentStatus(ctx context.Context, who actor.Actor, orderID int64, newPaymentStatus string) (*order.Order, error)
	RepairOrder(ctx context.Context, who actor.Actor, orderID int64) (*order.Order, error)
	DeleteOrder(ctx context.Context, who actor.Actor, orderID int64) error
}

type pushService interface {
	Subscribe(ctx context.Context, who actor.Actor, endpoint, authKey, p256dhKey string) (*subscription.Subscription, error)
	Unsubscribe(ctx context.Context, who actor.Actor, id int64) error
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	orderSvc orderService
	pushSvc  pushService
}

func NewHTTPTransport(orderSvc orderService, pushSvc pushService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		orderSvc: orderSvc,
		pushSvc:  pushSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Use(identity.NewIdentityMiddleware)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.createOrder)
			r.Get("/", h.listOrders)
			r.Get("/track/{orderNumber}", h.trackOrder)
			r.Get("/{orderID}", h.getOrder)
		})

		r.Route("/admin/orders/{orderID}", func(r chi.Router) {
			r.Patch("/status", h.updateStatus)
			r.Patch("/payment-status", h.updatePayment)
			r.Post("/repair", h.repairOrder)
			r.Delete("/", h.deleteOrder)
		})

		r.Route("/push/subscriptions", func(r chi.Router) {
			r.Post("/", h.subscribe)
			r.Delete("/{subscriptionID}", h.unsubscribe)
		})
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) trackOrder(w http.ResponseWriter, r *http.Request) {
	trackorder.TrackOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.orderSvc)
}

func (h *HTTPTransport) updatePayment(w http.ResponseWriter, r *http.Request) {
	updatepayment.UpdatePayment(w, r, h.orderSvc)
}

func (h *HTTPTransport) repairOrder(w http.ResponseWriter, r *http.Request) {
	repairorder.RepairOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) subscribe(w http.ResponseWriter, r *http.Request) {
	subscriptions.Subscribe(w, r, h.pushSvc)
}

func (h *HTTPTransport) unsubscribe(w http.ResponseWriter, r *http.Request) {
	subscriptions.Unsubscribe(w, r, h.pushSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
