package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/services/ordersvc"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/middleware/identity"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, who actor.Actor, model ordersvc.CreateOrderModel) (*order.Order, error)
}

type createOrderRequest struct {
	AddressID     int64             `json:"addressId"`
	PaymentMethod string            `json:"paymentMethod"`
	Notes         string            `json:"notes,omitempty"`
	Items         []createOrderItem `json:"items,omitempty"`
}

type createOrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (req *createOrderRequest) ToModel() ordersvc.CreateOrderModel {
	model := ordersvc.CreateOrderModel{
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		model.Items = append(model.Items, ordersvc.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return model
}

// CreateOrder handles the order creation request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	who, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)

		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	created, err := service.CreateOrder(r.Context(), who, req.ToModel())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}
