package listorders

import (
	"context"
	"net/http"
	"time"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/middleware/identity"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/respond"
	"github.com/gorilla/schema"
)

type service interface {
	GetOrders(ctx context.Context, who actor.Actor, filter order.QueryOrdersModel) ([]order.Order, error)
}

type queryOrdersRequest struct {
	Ids      []int64  `schema:"ids,omitempty"`
	UserIds  []int64  `schema:"userIds,omitempty"`
	Statuses []string `schema:"statuses,omitempty"`
	From     string   `schema:"from,omitempty"`
	To       string   `schema:"to,omitempty"`
	Page     int      `schema:"page,omitempty"`
	Limit    int      `schema:"limit,omitempty"`
}

func (q *queryOrdersRequest) ToModel() (order.QueryOrdersModel, error) {
	model := order.QueryOrdersModel{
		Ids:     q.Ids,
		UserIds: q.UserIds,
		Limit:   q.Limit,
	}

	for _, raw := range q.Statuses {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return order.QueryOrdersModel{}, err
		}
		model.Statuses = append(model.Statuses, status)
	}

	if q.From != "" {
		from, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			return order.QueryOrdersModel{}, err
		}
		model.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			return order.QueryOrdersModel{}, err
		}
		model.To = &to
	}

	if q.Page > 1 && q.Limit > 0 {
		model.Offset = (q.Page - 1) * q.Limit
	}

	return model, nil
}

// ListOrders handles the order listing request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	who, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)

		return
	}

	decoder := schema.NewDecoder()
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	filter, err := query.ToModel()
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	orders, err := service.GetOrders(r.Context(), who, filter)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, orders)
}
