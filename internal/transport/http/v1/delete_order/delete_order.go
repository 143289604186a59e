package deleteorder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/middleware/identity"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/respond"
	"github.com/go-chi/chi/v5"
)

type service interface {
	DeleteOrder(ctx context.Context, who actor.Actor, orderID int64) error
}

// DeleteOrder handles the hard-delete request.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	who, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)

		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	if err := service.DeleteOrder(r.Context(), who, orderID); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusNoContent, nil)
}
