package trackorder

import (
	"context"
	"net/http"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/middleware/identity"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/respond"
	"github.com/go-chi/chi/v5"
)

type service interface {
	TrackByNumber(ctx context.Context, who actor.Actor, number string) (*order.Order, error)
}

// TrackOrder handles the track-by-number request.
func TrackOrder(w http.ResponseWriter, r *http.Request, service service) {
	who, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)

		return
	}

	number := chi.URLParam(r, "orderNumber")
	if number == "" {
		http.Error(w, "missing order number", http.StatusBadRequest)

		return
	}

	o, err := service.TrackByNumber(r.Context(), who, number)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, o)
}
