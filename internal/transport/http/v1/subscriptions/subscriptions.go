package subscriptions

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/subscription"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/middleware/identity"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/v1/respond"
	"github.com/go-chi/chi/v5"
)

type service interface {
	Subscribe(ctx context.Context, who actor.Actor, endpoint, authKey, p256dhKey string) (*subscription.Subscription, error)
	Unsubscribe(ctx context.Context, who actor.Actor, id int64) error
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		Auth   string `json:"auth"`
		P256dh string `json:"p256dh"`
	} `json:"keys"`
}

// Subscribe handles push-endpoint registration.
func Subscribe(w http.ResponseWriter, r *http.Request, service service) {
	who, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)

		return
	}

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for subscribe", "error", err)

		return
	}

	sub, err := service.Subscribe(r.Context(), who, req.Endpoint, req.Keys.Auth, req.Keys.P256dh)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, sub)
}

// Unsubscribe handles push-endpoint removal.
func Unsubscribe(w http.ResponseWriter, r *http.Request, service service) {
	who, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)

		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "subscriptionID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid subscription id", http.StatusBadRequest)

		return
	}

	if err := service.Unsubscribe(r.Context(), who, id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusNoContent, nil)
}
