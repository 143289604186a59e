package identity

import (
	"context"
	"net/http"
	"strconv"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
)

type contextKey struct{}

// Headers set by the upstream auth collaborator. The order core trusts them;
// it never authenticates.
const (
	HeaderUserID = "X-User-Id"
	HeaderAdmin  = "X-User-Admin"
)

// NewIdentityMiddleware extracts the caller identity from the auth headers
// and rejects requests without one.
func NewIdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		userID, err := strconv.ParseInt(rawID, 10, 64)
		if rawID == "" || err != nil {
			http.Error(w, "missing or invalid identity", http.StatusUnauthorized)

			return
		}

		who := actor.Actor{
			UserID:  userID,
			IsAdmin: r.Header.Get(HeaderAdmin) == "true",
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), who)))
	})
}

// WithActor attaches an actor to the context.
func WithActor(ctx context.Context, who actor.Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, who)
}

// FromContext returns the actor attached by the middleware.
func FromContext(ctx context.Context) (actor.Actor, bool) {
	who, ok := ctx.Value(contextKey{}).(actor.Actor)

	return who, ok
}
