package subscription

import "time"

// Subscription is a durable push endpoint registered by a user. Delivery is
// best effort; an endpoint that rejects a delivery is purged.
type Subscription struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Endpoint  string    `json:"endpoint"`
	AuthKey   string    `json:"authKey"`
	P256dhKey string    `json:"p256dhKey"`
	CreatedAt time.Time `json:"createdAt"`
}
