package order

import (
	"time"
)

// Order represents a customer order in the system.
type Order struct {
	ID               int64           `json:"id"`
	OrderNumber      string          `json:"orderNumber"`
	UserID           int64           `json:"userId"`
	AddressID        int64           `json:"addressId"`
	Items            []OrderItem     `json:"items"`
	SubtotalCents    int64           `json:"subtotalCents"`
	DeliveryFeeCents int64           `json:"deliveryFeeCents"`
	TotalCents       int64           `json:"totalCents"`
	Status           Status          `json:"status"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	Notes            string          `json:"notes,omitempty"`
	Tracking         []TrackingEntry `json:"tracking"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	DeliveredAt      *time.Time      `json:"deliveredAt,omitempty"`
}

// OrderItem is a line item captured at order time. UnitPriceCents is a
// snapshot of the product price at creation, not a live reference.
type OrderItem struct {
	ID             int64  `json:"id"`
	OrderID        int64  `json:"orderId"`
	ProductID      int64  `json:"productId"`
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// TrackingEntry is one record of the append-only status history.
type TrackingEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Subtotal computes the item subtotal from the captured price snapshots.
func Subtotal(items []OrderItem) int64 {
	var sum int64
	for _, item := range items {
		sum += int64(item.Quantity) * item.UnitPriceCents
	}

	return sum
}

// CurrentTrackingStatus returns the status of the last tracking entry, or the
// zero value when the log is empty.
func (o *Order) CurrentTrackingStatus() Status {
	if len(o.Tracking) == 0 {
		return ""
	}

	return o.Tracking[len(o.Tracking)-1].Status
}
