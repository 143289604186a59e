package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"Placed", "Packed", "In Transit", "Delivered", "Cancelled"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	for _, invalid := range []string{"", "placed", "Shipped", "DELIVERED"} {
		_, err := ParseStatus(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"placed to packed", StatusPlaced, StatusPacked, true},
		{"packed to in transit", StatusPacked, StatusInTransit, true},
		{"in transit to delivered", StatusInTransit, StatusDelivered, true},
		{"forward jump placed to delivered", StatusPlaced, StatusDelivered, true},
		{"forward jump placed to in transit", StatusPlaced, StatusInTransit, true},
		{"cancel placed", StatusPlaced, StatusCancelled, true},
		{"cancel packed", StatusPacked, StatusCancelled, true},
		{"cancel in transit", StatusInTransit, StatusCancelled, true},
		{"reapply current status", StatusPacked, StatusPacked, true},
		{"reapply terminal status", StatusDelivered, StatusDelivered, true},

		{"backward packed to placed", StatusPacked, StatusPlaced, false},
		{"backward delivered to placed", StatusDelivered, StatusPlaced, false},
		{"out of delivered", StatusDelivered, StatusCancelled, false},
		{"out of cancelled", StatusCancelled, StatusPlaced, false},
		{"cancelled cannot be delivered", StatusCancelled, StatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPlaced.Terminal())
	assert.False(t, StatusPacked.Terminal())
	assert.False(t, StatusInTransit.Terminal())
}

func TestParsePaymentStatus(t *testing.T) {
	for _, valid := range []string{"pending", "completed", "failed"} {
		status, err := ParsePaymentStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	_, err := ParsePaymentStatus("Pending")
	assert.Error(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	for _, valid := range []string{"Pay on Delivery", "Card Payment", "Bank Transfer", "Paystack"} {
		method, err := ParsePaymentMethod(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, method.String())
	}

	_, err := ParsePaymentMethod("Cash")
	assert.Error(t, err)
}

func TestSubtotal(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2, UnitPriceCents: 1000},
		{Quantity: 1, UnitPriceCents: 500},
	}
	assert.Equal(t, int64(2500), Subtotal(items))
	assert.Equal(t, int64(0), Subtotal(nil))
}

func TestCurrentTrackingStatus(t *testing.T) {
	o := &Order{}
	assert.Equal(t, Status(""), o.CurrentTrackingStatus())

	o.Tracking = []TrackingEntry{
		{Status: StatusPlaced},
		{Status: StatusPacked},
	}
	assert.Equal(t, StatusPacked, o.CurrentTrackingStatus())
}
