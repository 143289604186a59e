package apperror

// Error is a domain error with a machine-readable code. The transport layer
// maps codes to HTTP status classes; messages are safe to show to callers.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a new domain error.
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Standard error codes for API responses.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeForbidden            = "FORBIDDEN"
	CodeInsufficientStock    = "INSUFFICIENT_STOCK"
	CodeOrderNumberExhausted = "ORDER_NUMBER_EXHAUSTED"
	CodeDeliveryFailed       = "DELIVERY_FAILED"
	CodeInternalError        = "INTERNAL_ERROR"
)

// Common domain errors.
var (
	ErrOrderNotFound        = New(CodeNotFound, "Order not found")
	ErrAddressNotFound      = New(CodeNotFound, "Delivery address not found")
	ErrProductNotFound      = New(CodeNotFound, "One or more products not found")
	ErrSubscriptionNotFound = New(CodeNotFound, "Push subscription not found")
	ErrForbidden            = New(CodeForbidden, "You are not allowed to perform this action")
	ErrInsufficientStock    = New(CodeInsufficientStock, "Not enough stock to fulfil the order")
	ErrOrderNumberExhausted = New(CodeOrderNumberExhausted, "Could not allocate a unique order number")
	ErrDeliveryFailed       = New(CodeDeliveryFailed, "Notification delivery failed")

	ErrEmptyOrder           = New(CodeValidation, "Order must contain at least one item")
	ErrInvalidQuantity      = New(CodeValidation, "Quantity must be greater than zero")
	ErrInvalidStatus        = New(CodeValidation, "Unrecognised order status")
	ErrInvalidPaymentStatus = New(CodeValidation, "Unrecognised payment status")
	ErrInvalidPaymentMethod = New(CodeValidation, "Unrecognised payment method")
	ErrInvalidAddress       = New(CodeValidation, "Address must have state and country set")
)

// ErrorResponse is the standardised HTTP error payload.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}
