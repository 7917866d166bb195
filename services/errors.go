package services

import (
	"errors"
	"fmt"
)

// Sentinel errors carry the user-facing message; controllers map them
// onto HTTP statuses.
var (
	ErrProductsRequired        = errors.New("Products are required")
	ErrShippingAddressRequired = errors.New("Shipping address is required")
	ErrInvalidQuantity         = errors.New("Quantity must be at least 1")
	ErrInvalidPaymentMethod    = errors.New("Invalid payment method")
	ErrCODDisabled             = errors.New("Cash on delivery is currently disabled")
	ErrOnlinePaymentDisabled   = errors.New("Online payment is currently disabled")
	ErrInvalidOrderID          = errors.New("Invalid order ID")
	ErrInvalidOrderStatus      = errors.New("Invalid order status")
	ErrOrderNotFound           = errors.New("Order not found")
	ErrPaymentNotConfigured    = errors.New("Payment gateway is not configured")
	// Deliberately generic: no detail about why verification failed.
	ErrPaymentVerification = errors.New("Payment verification failed")
)

type ProductUnavailableError struct {
	Ref string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("Product %s not found or inactive", e.Ref)
}

type InsufficientStockError struct {
	Name string
}

func (e *InsufficientStockError) Error() string {
	return "Insufficient stock for " + e.Name
}

type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Cannot change status from %q to %q", e.From, e.To)
}

// IsBusinessError reports whether err is a validation or business-rule
// failure that should surface as a 400 rather than a 500.
func IsBusinessError(err error) bool {
	for _, sentinel := range []error{
		ErrProductsRequired,
		ErrShippingAddressRequired,
		ErrInvalidQuantity,
		ErrInvalidPaymentMethod,
		ErrCODDisabled,
		ErrOnlinePaymentDisabled,
		ErrInvalidOrderID,
		ErrInvalidOrderStatus,
		ErrPaymentVerification,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	var unavailable *ProductUnavailableError
	var stock *InsufficientStockError
	var transition *InvalidTransitionError
	return errors.As(err, &unavailable) || errors.As(err, &stock) || errors.As(err, &transition)
}
