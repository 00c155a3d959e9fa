package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID           string
	CustomerName string
	OrderDate    time.Time
	TotalPrice   decimal.Decimal
	Items        []OrderItem
	CreatedAt    time.Time
}

// OrderItem carries the unit price captured at placement time; later catalog
// price changes never touch it.
type OrderItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Subtotal  decimal.Decimal
}

// LineItem is a single (product, quantity) pair in an order request.
type LineItem struct {
	ProductID string
	Quantity  int
}

type PlaceOrderRequest struct {
	CustomerName string
	OrderDate    time.Time
	Items        []LineItem
}

// Validate rejects malformed requests before any transaction is opened.
func (r PlaceOrderRequest) Validate() error {
	if r.CustomerName == "" {
		return fmt.Errorf("%w: customer_name is required", ErrInvalidOrder)
	}
	if r.OrderDate.IsZero() {
		return fmt.Errorf("%w: order_date is required", ErrInvalidOrder)
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: items must not be empty", ErrInvalidOrder)
	}
	for i, item := range r.Items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: items[%d].product_id is required", ErrInvalidOrder, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: items[%d].quantity must be at least 1", ErrInvalidOrder, i)
		}
	}
	return nil
}
