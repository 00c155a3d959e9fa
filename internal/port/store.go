package port

import (
	"context"

	"shoporder/internal/core/domain"
)

// OrderTx exposes the operations valid inside one transactional scope: the
// inventory ledger plus the order writes. Calls observe the scope's
// uncommitted state; the scope commits or rolls back as a whole.
type OrderTx interface {
	// GetProduct reads current price and stock, nil when the product does not exist.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// DecrementStock reduces stock by quantity only if enough is available,
	// returns false and leaves stock untouched otherwise. The check and the
	// decrement are indivisible with respect to concurrent decrements.
	DecrementStock(ctx context.Context, productID string, quantity int) (bool, error)

	// InsertOrder persists the order together with all of its items.
	InsertOrder(ctx context.Context, order domain.Order) error
}

type Store interface {
	// InTx runs fn inside a single transaction. A non-nil error from fn rolls
	// back every write fn made; nil commits them.
	InTx(ctx context.Context, fn func(tx OrderTx) error) error

	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
