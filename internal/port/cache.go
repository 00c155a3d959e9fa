package port

import (
	"context"

	"shoporder/internal/core/domain"
)

// CacheRepository caches committed orders for read-back. Orders are immutable
// after commit, so a cached copy never goes stale.
type CacheRepository interface {
	// GetOrder returns nil on cache miss.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)

	SetOrder(ctx context.Context, order domain.Order) error
}
