package port

import (
	"context"

	"shoporder/internal/core/domain"
)

// EventPublisher announces committed orders to downstream consumers.
// Implementations must not block placement; a lost event never affects
// durable state.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order domain.Order)
}
