package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shoporder/internal/core/domain"
)

const (
	orderKeyPrefix = "order:"
	orderCacheTTL  = 5 * time.Minute
)

// RedisAdapter caches committed orders for read-back. Redis is never
// authoritative for stock; only the store's transaction prevents overselling.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	data, err := r.client.Get(ctx, orderKeyPrefix+orderID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("decode cached order: %w", err)
	}
	return &order, nil
}

func (r *RedisAdapter) SetOrder(ctx context.Context, order domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	return r.client.Set(ctx, orderKeyPrefix+order.ID, data, orderCacheTTL).Err()
}
