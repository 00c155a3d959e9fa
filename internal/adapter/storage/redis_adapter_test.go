package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"shoporder/internal/core/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestOrderCache_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	order := domain.Order{
		ID:           "cache-test-order",
		CustomerName: "Alice",
		OrderDate:    time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		TotalPrice:   decimal.RequireFromString("30.00"),
		Items: []domain.OrderItem{
			{
				ProductID: "product-a",
				Quantity:  3,
				Price:     decimal.RequireFromString("10.00"),
				Subtotal:  decimal.RequireFromString("30.00"),
			},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	client.Del(ctx, orderKeyPrefix+order.ID)

	if err := adapter.SetOrder(ctx, order); err != nil {
		t.Fatalf("SetOrder failed: %v", err)
	}

	got, err := adapter.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected cached order, got nil")
	}

	if got.ID != order.ID {
		t.Errorf("expected id %s, got %s", order.ID, got.ID)
	}
	if got.CustomerName != order.CustomerName {
		t.Errorf("expected customer %s, got %s", order.CustomerName, got.CustomerName)
	}
	if !got.TotalPrice.Equal(order.TotalPrice) {
		t.Errorf("expected total %s, got %s", order.TotalPrice, got.TotalPrice)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	if !got.Items[0].Price.Equal(order.Items[0].Price) {
		t.Errorf("expected item price %s, got %s", order.Items[0].Price, got.Items[0].Price)
	}

	// Cleanup
	client.Del(ctx, orderKeyPrefix+order.ID)
}

func TestOrderCache_Miss(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, orderKeyPrefix+"no-such-order")

	got, err := adapter.GetOrder(ctx, "no-such-order")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected nil on cache miss")
	}
}
