package storage

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"shoporder/internal/core/domain"
	"shoporder/internal/port"
)

func TestMemoryAdapter_TxRollbackLeavesNothingBehind(t *testing.T) {
	adapter := NewMemoryAdapter()
	adapter.SeedProduct(domain.Product{ID: "item-1", Price: decimal.RequireFromString("10.00"), Stock: 5})

	ctx := context.Background()
	boom := errors.New("boom")

	err := adapter.InTx(ctx, func(tx port.OrderTx) error {
		ok, err := tx.DecrementStock(ctx, "item-1", 3)
		if err != nil || !ok {
			t.Fatalf("decrement failed: ok=%v err=%v", ok, err)
		}
		if err := tx.InsertOrder(ctx, domain.Order{ID: "order-1"}); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got: %v", err)
	}

	if stock := adapter.Stock("item-1"); stock != 5 {
		t.Errorf("expected stock rolled back to 5, got %d", stock)
	}
	if count := adapter.OrderCount(); count != 0 {
		t.Errorf("expected no orders, got %d", count)
	}
}

func TestMemoryAdapter_TxSeesOwnWrites(t *testing.T) {
	adapter := NewMemoryAdapter()
	adapter.SeedProduct(domain.Product{ID: "item-1", Price: decimal.RequireFromString("10.00"), Stock: 5})

	ctx := context.Background()

	err := adapter.InTx(ctx, func(tx port.OrderTx) error {
		if ok, _ := tx.DecrementStock(ctx, "item-1", 3); !ok {
			t.Fatal("first decrement rejected")
		}
		// Only 2 left inside this transaction.
		if ok, _ := tx.DecrementStock(ctx, "item-1", 3); ok {
			t.Fatal("second decrement should have been rejected")
		}
		p, err := tx.GetProduct(ctx, "item-1")
		if err != nil || p == nil {
			t.Fatalf("get product: p=%v err=%v", p, err)
		}
		if p.Stock != 2 {
			t.Errorf("expected in-tx stock 2, got %d", p.Stock)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("tx failed: %v", err)
	}

	if stock := adapter.Stock("item-1"); stock != 2 {
		t.Errorf("expected committed stock 2, got %d", stock)
	}
}

func TestMemoryAdapter_DecrementBoundaries(t *testing.T) {
	adapter := NewMemoryAdapter()
	adapter.SeedProduct(domain.Product{ID: "item-1", Price: decimal.RequireFromString("1.00"), Stock: 2})

	ctx := context.Background()

	err := adapter.InTx(ctx, func(tx port.OrderTx) error {
		if ok, _ := tx.DecrementStock(ctx, "missing", 1); ok {
			t.Error("decrement of missing product must fail")
		}
		if ok, _ := tx.DecrementStock(ctx, "item-1", 2); !ok {
			t.Error("exact-stock decrement must succeed")
		}
		if ok, _ := tx.DecrementStock(ctx, "item-1", 1); ok {
			t.Error("decrement below zero must fail")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("tx failed: %v", err)
	}

	if stock := adapter.Stock("item-1"); stock != 0 {
		t.Errorf("expected stock 0, got %d", stock)
	}
}

func TestMemoryAdapter_ConcurrentTxSerialized(t *testing.T) {
	adapter := NewMemoryAdapter()
	adapter.SeedProduct(domain.Product{ID: "item-1", Price: decimal.RequireFromString("1.00"), Stock: 10})

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := context.Background()
			err := adapter.InTx(ctx, func(tx port.OrderTx) error {
				ok, err := tx.DecrementStock(ctx, "item-1", 1)
				if err != nil {
					return err
				}
				if !ok {
					return domain.ErrInsufficientStock
				}
				return nil
			})
			if err == nil {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 10 {
		t.Errorf("expected 10 successes, got %d", successCount.Load())
	}
	if stock := adapter.Stock("item-1"); stock != 0 {
		t.Errorf("expected stock 0, got %d", stock)
	}
}

func TestMemoryAdapter_GetOrderNotFound(t *testing.T) {
	adapter := NewMemoryAdapter()

	_, err := adapter.GetOrder(context.Background(), "no-such-order")
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got: %v", err)
	}
}
