package storage

import (
	"context"
	"maps"
	"sort"
	"sync"

	"shoporder/internal/core/domain"
	"shoporder/internal/port"
)

// MemoryAdapter is an in-memory port.Store for tests and local runs. InTx
// holds the write lock for the whole transaction, so concurrent placements
// are serializable, and applies fn to a snapshot so a failed transaction
// leaves nothing behind.
type MemoryAdapter struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	orders   map[string]domain.Order
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		products: make(map[string]domain.Product),
		orders:   make(map[string]domain.Order),
	}
}

// SeedProduct inserts or replaces a catalog row.
func (m *MemoryAdapter) SeedProduct(p domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

// Stock reports current stock for a product, -1 if it does not exist.
func (m *MemoryAdapter) Stock(productID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[productID]
	if !ok {
		return -1
	}
	return p.Stock
}

// OrderCount reports how many orders have been committed.
func (m *MemoryAdapter) OrderCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders)
}

func (m *MemoryAdapter) InTx(ctx context.Context, fn func(tx port.OrderTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{
		products: maps.Clone(m.products),
		orders:   maps.Clone(m.orders),
	}
	if err := fn(tx); err != nil {
		return err
	}

	m.products = tx.products
	m.orders = tx.orders
	return nil
}

func (m *MemoryAdapter) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

func (m *MemoryAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memoryTx struct {
	products map[string]domain.Product
	orders   map[string]domain.Order
}

func (t *memoryTx) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	p, ok := t.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (t *memoryTx) DecrementStock(ctx context.Context, productID string, quantity int) (bool, error) {
	p, ok := t.products[productID]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	t.products[productID] = p
	return true, nil
}

func (t *memoryTx) InsertOrder(ctx context.Context, order domain.Order) error {
	t.orders[order.ID] = order
	return nil
}
