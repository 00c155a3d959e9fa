package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shoporder/internal/core/domain"
	"shoporder/internal/port"
)

// OrderService is the order placement engine. It turns a validated line-item
// list into a durable order, decrementing inventory in the same transaction
// that creates the order and its items.
type OrderService struct {
	store  port.Store
	cache  port.CacheRepository
	events port.EventPublisher
	logger *zap.Logger
}

// NewOrderService wires the engine to its collaborators. cache and events may
// be nil when caching or event publishing is not wanted.
func NewOrderService(store port.Store, cache port.CacheRepository, events port.EventPublisher, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{store: store, cache: cache, events: events, logger: logger}
}

// PlaceOrder validates the request, then runs the whole placement inside one
// transaction: per line item it looks up the product, decrements stock and
// snapshots the unit price; after every item succeeded it inserts the order
// with total = sum of subtotals. The first missing or short product aborts
// the transaction, rolling back earlier decrements.
func (s *OrderService) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (domain.Order, error) {
	if err := req.Validate(); err != nil {
		return domain.Order{}, err
	}

	var order domain.Order

	err := s.store.InTx(ctx, func(tx port.OrderTx) error {
		items := make([]domain.OrderItem, 0, len(req.Items))
		total := decimal.Zero

		for _, line := range req.Items {
			product, err := tx.GetProduct(ctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("get product: %w", err)
			}
			if product == nil {
				return &domain.ProductError{ProductID: line.ProductID, Err: domain.ErrProductNotFound}
			}

			ok, err := tx.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !ok {
				return &domain.ProductError{ProductID: line.ProductID, Err: domain.ErrInsufficientStock}
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			items = append(items, domain.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     product.Price,
				Subtotal:  subtotal,
			})
			total = total.Add(subtotal)
		}

		order = domain.Order{
			ID:           uuid.NewString(),
			CustomerName: req.CustomerName,
			OrderDate:    req.OrderDate,
			TotalPrice:   total,
			Items:        items,
			CreatedAt:    time.Now().UTC(),
		}

		if err := tx.InsertOrder(ctx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	if s.events != nil {
		s.events.OrderCreated(ctx, order)
	}

	if s.cache != nil {
		if err := s.cache.SetOrder(ctx, order); err != nil {
			s.logger.Warn("cache order", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	return order, nil
}

// GetOrder returns a committed order, serving from cache when possible.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	if s.cache != nil {
		cached, err := s.cache.GetOrder(ctx, orderID)
		if err != nil {
			s.logger.Warn("order cache read", zap.String("order_id", orderID), zap.Error(err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetOrder(ctx, order); err != nil {
			s.logger.Warn("cache order", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	return order, nil
}

func (s *OrderService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListProducts(ctx)
}
