package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"shoporder/internal/core/domain"
)

const (
	TopicOrderCreated = "orders.created"

	EventOrderCreated = "OrderCreated"
)

// Envelope wraps every event so consumers can dispatch on type and version
// without decoding the payload.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID      string          `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	OrderDate    string          `json:"order_date"`
	TotalPrice   string          `json:"total_price"`
	Items        []OrderItemData `json:"items"`
}

type OrderItemData struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Subtotal  string `json:"subtotal"`
}

// KafkaPublisher emits OrderCreated events after commit. Writes are async and
// fire-and-forget; failures are logged, never surfaced to the placement path.
type KafkaPublisher struct {
	writer  *kafka.Writer
	service string
	logger  *zap.Logger
}

func NewKafkaPublisher(brokers []string, service string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        TopicOrderCreated,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		service: service,
		logger:  logger,
	}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, order domain.Order) {
	items := make([]OrderItemData, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.String(),
			Subtotal:  item.Subtotal.String(),
		})
	}

	payload, err := json.Marshal(OrderCreatedPayload{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		OrderDate:    order.OrderDate.Format("2006-01-02"),
		TotalPrice:   order.TotalPrice.String(),
		Items:        items,
	})
	if err != nil {
		p.logger.Warn("encode order created payload", zap.String("order_id", order.ID), zap.Error(err))
		return
	}

	value, err := json.Marshal(Envelope{
		EventID:      uuid.NewString(),
		EventType:    EventOrderCreated,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     p.service,
		Payload:      payload,
	})
	if err != nil {
		p.logger.Warn("encode order created envelope", zap.String("order_id", order.ID), zap.Error(err))
		return
	}

	// Partition key = order id keeps per-order events in relative order.
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: value,
	})
	if err != nil {
		p.logger.Warn("publish order created", zap.String("order_id", order.ID), zap.Error(err))
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events; used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(context.Context, domain.Order) {}
