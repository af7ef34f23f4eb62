package kafka

import (
	"context"
	"encoding/json"

	"restaurant-service/models"

	"github.com/segmentio/kafka-go"
)

// ProducerAPI is the publishing surface used by the services; tests swap in
// a fake.
type ProducerAPI interface {
	SendOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error
}

// Producer publishes order events to Kafka.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a Producer for the given brokers and topic.
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: writer, topic: topic}
}

// SendOrderCreated publishes an order.created event keyed by user so events
// for one user stay ordered.
func (p *Producer) SendOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() {
	_ = p.writer.Close()
}
