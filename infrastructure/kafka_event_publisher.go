package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"scorebet/domain/events"
)

// KafkaEventPublisher streams core events to a Kafka topic for off-chain
// consumers. Each message carries the event type as key and the JSON
// payload as value.
type KafkaEventPublisher struct {
	writer *kafka.Writer
}

// NewKafkaEventPublisher creates a publisher over the given brokers/topic
func NewKafkaEventPublisher(brokers []string, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish writes the event to the topic
func (p *KafkaEventPublisher) Publish(event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	err = p.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.Type()),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to write event to kafka: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}
