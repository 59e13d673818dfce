package kafka

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer wraps a kafka.Writer for publishing messages.
type Producer struct {
	w *kafka.Writer
}

// NewProducer creates a Kafka writer that routes messages by the topic set on
// each kafka.Message. brokers is a comma separated host:port list.
func NewProducer(brokers string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokerList(brokers)...),
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireAll,
		},
	}
}

func brokerList(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Publish sends a single message. Messages sharing a key land on the same partition.
func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	return p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error { return p.w.Close() }
