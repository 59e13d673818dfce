package outbox

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/picshare/internal/observability"
)

const batchSize = 50

// Producer publishes one message to a broker topic.
type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Publisher polls the outbox table and publishes unpublished events to Kafka.
type Publisher struct {
	repo     *Repository
	producer Producer
	prefix   string
	interval time.Duration
}

// NewPublisher creates a new outbox publisher. Topics are "<prefix>.<event>".
func NewPublisher(repo *Repository, producer Producer, prefix string, interval time.Duration) *Publisher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Publisher{repo: repo, producer: producer, prefix: prefix, interval: interval}
}

// Start begins the polling loop. It blocks until the context is cancelled.
func (p *Publisher) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publishBatch(ctx)
		}
	}
}

func (p *Publisher) topic(event string) string {
	if p.prefix == "" {
		return event
	}
	return p.prefix + "." + event
}

func (p *Publisher) publishBatch(ctx context.Context) {
	log := observability.GetLogger(ctx)

	rows, err := p.repo.Fetch(ctx, batchSize)
	if err != nil {
		log.Error("outbox query failed", zap.Error(err))
		return
	}

	for _, row := range rows {
		if err := p.producer.Publish(ctx, p.topic(row.Topic), []byte(row.Key), row.Payload); err != nil {
			observability.OutboxPublishedTotal.WithLabelValues(row.Topic, "error").Inc()
			log.Warn("kafka publish failed", zap.String("topic", row.Topic), zap.Error(err))
			continue
		}

		observability.OutboxPublishedTotal.WithLabelValues(row.Topic, "ok").Inc()
		if err := p.repo.MarkPublished(ctx, row.ID); err != nil {
			log.Error("outbox mark published failed", zap.String("id", row.ID), zap.Error(err))
		}
	}
}
