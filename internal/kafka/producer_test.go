package kafka

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestBrokerList(t *testing.T) {
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, brokerList(" k1:9092, ,k2:9092 "))
	assert.Empty(t, brokerList(""))
}

func TestNewProducer(t *testing.T) {
	p := NewProducer("k1:9092,k2:9092")
	defer p.Close()

	assert.Equal(t, kafka.RequireAll, p.w.RequiredAcks)
	assert.True(t, p.w.AllowAutoTopicCreation)
}
