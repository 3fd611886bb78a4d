// Package kafka publishes engine events to a Kafka topic, adapted from the
// source's KafkaMessageSender to carry the engine's Event type instead of
// DoneMessage/protobuf.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/arjunvedula/matchcore/pkg/core"
	"github.com/arjunvedula/matchcore/pkg/messaging"
)

// Publisher implements messaging.EventPublisher over a Kafka topic.
type Publisher struct {
	writer     *kafkago.Writer
	propagator propagation.TextMapPropagator
	ctx        context.Context
}

// NewPublisher builds a Publisher writing to topic on brokerAddr.
func NewPublisher(ctx context.Context, brokerAddr, topic string) *Publisher {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokerAddr),
			Topic:        topic,
			Balancer:     &kafkago.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
		propagator: otel.GetTextMapPropagator(),
		ctx:        ctx,
	}
}

type headersCarrier []kafkago.Header

func (c *headersCarrier) Get(key string) string {
	for _, h := range *c {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headersCarrier) Set(key, value string) {
	*c = append(*c, kafkago.Header{Key: key, Value: []byte(value)})
}

func (c *headersCarrier) Keys() []string {
	out := make([]string, len(*c))
	for i, h := range *c {
		out[i] = h.Key
	}
	return out
}

// SendEvent implements messaging.EventPublisher.
func (p *Publisher) SendEvent(event core.Event) error {
	data, err := json.Marshal(messaging.ToEnvelope(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	headers := make(headersCarrier, 0)
	p.propagator.Inject(p.ctx, &headers)

	msg := kafkago.Message{
		Key:     []byte(strconv.FormatInt(int64(event.OrderID), 10)),
		Value:   data,
		Time:    time.Now(),
		Headers: []kafkago.Header(headers),
	}

	timeoutCtx, cancel := context.WithTimeout(p.ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(timeoutCtx, msg); err != nil {
		return fmt.Errorf("failed to send event to Kafka: %w", err)
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ messaging.EventPublisher = (*Publisher)(nil)
