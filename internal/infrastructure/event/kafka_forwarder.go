package event

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/storefront/backend/internal/domain/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const kafkaTracerName = "github.com/storefront/backend/internal/infrastructure/event"

// KafkaConfig configures the forwarder's producer
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// NewSyncProducer builds a sarama producer that waits for all in-sync replicas
func NewSyncProducer(cfg KafkaConfig) (sarama.SyncProducer, error) {
	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Producer.Return.Successes = true
	sc.Producer.Retry.Max = 3
	sc.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

// KafkaForwarder publishes every domain event to a Kafka topic, keyed by aggregate id.
// The current trace context travels in the record headers.
type KafkaForwarder struct {
	producer   sarama.SyncProducer
	serializer *EventSerializer
	topic      string
	logger     *zap.Logger
	tracer     trace.Tracer
}

// NewKafkaForwarder creates a forwarder on top of an existing producer
func NewKafkaForwarder(producer sarama.SyncProducer, serializer *EventSerializer, topic string, logger *zap.Logger) *KafkaForwarder {
	return &KafkaForwarder{
		producer:   producer,
		serializer: serializer,
		topic:      topic,
		logger:     logger,
		tracer:     otel.Tracer(kafkaTracerName),
	}
}

// EventTypes returns nil so the forwarder receives all events
func (f *KafkaForwarder) EventTypes() []string {
	return nil
}

// Handle sends the event synchronously. A send failure is returned so the outbox retries it.
func (f *KafkaForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	ctx, span := f.tracer.Start(ctx, "kafka.publish "+event.EventType(),
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", f.topic),
			attribute.String("event.type", event.EventType()),
			attribute.String("event.id", event.EventID().String()),
		),
	)
	defer span.End()

	value, err := f.serializer.Serialize(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "serialize failed")
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic:   f.topic,
		Key:     sarama.StringEncoder(event.AggregateID().String()),
		Value:   sarama.ByteEncoder(value),
		Headers: recordHeaders(ctx, event),
	}

	partition, offset, err := f.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return fmt.Errorf("failed to send %s to Kafka: %w", event.EventType(), err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	f.logger.Debug("Event forwarded to Kafka",
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("topic", f.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// Close closes the underlying producer
func (f *KafkaForwarder) Close() error {
	return f.producer.Close()
}

func recordHeaders(ctx context.Context, event shared.DomainEvent) []sarama.RecordHeader {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(event.EventType())},
		{Key: []byte("event_id"), Value: []byte(event.EventID().String())},
		{Key: []byte("aggregate_type"), Value: []byte(event.AggregateType())},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}
	return headers
}

var _ shared.EventHandler = (*KafkaForwarder)(nil)
