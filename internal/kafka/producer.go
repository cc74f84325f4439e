package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"

	"ms-showcase/internal/logger"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes events to a single topic, keyed by entity id so that
// every change to one row lands on the same partition.
type Producer struct {
	Writer messageWriter
	Topic  string
	Log    *logger.Logger
}

func NewProducer(brokers []string, topic string, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("KAFKA", fmt.Sprintf("Async write of %d message(s) to %s failed: %v", len(messages), topic, err))
			}
		},
	}
	return &Producer{Writer: writer, Topic: topic, Log: log}
}

func (p *Producer) Publish(ctx context.Context, event Event) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	p.Log.LogKafka("PUBLISH", p.Topic, event.Type+" "+string(msgBytes))

	return p.Writer.WriteMessages(ctx,
		kafka.Message{
			Key:   []byte(strconv.FormatInt(event.ID, 10)),
			Value: msgBytes,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.Type)},
			},
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
