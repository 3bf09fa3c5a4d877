// Package events publishes persisted-message records for downstream
// consumers. Publishing is best effort; a broker outage never fails a
// send.
package events

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Producer{writer: w}
}

// PublishMessageSaved emits one record keyed by chat id, so records for
// one conversation land on one partition in order.
func (p *Producer) PublishMessageSaved(ctx context.Context, chatID string, payload []byte) error {
	msg := kafka.Message{Key: []byte(chatID), Value: payload, Time: time.Now()}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error { return p.writer.Close() }
