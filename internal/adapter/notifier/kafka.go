package notifier

import (
	"context"
	"fmt"
	"time"

	"bank-ledger/internal/domain/notification"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the slice of *kafka.Writer the sink needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes events keyed by user id, so one user's events stay ordered
// within a partition.
type Kafka struct {
	w messageWriter
}

// flushAfter bounds how long a synchronous write waits for a batch to fill.
// Notifications go out one at a time after a commit, so the writer's 1s
// default would stall every loan response.
const flushAfter = 10 * time.Millisecond

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
		BatchSize:              1,
		BatchTimeout:           flushAfter,
	}}
}

func (k *Kafka) Notify(ctx context.Context, ev notification.Event) error {
	body, err := encode(ev)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(ev.UserID),
		Value: body,
		Time:  ev.CreatedAt,
	}
	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("notifier: kafka publish: %w", err)
	}
	return nil
}

func (k *Kafka) Close() error { return k.w.Close() }
