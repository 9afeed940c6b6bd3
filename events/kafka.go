package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sam-oo1/bussinBank"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the recorder uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaRecorder publishes TransactionRecorded events as JSON, keyed by
// account id so that the events of an account stay ordered.
type KafkaRecorder struct {
	writer messageWriter
	now    func() time.Time
}

// NewKafkaRecorder returns a recorder publishing to topic on brokers.
func NewKafkaRecorder(brokers []string, topic string) *KafkaRecorder {
	return &KafkaRecorder{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		now: time.Now,
	}
}

func (k *KafkaRecorder) Record(ctx context.Context, tx bussinbank.Transaction) error {
	ev := NewTransactionRecorded(tx, k.now())
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.AccountID),
		Value: data,
		Time:  ev.RecordedAt,
	})
	if err != nil {
		return fmt.Errorf("publish transaction %s: %w", ev.ID, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (k *KafkaRecorder) Close() error { return k.writer.Close() }
