// Package audit records swap lifecycle and reconciliation events. Audit
// writes are strictly best-effort: a failing audit sink must never fail
// the operation being audited.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Entry is one audit record. Reference is the payment reference where
// one exists; Detail is free-form context for operators.
type Entry struct {
	Event         string    `json:"event"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Reference     string    `json:"reference,omitempty"`
	Detail        string    `json:"detail,omitempty"`
	At            time.Time `json:"at"`
}

type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// LogRecorder writes audit entries to the structured log only. It is
// the fallback when no Kafka brokers are configured.
type LogRecorder struct {
	logger *slog.Logger
}

func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger.With("component", "audit")}
}

func (r *LogRecorder) Record(_ context.Context, entry Entry) {
	r.logger.Info("audit",
		"event", entry.Event,
		"transaction_id", entry.TransactionID,
		"reference", entry.Reference,
		"detail", entry.Detail)
}

// KafkaRecorder publishes audit entries to a topic, keyed by payment
// reference so all events for one swap land in one partition. Publish
// failures are logged and swallowed.
type KafkaRecorder struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewKafkaRecorder(brokers []string, topic string, logger *slog.Logger) *KafkaRecorder {
	return &KafkaRecorder{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
		logger: logger.With("component", "audit-kafka"),
	}
}

func (r *KafkaRecorder) Record(ctx context.Context, entry Entry) {
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		r.logger.Error("Failed to encode audit entry", "event", entry.Event, "error", err)
		return
	}

	err = r.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.Reference),
		Value: payload,
	})
	if err != nil {
		r.logger.Error("Failed to publish audit entry", "event", entry.Event, "error", err)
	}
}

func (r *KafkaRecorder) Close() error {
	return r.writer.Close()
}
