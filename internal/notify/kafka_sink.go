package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaSink publishes notifications to a kafka topic so other storefront
// surfaces can mirror the feedback. Publishing is asynchronous; failures
// are logged and dropped, never surfaced to the caller.
type KafkaSink struct {
	writer  *kafka.Writer
	timeout time.Duration
}

func NewKafkaSink(brokers ...string) *KafkaSink {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "storefront-feedback",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaSink{writer: w, timeout: 5 * time.Second}
}

type feedbackEvent struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *KafkaSink) Notify(kind Kind, message string) {
	payload, err := json.Marshal(feedbackEvent{
		Kind:      string(kind),
		Message:   message,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("failed to marshal feedback event: %v", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.writer.WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
			log.Printf("failed to publish feedback event: %v", err)
		}
	}()
}

func (s *KafkaSink) Close() {
	if err := s.writer.Close(); err != nil {
		log.Printf("error closing feedback writer: %v", err)
	}
}
