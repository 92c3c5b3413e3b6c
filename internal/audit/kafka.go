package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Topic carries issuance lifecycle events for downstream consumers
// (operations dashboards, long-term archival).
const Topic = "attesta.document-events"

// KafkaPublisher publishes events to Kafka via franz-go. Records are keyed by
// reference number so all events for one document land in one partition.
type KafkaPublisher struct {
	client *kgo.Client
}

// NewKafkaPublisher connects a producer to the given brokers.
func NewKafkaPublisher(brokers []string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(Topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return &KafkaPublisher{client: client}, nil
}

// eventPayload is the JSON wire shape on the topic.
type eventPayload struct {
	Action     string `json:"action"`
	Timestamp  string `json:"timestamp"`
	DocumentID string `json:"document_id"`
	Reference  string `json:"reference"`
	ActorID    string `json:"actor_id"`
	RequestID  string `json:"request_id,omitempty"`
	ClientIP   string `json:"client_ip,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
}

func (p *KafkaPublisher) Emit(ctx context.Context, event Event) error {
	payload, err := json.Marshal(eventPayload{
		Action:     string(event.Action),
		Timestamp:  event.Timestamp.Format(time.RFC3339Nano),
		DocumentID: event.DocumentID.String(),
		Reference:  event.Reference,
		ActorID:    event.ActorID.String(),
		RequestID:  event.RequestID,
		ClientIP:   event.ClientIP,
		UserAgent:  event.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Key:   []byte(event.Reference),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes buffered records and releases the client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
