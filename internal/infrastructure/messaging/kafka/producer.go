package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/unionworks/unioniq/internal/application/settlement"
	"github.com/unionworks/unioniq/internal/config"
	"github.com/unionworks/unioniq/internal/domain/claim"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/pkg/errors"
	"github.com/unionworks/unioniq/pkg/types/common"
)

const (
	eventSource   = "unioniq"
	schemaVersion = "1.0"
)

var ErrProducerClosed = errors.New(errors.ErrCodeMessagingError, "producer closed")

// writer abstracts kafka.Writer for tests.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes event envelopes.  Safe for concurrent use.
type Producer struct {
	writer writer
	logger logging.Logger
	closed atomic.Bool

	now func() time.Time
}

// NewProducer builds a Producer from the Kafka config.
func NewProducer(cfg config.KafkaConfig, log logging.Logger) *Producer {
	var requiredAcks kafka.RequiredAcks
	switch cfg.Acks {
	case "none":
		requiredAcks = kafka.RequireNone
	case "all":
		requiredAcks = kafka.RequireAll
	default:
		requiredAcks = kafka.RequireOne
	}

	retries := cfg.ProducerRetries
	if retries <= 0 {
		retries = 3
	}
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		MaxAttempts:  retries + 1,
		BatchTimeout: batchTimeout,
		WriteTimeout: writeTimeout,
		RequiredAcks: requiredAcks,
	}

	return &Producer{writer: w, logger: log.Named("kafka"), now: time.Now}
}

// NewProducerWithWriter wires a custom writer, mainly for tests.
func NewProducerWithWriter(w writer, log logging.Logger) *Producer {
	return &Producer{writer: w, logger: log, now: time.Now}
}

// Publish writes one envelope to the topic, keyed for per-key ordering.
func (p *Producer) Publish(ctx context.Context, topic, key string, envelope EventEnvelope) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event envelope")
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, errors.ErrCodeMessagingError, "failed to publish event")
	}

	p.logger.Debug("event published",
		logging.String("topic", topic),
		logging.String("event_type", envelope.EventType),
		logging.String("event_id", envelope.EventID),
	)
	return nil
}

// PublishRecommendationGenerated implements settlement.EventPublisher.
func (p *Producer) PublishRecommendationGenerated(ctx context.Context, tenantID common.TenantID, rec *settlement.SettlementRecommendation) error {
	payload, err := json.Marshal(RecommendationGeneratedPayload{
		ClaimID:              string(rec.ClaimID),
		RecommendedOutcome:   string(rec.RecommendedOutcome),
		SettlementType:       string(rec.SettlementType),
		Confidence:           rec.Confidence,
		EstimatedSuccessRate: rec.EstimatedSuccessRate,
		RiskLevel:            string(rec.RiskLevel),
		RiskScore:            rec.RiskAssessment.RiskScore,
		PrecedentCount:       len(rec.TopPrecedents),
		ClauseCount:          len(rec.RelevantClauses),
		GeneratedAt:          p.now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode recommendation payload")
	}

	envelope := EventEnvelope{
		EventID:       string(common.NewID()),
		EventType:     TopicRecommendationGenerated,
		Source:        eventSource,
		TenantID:      string(tenantID),
		Timestamp:     p.now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       payload,
	}
	// Key by claim so retries for one claim stay ordered.
	return p.Publish(ctx, TopicRecommendationGenerated, string(rec.ClaimID), envelope)
}

// PublishClaimCreated emits a claim.created event.
func (p *Producer) PublishClaimCreated(ctx context.Context, tenantID common.TenantID, c *claim.Claim) error {
	return p.publishClaimChanged(ctx, TopicClaimCreated, tenantID, c)
}

// PublishClaimUpdated emits a claim.updated event.
func (p *Producer) PublishClaimUpdated(ctx context.Context, tenantID common.TenantID, c *claim.Claim) error {
	return p.publishClaimChanged(ctx, TopicClaimUpdated, tenantID, c)
}

func (p *Producer) publishClaimChanged(ctx context.Context, topic string, tenantID common.TenantID, c *claim.Claim) error {
	payload, err := json.Marshal(ClaimChangedPayload{
		ClaimID:   string(c.ID),
		ClaimType: c.ClaimType,
		Status:    string(c.Status),
		Priority:  string(c.Priority),
		ChangedAt: p.now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode claim payload")
	}

	envelope := EventEnvelope{
		EventID:       string(common.NewID()),
		EventType:     topic,
		Source:        eventSource,
		TenantID:      string(tenantID),
		Timestamp:     p.now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       payload,
	}
	return p.Publish(ctx, topic, string(c.ID), envelope)
}

// Close flushes and closes the writer.  Safe to call more than once.
func (p *Producer) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}
