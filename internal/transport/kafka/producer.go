package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"motorental/internal/domain"
	"motorental/internal/logx"
	"motorental/internal/service/rental"
)

// Producer publishes rental lifecycle events. Messages are keyed by rental
// id so all events of one rental land on the same partition, in order.
type Producer struct {
	producer     sarama.SyncProducer
	createdTopic string
	updatedTopic string
	logger       logx.Logger
	now          func() time.Time
}

// NewProducer creates a new Kafka producer. Waits for all in-sync replicas
// to ack before reporting success. Returns a nil producer when Kafka is not
// configured; publishing on a nil producer is a no-op.
func NewProducer(brokers []string, createdTopic, updatedTopic string, logger logx.Logger) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(createdTopic) == "" || strings.TrimSpace(updatedTopic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Producer{
		producer:     p,
		createdTopic: createdTopic,
		updatedTopic: updatedTopic,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// PublishRentalCreated publishes the full record snapshot on the created
// topic.
func (p *Producer) PublishRentalCreated(ctx context.Context, r domain.Rental) error {
	if p == nil {
		return nil
	}
	return p.publish(ctx, p.createdTopic, r)
}

// PublishRentalUpdated publishes the full record snapshot on the updated
// topic.
func (p *Producer) PublishRentalUpdated(ctx context.Context, r domain.Rental) error {
	if p == nil {
		return nil
	}
	return p.publish(ctx, p.updatedTopic, r)
}

func (p *Producer) publish(ctx context.Context, topic string, r domain.Rental) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dto := FromDomain(rental.NewEvent(r, p.now().UTC()))
	value, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("marshal event for rental %d: %w", r.ID, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(r.ID, 10)),
		Value: sarama.ByteEncoder(value),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish to %s for rental %d: %w", topic, r.ID, err)
	}

	p.logger.Debug("event published",
		logx.String("topic", topic),
		logx.Int64("rental_id", r.ID),
		logx.Any("partition", partition),
		logx.Int64("offset", offset),
	)
	return nil
}

// Close shuts the underlying sarama producer down.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
