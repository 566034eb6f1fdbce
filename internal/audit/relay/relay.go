// Package relay publishes audit outbox rows to Kafka. The outbox table is
// the handoff point: the engine appends, the relay drains.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"vetgate/internal/audit/store/postgres"
)

const (
	defaultInterval  = 2 * time.Second
	defaultBatchSize = 100
)

// Relay drains the audit outbox into a Kafka topic.
type Relay struct {
	store    *postgres.Store
	client   *kgo.Client
	topic    string
	logger   *slog.Logger
	interval time.Duration
	batch    int
}

// New connects to the brokers and ensures the audit topic exists.
func New(store *postgres.Store, brokers []string, topic string, logger *slog.Logger) (*Relay, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}

	admin := kadm.NewClient(client)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	resps, err := admin.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("ensure audit topic: %w", err)
	}
	for _, resp := range resps.Sorted() {
		if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			client.Close()
			return nil, fmt.Errorf("ensure audit topic %s: %w", resp.Topic, resp.Err)
		}
	}

	return &Relay{
		store:    store,
		client:   client,
		topic:    topic,
		logger:   logger,
		interval: defaultInterval,
		batch:    defaultBatchSize,
	}, nil
}

// Run drains the outbox on a fixed interval until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer r.client.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drain(ctx); err != nil {
				r.logger.ErrorContext(ctx, "audit relay drain failed", "error", err)
			}
		}
	}
}

func (r *Relay) drain(ctx context.Context) error {
	rows, err := r.store.Unpublished(ctx, r.batch)
	if err != nil {
		return err
	}
	for _, row := range rows {
		record := &kgo.Record{
			Topic: r.topic,
			Key:   []byte(row.SubjectID),
			Value: row.Payload,
		}
		if err := r.client.ProduceSync(ctx, record).FirstErr(); err != nil {
			return fmt.Errorf("produce audit event %s: %w", row.ID, err)
		}
		if err := r.store.MarkPublished(ctx, row.ID, time.Now()); err != nil {
			return err
		}
	}
	return nil
}
