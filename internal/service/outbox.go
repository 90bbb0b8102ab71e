package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/rueidis"

	"github.com/Shivanand-hulikatti/reservation-ledger/internal/model"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/repository"
)

// Publisher delivers one outbox record to the activity stream.
type Publisher interface {
	Publish(ctx context.Context, event model.OutboxEvent) error
}

// RedisPublisher appends outbox records to a Redis stream.
type RedisPublisher struct {
	client    rueidis.Client
	streamKey string
}

// NewRedisPublisher creates a publisher writing to streamKey.
func NewRedisPublisher(client rueidis.Client, streamKey string) *RedisPublisher {
	return &RedisPublisher{client: client, streamKey: streamKey}
}

// Publish runs XADD with the record's type, aggregate and JSON payload.
func (p *RedisPublisher) Publish(ctx context.Context, event model.OutboxEvent) error {
	cmd := p.client.B().Xadd().Key(p.streamKey).Id("*").
		FieldValue().FieldValue("event_type", event.EventType).
		FieldValue("aggregate_id", event.AggregateID).
		FieldValue("payload", string(event.Payload)).
		Build()
	return p.client.Do(ctx, cmd).Error()
}

// OutboxService relays unpublished outbox records to a Publisher.
type OutboxService struct {
	outbox    *repository.OutboxRepository
	publisher Publisher
}

// NewOutboxService constructs an OutboxService.
func NewOutboxService(outbox *repository.OutboxRepository, publisher Publisher) *OutboxService {
	return &OutboxService{outbox: outbox, publisher: publisher}
}

// ProcessUnpublishedEvents publishes up to limit pending records in order.
// A record that fails to publish stays pending and is retried on the next
// call; the remaining records are still attempted. It returns the number of
// records published.
func (s *OutboxService) ProcessUnpublishedEvents(ctx context.Context, limit int) (int, error) {
	published := 0
	for _, event := range s.outbox.GetUnpublishedEvents(limit) {
		if err := ctx.Err(); err != nil {
			return published, err
		}

		if err := s.publisher.Publish(ctx, event); err != nil {
			slog.Error("failed to publish outbox event",
				slog.Int64("outbox_id", event.ID),
				slog.String("event_type", event.EventType),
				slog.String("error", err.Error()),
			)
			continue
		}

		if err := s.outbox.MarkAsPublished(event.ID); err != nil {
			slog.Error("failed to mark outbox event as published",
				slog.Int64("outbox_id", event.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		published++
		slog.Debug("published outbox event",
			slog.Int64("outbox_id", event.ID),
			slog.String("event_type", event.EventType),
			slog.String("aggregate_id", event.AggregateID),
		)
	}
	return published, nil
}

// RunPublisher polls the outbox every interval until ctx is cancelled.
func RunPublisher(ctx context.Context, svc *OutboxService, interval time.Duration, batchSize int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("publisher stopped")
			return
		case <-ticker.C:
			if _, err := svc.ProcessUnpublishedEvents(ctx, batchSize); err != nil && ctx.Err() == nil {
				slog.Error("error processing outbox events", slog.String("error", err.Error()))
			}
		}
	}
}
