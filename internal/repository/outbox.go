package repository

import (
	"fmt"

	"github.com/Shivanand-hulikatti/reservation-ledger/internal/model"
)

// OutboxRepository exposes the reservation activity recorded by the store.
// Records are written by ReservationRepository in the same critical section
// as the change they describe.
type OutboxRepository struct {
	store *Store
}

// NewOutboxRepository constructs an OutboxRepository.
func NewOutboxRepository(store *Store) *OutboxRepository {
	return &OutboxRepository{store: store}
}

// GetUnpublishedEvents returns up to limit unpublished records, oldest first.
// A limit of zero or less returns every pending record.
func (r *OutboxRepository) GetUnpublishedEvents(limit int) []model.OutboxEvent {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var events []model.OutboxEvent
	for _, ev := range r.store.outbox {
		if ev.PublishedAt != nil {
			continue
		}
		events = append(events, *ev)
		if limit > 0 && len(events) == limit {
			break
		}
	}
	return events
}

// MarkAsPublished stamps a record as delivered. Marking twice keeps the
// first timestamp.
func (r *OutboxRepository) MarkAsPublished(id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.outboxIdx[id]
	if !ok {
		return fmt.Errorf("outbox event %d: %w", id, ErrNotFound)
	}
	ev := s.outbox[i]
	if ev.PublishedAt == nil {
		now := s.clock.Now()
		ev.PublishedAt = &now
	}
	return nil
}

// List returns a copy of every outbox record in the order it was written.
func (r *OutboxRepository) List() []model.OutboxEvent {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	events := make([]model.OutboxEvent, 0, len(r.store.outbox))
	for _, ev := range r.store.outbox {
		events = append(events, *ev)
	}
	return events
}
