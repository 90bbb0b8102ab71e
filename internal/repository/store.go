// Package repository holds the in-memory ledger: events, users, reservations,
// and the outbox of reservation activity, all guarded by one lock.
package repository

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/Shivanand-hulikatti/reservation-ledger/internal/clock"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/model"
)

// Store owns the ledger's collections. Construct one per process (or per
// test) with NewStore and share it between the repositories.
//
// Collections are append-only. The only in-place mutations are an event's
// AvailableSeats and a reservation's Status, and both happen under the
// write lock together with the outbox record describing them, so a reader
// never observes a reservation without its matching seat change.
type Store struct {
	mu    sync.RWMutex
	clock clock.Clock

	events   []*model.Event
	eventIdx map[string]int

	users   []*model.User
	userIdx map[string]int

	reservations   []*model.Reservation
	reservationIdx map[string]int

	outbox    []*model.OutboxEvent
	outboxIdx map[int64]int
	outboxSeq int64
}

// NewStore constructs an empty Store that stamps records using clk.
func NewStore(clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Store{
		clock:          clk,
		eventIdx:       make(map[string]int),
		userIdx:        make(map[string]int),
		reservationIdx: make(map[string]int),
		outboxIdx:      make(map[int64]int),
	}
}

// Snapshot is a point-in-time copy of events and reservations.
type Snapshot struct {
	Events       []model.Event
	Reservations []model.Reservation
}

// Snapshot copies events and reservations under a single read lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Events:       make([]model.Event, len(s.events)),
		Reservations: make([]model.Reservation, len(s.reservations)),
	}
	for i, e := range s.events {
		snap.Events[i] = *e
	}
	for i, r := range s.reservations {
		snap.Reservations[i] = *r
	}
	return snap
}

// The *Locked helpers require s.mu to be held.

func (s *Store) eventLocked(id string) (*model.Event, bool) {
	i, ok := s.eventIdx[id]
	if !ok {
		return nil, false
	}
	return s.events[i], true
}

func (s *Store) userLocked(id string) (*model.User, bool) {
	i, ok := s.userIdx[id]
	if !ok {
		return nil, false
	}
	return s.users[i], true
}

func (s *Store) reservationLocked(id string) (*model.Reservation, bool) {
	i, ok := s.reservationIdx[id]
	if !ok {
		return nil, false
	}
	return s.reservations[i], true
}

// recordLocked appends an outbox entry describing a reservation transition.
func (s *Store) recordLocked(action model.EventAction, r *model.Reservation, available int) {
	now := s.clock.Now()
	payload, err := json.Marshal(model.ReservationEvent{
		Action:         action,
		ReservationID:  r.ID,
		UserID:         r.UserID,
		EventID:        r.EventID,
		Seats:          r.Seats,
		Status:         r.Status,
		AvailableSeats: available,
		OccurredAt:     now,
	})
	if err != nil {
		slog.Error("encode outbox payload",
			slog.String("reservation_id", r.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	s.outboxSeq++
	s.outboxIdx[s.outboxSeq] = len(s.outbox)
	s.outbox = append(s.outbox, &model.OutboxEvent{
		ID:          s.outboxSeq,
		AggregateID: r.ID,
		EventType:   string(action),
		Payload:     payload,
		CreatedAt:   now,
	})
}

// adjustSeats is the only code path that changes an event's available
// seats. A negative delta larger than the seats left is rejected and leaves
// the event untouched; a positive delta is clamped to MaxCapacity.
func adjustSeats(e *model.Event, delta int) error {
	next := e.AvailableSeats + delta
	if next < 0 {
		return &CapacityError{EventID: e.ID, Requested: -delta, Available: e.AvailableSeats}
	}
	e.AvailableSeats = min(next, e.MaxCapacity)
	return nil
}
