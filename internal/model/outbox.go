package model

import "time"

// EventAction names a ledger state transition published on the activity stream.
type EventAction string

const (
	// EventActionReservationCreated is recorded when seats are booked.
	EventActionReservationCreated EventAction = "reservation_created"
	// EventActionReservationCancelled is recorded when seats are released.
	EventActionReservationCancelled EventAction = "reservation_cancelled"
)

// ReservationEvent is the payload of a reservation outbox record.
type ReservationEvent struct {
	Action         EventAction       `json:"action"`
	ReservationID  string            `json:"reservation_id"`
	UserID         string            `json:"user_id"`
	EventID        string            `json:"event_id"`
	Seats          int               `json:"seats"`
	Status         ReservationStatus `json:"status"`
	AvailableSeats int               `json:"available_seats"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

// OutboxEvent represents an outbox record awaiting delivery.
type OutboxEvent struct {
	ID          int64      `json:"id"`
	AggregateID string     `json:"aggregate_id"`
	EventType   string     `json:"event_type"`
	Payload     []byte     `json:"payload"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at"`
}
