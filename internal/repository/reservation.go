package repository

import (
	"fmt"

	"github.com/Shivanand-hulikatti/reservation-ledger/internal/model"
)

// ReservationRepository handles storage for reservations and the seat
// bookkeeping that goes with them.
type ReservationRepository struct {
	store *Store
}

// NewReservationRepository constructs a ReservationRepository.
func NewReservationRepository(store *Store) *ReservationRepository {
	return &ReservationRepository{store: store}
}

// Book reserves seats for a user inside the store's write lock.
//
// Checks run in a fixed order so callers always see the same error for the
// same bad input: unknown user, unknown event, non-positive seat count, then
// insufficient capacity. Any failure leaves the store untouched.
//
// Because the capacity check and the decrement happen under one lock, two
// concurrent bookings cannot both observe the same free seats.
func (r *ReservationRepository) Book(userID, eventID string, seats int) (model.Reservation, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userLocked(userID); !ok {
		return model.Reservation{}, fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}
	event, ok := s.eventLocked(eventID)
	if !ok {
		return model.Reservation{}, fmt.Errorf("event %q: %w", eventID, ErrNotFound)
	}
	if seats <= 0 {
		return model.Reservation{}, fmt.Errorf("seat count must be greater than zero, got %d: %w", seats, ErrInvalidArgument)
	}
	if err := adjustSeats(event, -seats); err != nil {
		return model.Reservation{}, err
	}

	res := &model.Reservation{
		ID:        NewID(reservationPrefix),
		UserID:    userID,
		EventID:   eventID,
		Seats:     seats,
		CreatedAt: s.clock.Now(),
		Status:    model.StatusConfirmed,
	}
	s.reservationIdx[res.ID] = len(s.reservations)
	s.reservations = append(s.reservations, res)
	s.recordLocked(model.EventActionReservationCreated, res, event.AvailableSeats)

	return *res, nil
}

// Cancel releases a reservation's seats and marks it cancelled.
//
// Cancelling twice is a no-op: the second call returns the reservation as
// is and restores nothing. If the event has disappeared the reservation is
// still marked cancelled. Restored seats never push an event above its
// capacity.
func (r *ReservationRepository) Cancel(id string) (model.Reservation, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservationLocked(id)
	if !ok {
		return model.Reservation{}, fmt.Errorf("reservation %q: %w", id, ErrNotFound)
	}
	if res.Status == model.StatusCancelled {
		return *res, nil
	}

	available := 0
	if event, ok := s.eventLocked(res.EventID); ok {
		// Positive deltas are clamped, never rejected.
		_ = adjustSeats(event, res.Seats)
		available = event.AvailableSeats
	}
	res.Status = model.StatusCancelled
	s.recordLocked(model.EventActionReservationCancelled, res, available)

	return *res, nil
}

// List returns a copy of all reservations in insertion order.
func (r *ReservationRepository) List() []model.Reservation {
	return r.filter(func(*model.Reservation) bool { return true })
}

// ListByUser returns every reservation (any status) held by userID.
func (r *ReservationRepository) ListByUser(userID string) []model.Reservation {
	return r.filter(func(res *model.Reservation) bool { return res.UserID == userID })
}

// GetByID returns a single reservation or ErrNotFound.
func (r *ReservationRepository) GetByID(id string) (model.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res, ok := r.store.reservationLocked(id)
	if !ok {
		return model.Reservation{}, fmt.Errorf("reservation %q: %w", id, ErrNotFound)
	}
	return *res, nil
}

func (r *ReservationRepository) filter(keep func(*model.Reservation) bool) []model.Reservation {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]model.Reservation, 0, len(r.store.reservations))
	for _, res := range r.store.reservations {
		if keep(res) {
			out = append(out, *res)
		}
	}
	return out
}
