package service

import (
	"fmt"

	"github.com/Shivanand-hulikatti/reservation-ledger/internal/model"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/repository"
)

// ReservationService books and cancels seats.
type ReservationService struct {
	reservations *repository.ReservationRepository
}

// NewReservationService constructs a ReservationService.
func NewReservationService(reservations *repository.ReservationRepository) *ReservationService {
	return &ReservationService{reservations: reservations}
}

// CreateReservation books seats for a user on an event.
//
// Errors wrap repository.ErrNotFound (unknown user or event),
// repository.ErrInvalidArgument (seats <= 0) or, when the event is short of
// seats, a *repository.CapacityError carrying the available count.
func (s *ReservationService) CreateReservation(userID, eventID string, seats int) (model.Reservation, error) {
	res, err := s.reservations.Book(userID, eventID, seats)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("create reservation: %w", err)
	}
	return res, nil
}

// CancelReservation releases a reservation's seats. Cancelling an already
// cancelled reservation returns it unchanged.
func (s *ReservationService) CancelReservation(id string) (model.Reservation, error) {
	res, err := s.reservations.Cancel(id)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("cancel reservation: %w", err)
	}
	return res, nil
}

// ListReservations returns all reservations in insertion order.
func (s *ReservationService) ListReservations() []model.Reservation {
	return s.reservations.List()
}

// GetReservation returns a single reservation by ID.
func (s *ReservationService) GetReservation(id string) (model.Reservation, error) {
	return s.reservations.GetByID(id)
}

// GetReservationsByUser returns a user's reservations of any status.
func (s *ReservationService) GetReservationsByUser(userID string) []model.Reservation {
	return s.reservations.ListByUser(userID)
}
