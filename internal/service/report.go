package service

import (
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/model"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/repository"
)

// ReportService computes read-only statistics over the ledger.
type ReportService struct {
	store  *repository.Store
	events *repository.EventRepository
}

// NewReportService constructs a ReportService.
func NewReportService(store *repository.Store, events *repository.EventRepository) *ReportService {
	return &ReportService{store: store, events: events}
}

// FillRate returns the booked share of an event's capacity as a percentage
// in [0, 100]. An event with zero capacity reports 0.
func (s *ReportService) FillRate(eventID string) (float64, error) {
	e, err := s.events.GetByID(eventID)
	if err != nil {
		return 0, err
	}
	if e.MaxCapacity == 0 {
		return 0, nil
	}
	return float64(e.Booked()) / float64(e.MaxCapacity) * 100, nil
}

// ActiveReservationCount counts confirmed reservations.
func (s *ReportService) ActiveReservationCount() int {
	return activeCount(s.store.Snapshot())
}

// TotalRevenue sums price times seats over confirmed reservations.
func (s *ReportService) TotalRevenue() float64 {
	return revenue(s.store.Snapshot())
}

// Summary returns both aggregates computed from the same snapshot.
func (s *ReportService) Summary() model.Stats {
	snap := s.store.Snapshot()
	return model.Stats{
		ActiveReservations: activeCount(snap),
		TotalRevenue:       revenue(snap),
	}
}

func activeCount(snap repository.Snapshot) int {
	n := 0
	for _, r := range snap.Reservations {
		if r.Status == model.StatusConfirmed {
			n++
		}
	}
	return n
}

func revenue(snap repository.Snapshot) float64 {
	prices := make(map[string]float64, len(snap.Events))
	for _, e := range snap.Events {
		prices[e.ID] = e.Price
	}

	var total float64
	for _, r := range snap.Reservations {
		if r.Status != model.StatusConfirmed {
			continue
		}
		// A reservation whose event is gone contributes nothing.
		total += prices[r.EventID] * float64(r.Seats)
	}
	return total
}
