package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/reservation-ledger/internal/model"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/repository"
)

// DemoResult holds the handles created by SeedDemo.
type DemoResult struct {
	Alice, Bob              model.User
	Concert, Conf, Workshop model.Event
	Stats                   model.Stats
	ConcertFillRate         float64
}

// SeedDemo walks the ledger through a short end-to-end scenario and logs
// each step: users and events are created, a concert is searched for,
// seats are booked, over-bookings are refused, one booking is cancelled,
// and the final statistics are reported.
func SeedDemo(catalog *CatalogService, reservations *ReservationService, reports *ReportService) (DemoResult, error) {
	var out DemoResult

	out.Alice = catalog.CreateUser(model.CreateUserRequest{Name: "Alice Dupont", Email: "alice@example.com"})
	out.Bob = catalog.CreateUser(model.CreateUserRequest{Name: "Bob Martin", Email: "bob@example.com"})
	slog.Info("demo: users created", slog.Int("count", len(catalog.ListUsers())))

	out.Concert = catalog.CreateEvent(model.CreateEventRequest{
		Name:        "Rock Night",
		Date:        time.Date(2025, 12, 10, 20, 0, 0, 0, time.UTC),
		Location:    "Hall A",
		MaxCapacity: 100,
		Price:       30,
	}, model.CategoryConcert)
	out.Conf = catalog.CreateEvent(model.CreateEventRequest{
		Name:        "AI Conference",
		Date:        time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC),
		Location:    "Conference Centre",
		MaxCapacity: 50,
		Price:       100,
	}, model.CategoryConference)
	out.Workshop = catalog.CreateEvent(model.CreateEventRequest{
		Name:        "TypeScript Workshop",
		Date:        time.Date(2025, 11, 15, 14, 0, 0, 0, time.UTC),
		Location:    "Room B",
		MaxCapacity: 20,
		Price:       25,
	}, model.CategoryWorkshop)
	slog.Info("demo: events created", slog.Int("count", len(catalog.ListEvents())))

	slog.Info("demo: concerts", slog.Int("count", len(catalog.FilterEventsByCategory(model.CategoryConcert))))
	slog.Info("demo: search", slog.String("term", "rock"), slog.Int("matches", len(catalog.SearchEventsByName("rock"))))

	r1, err := reservations.CreateReservation(out.Alice.ID, out.Concert.ID, 2)
	if err != nil {
		return out, err
	}
	slog.Info("demo: reservation confirmed", slog.String("id", r1.ID), slog.Int("seats", r1.Seats))

	_, err = reservations.CreateReservation(out.Bob.ID, out.Workshop.ID, 25)
	if !errors.Is(err, repository.ErrCapacityExceeded) {
		return out, fmt.Errorf("expected over-booking to be refused, got %v", err)
	}
	slog.Info("demo: over-booking refused", slog.String("reason", err.Error()))

	r2, err := reservations.CreateReservation(out.Bob.ID, out.Concert.ID, 5)
	if err != nil {
		return out, err
	}
	if _, err := reservations.CreateReservation(out.Alice.ID, out.Conf.ID, 1); err != nil {
		return out, err
	}
	slog.Info("demo: reservations", slog.Int("count", len(reservations.ListReservations())))

	if _, err := reservations.CancelReservation(r2.ID); err != nil {
		return out, err
	}
	concert, err := catalog.GetEvent(out.Concert.ID)
	if err != nil {
		return out, err
	}
	slog.Info("demo: concert after cancellation", slog.Int("available_seats", concert.AvailableSeats))

	if _, err := reservations.CreateReservation(out.Bob.ID, out.Workshop.ID, 20); err != nil {
		return out, err
	}
	_, err = reservations.CreateReservation(out.Alice.ID, out.Workshop.ID, 1)
	if !errors.Is(err, repository.ErrCapacityExceeded) {
		return out, fmt.Errorf("expected full workshop to refuse a booking, got %v", err)
	}
	slog.Info("demo: workshop full", slog.String("reason", err.Error()))

	out.ConcertFillRate, err = reports.FillRate(out.Concert.ID)
	if err != nil {
		return out, err
	}
	out.Stats = reports.Summary()
	slog.Info("demo: statistics",
		slog.String("concert_fill_rate", fmt.Sprintf("%.2f%%", out.ConcertFillRate)),
		slog.Int("active_reservations", out.Stats.ActiveReservations),
		slog.Float64("total_revenue", out.Stats.TotalRevenue),
		slog.Int("alice_reservations", len(reservations.GetReservationsByUser(out.Alice.ID))),
	)

	return out, nil
}
