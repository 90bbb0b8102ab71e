package service

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/reservation-ledger/internal/clock"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/model"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/repository"
)

type ledger struct {
	store        *repository.Store
	outbox       *repository.OutboxRepository
	catalog      *CatalogService
	reservations *ReservationService
	reports      *ReportService
}

func newLedger() ledger {
	store := repository.NewStore(clock.NewFixed(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	events := repository.NewEventRepository(store)
	return ledger{
		store:        store,
		outbox:       repository.NewOutboxRepository(store),
		catalog:      NewCatalogService(events, repository.NewUserRepository(store)),
		reservations: NewReservationService(repository.NewReservationRepository(store)),
		reports:      NewReportService(store, events),
	}
}

func (l ledger) event(name string, capacity int, category model.Category, price float64) model.Event {
	return l.catalog.CreateEvent(model.CreateEventRequest{
		Name:        name,
		Location:    "Hall",
		MaxCapacity: capacity,
		Price:       price,
	}, category)
}

func (l ledger) user(name string) model.User {
	return l.catalog.CreateUser(model.CreateUserRequest{Name: name, Email: name + "@example.com"})
}

func (l ledger) available(t *testing.T, eventID string) int {
	t.Helper()
	e, err := l.catalog.GetEvent(eventID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	return e.AvailableSeats
}

func TestCatalogService_Filters(t *testing.T) {
	t.Parallel()

	l := newLedger()
	rock := l.event("Rock Night", 10, model.CategoryConcert, 30)
	conf := l.event("AI Conference", 0, model.CategoryConference, 100)
	jazz := l.event("Jazz ROCKS", 5, model.CategoryConcert, 20)

	t.Run("by category", func(t *testing.T) {
		got := l.catalog.FilterEventsByCategory(model.CategoryConcert)
		if len(got) != 2 || got[0].ID != rock.ID || got[1].ID != jazz.ID {
			t.Fatalf("unexpected concerts: %+v", got)
		}
		if got := l.catalog.FilterEventsByCategory(model.CategoryTheater); got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("available only", func(t *testing.T) {
		got := l.catalog.FilterAvailableEvents()
		for _, e := range got {
			if e.ID == conf.ID {
				t.Fatalf("zero-capacity event must not be listed as available")
			}
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 available events, got %d", len(got))
		}
	})

	t.Run("search", func(t *testing.T) {
		tests := []struct {
			term string
			want []string
		}{
			{"rock", []string{rock.ID, jazz.ID}},
			{"  ROCK  ", []string{rock.ID, jazz.ID}},
			{"conf", []string{conf.ID}},
			{"opera", nil},
			{"", nil},
			{"   \t", nil},
		}
		for _, tt := range tests {
			got := l.catalog.SearchEventsByName(tt.term)
			if got == nil {
				t.Fatalf("term %q: expected non-nil slice", tt.term)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("term %q: expected %d matches, got %d", tt.term, len(tt.want), len(got))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Fatalf("term %q: match %d is %s, want %s", tt.term, i, got[i].ID, tt.want[i])
				}
			}
		}
	})

	t.Run("users", func(t *testing.T) {
		alice := l.user("alice")
		users := l.catalog.ListUsers()
		if len(users) != 1 || users[0] != alice {
			t.Fatalf("unexpected users: %+v", users)
		}
		if _, err := l.catalog.GetUser("usr-missing"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestReservationService_CreateAndCancel(t *testing.T) {
	t.Parallel()

	t.Run("books and releases seats", func(t *testing.T) {
		l := newLedger()
		alice := l.user("alice")
		e := l.event("Show", 10, model.CategoryTheater, 15)

		res, err := l.reservations.CreateReservation(alice.ID, e.ID, 4)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if got := l.available(t, e.ID); got != 6 {
			t.Fatalf("expected 6 seats, got %d", got)
		}

		cancelled, err := l.reservations.CancelReservation(res.ID)
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if cancelled.Status != model.StatusCancelled {
			t.Fatalf("expected cancelled, got %s", cancelled.Status)
		}
		if got := l.available(t, e.ID); got != 10 {
			t.Fatalf("expected 10 seats, got %d", got)
		}

		if _, err := l.reservations.CancelReservation(res.ID); err != nil {
			t.Fatalf("second cancel: %v", err)
		}
		if got := l.available(t, e.ID); got != 10 {
			t.Fatalf("expected no double restore, got %d", got)
		}
	})

	t.Run("errors wrap sentinels", func(t *testing.T) {
		l := newLedger()
		alice := l.user("alice")
		e := l.event("Show", 2, model.CategorySport, 15)

		if _, err := l.reservations.CreateReservation("usr-missing", e.ID, 1); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := l.reservations.CreateReservation(alice.ID, e.ID, 0); !errors.Is(err, repository.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		_, err := l.reservations.CreateReservation(alice.ID, e.ID, 3)
		var capErr *repository.CapacityError
		if !errors.As(err, &capErr) || capErr.Available != 2 {
			t.Fatalf("expected CapacityError with 2 available, got %v", err)
		}
		if got := l.available(t, e.ID); got != 2 {
			t.Fatalf("expected seats unchanged, got %d", got)
		}
		if _, err := l.reservations.CancelReservation("res-missing"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("reservations by user include cancelled", func(t *testing.T) {
		l := newLedger()
		alice, bob := l.user("alice"), l.user("bob")
		e := l.event("Show", 10, model.CategoryWorkshop, 15)

		r1, _ := l.reservations.CreateReservation(alice.ID, e.ID, 1)
		_, _ = l.reservations.CreateReservation(bob.ID, e.ID, 1)
		r3, _ := l.reservations.CreateReservation(alice.ID, e.ID, 2)
		_, _ = l.reservations.CancelReservation(r1.ID)

		got := l.reservations.GetReservationsByUser(alice.ID)
		if len(got) != 2 || got[0].ID != r1.ID || got[1].ID != r3.ID {
			t.Fatalf("unexpected reservations: %+v", got)
		}
		if got[0].Status != model.StatusCancelled {
			t.Fatalf("expected first reservation cancelled, got %s", got[0].Status)
		}
		if all := l.reservations.ListReservations(); len(all) != 3 {
			t.Fatalf("expected 3 reservations, got %d", len(all))
		}
		if fetched, err := l.reservations.GetReservation(r3.ID); err != nil || fetched.ID != r3.ID {
			t.Fatalf("get reservation: %+v, %v", fetched, err)
		}
	})
}

func TestSellOutAndCancel(t *testing.T) {
	t.Parallel()

	l := newLedger()
	bob, alice := l.user("bob"), l.user("alice")
	workshop := l.event("Workshop", 20, model.CategoryWorkshop, 25)

	full, err := l.reservations.CreateReservation(bob.ID, workshop.ID, 20)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if full.Status != model.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", full.Status)
	}
	if got := l.available(t, workshop.ID); got != 0 {
		t.Fatalf("expected sold out, got %d", got)
	}

	if _, err := l.reservations.CreateReservation(alice.ID, workshop.ID, 1); !errors.Is(err, repository.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	if _, err := l.reservations.CancelReservation(full.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := l.available(t, workshop.ID); got != 20 {
		t.Fatalf("expected 20 seats after cancel, got %d", got)
	}
}

func TestReportService(t *testing.T) {
	t.Parallel()

	t.Run("revenue counts confirmed reservations only", func(t *testing.T) {
		l := newLedger()
		alice, bob := l.user("alice"), l.user("bob")
		concert := l.event("Concert", 100, model.CategoryConcert, 30)

		_, err := l.reservations.CreateReservation(alice.ID, concert.ID, 2)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		r2, err := l.reservations.CreateReservation(bob.ID, concert.ID, 5)
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		if got := l.reports.TotalRevenue(); got != 210 {
			t.Fatalf("expected revenue 210, got %v", got)
		}
		if got := l.reports.ActiveReservationCount(); got != 2 {
			t.Fatalf("expected 2 active, got %d", got)
		}

		if _, err := l.reservations.CancelReservation(r2.ID); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if got := l.reports.TotalRevenue(); got != 60 {
			t.Fatalf("expected revenue 60 after cancelling the 5-seat booking, got %v", got)
		}

		stats := l.reports.Summary()
		if stats.ActiveReservations != 1 || stats.TotalRevenue != 60 {
			t.Fatalf("unexpected summary: %+v", stats)
		}
	})

	t.Run("cancelling the smaller booking leaves 150", func(t *testing.T) {
		l := newLedger()
		alice, bob := l.user("alice"), l.user("bob")
		concert := l.event("Concert", 100, model.CategoryConcert, 30)

		r1, _ := l.reservations.CreateReservation(alice.ID, concert.ID, 2)
		_, _ = l.reservations.CreateReservation(bob.ID, concert.ID, 5)
		_, _ = l.reservations.CancelReservation(r1.ID)

		if got := l.reports.TotalRevenue(); got != 150 {
			t.Fatalf("expected revenue 150, got %v", got)
		}
	})

	t.Run("fill rate", func(t *testing.T) {
		l := newLedger()
		alice := l.user("alice")
		e := l.event("Talk", 8, model.CategoryConference, 0)
		empty := l.event("Nothing", 0, model.CategoryConference, 0)

		if _, err := l.reservations.CreateReservation(alice.ID, e.ID, 2); err != nil {
			t.Fatalf("create: %v", err)
		}
		rate, err := l.reports.FillRate(e.ID)
		if err != nil {
			t.Fatalf("fill rate: %v", err)
		}
		if rate != 25 {
			t.Fatalf("expected 25%%, got %v", rate)
		}

		rate, err = l.reports.FillRate(empty.ID)
		if err != nil {
			t.Fatalf("fill rate: %v", err)
		}
		if rate != 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			t.Fatalf("expected 0 for zero capacity, got %v", rate)
		}

		if _, err := l.reports.FillRate("evt-missing"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSeedDemo(t *testing.T) {
	t.Parallel()

	l := newLedger()
	out, err := SeedDemo(l.catalog, l.reservations, l.reports)
	if err != nil {
		t.Fatalf("seed demo: %v", err)
	}

	if got := l.available(t, out.Concert.ID); got != 98 {
		t.Fatalf("expected 98 concert seats, got %d", got)
	}
	if got := l.available(t, out.Workshop.ID); got != 0 {
		t.Fatalf("expected workshop sold out, got %d", got)
	}
	if out.ConcertFillRate != 2 {
		t.Fatalf("expected 2%% fill rate, got %v", out.ConcertFillRate)
	}
	if out.Stats.ActiveReservations != 3 {
		t.Fatalf("expected 3 active reservations, got %d", out.Stats.ActiveReservations)
	}
	// 2*30 + 1*100 + 20*25
	if out.Stats.TotalRevenue != 660 {
		t.Fatalf("expected revenue 660, got %v", out.Stats.TotalRevenue)
	}
	if got := len(l.reservations.GetReservationsByUser(out.Alice.ID)); got != 2 {
		t.Fatalf("expected 2 reservations for alice, got %d", got)
	}
	// 4 bookings + 1 cancellation
	if got := len(l.outbox.List()); got != 5 {
		t.Fatalf("expected 5 outbox records, got %d", got)
	}
}
