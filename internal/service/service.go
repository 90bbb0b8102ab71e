// Package service implements the ledger's business operations on top of the
// repository layer: the catalog of events and users, the reservation engine,
// reporting, and the relay that publishes reservation activity.
package service

import (
	"strings"

	"github.com/Shivanand-hulikatti/reservation-ledger/internal/model"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/repository"
)

// CatalogService creates and queries events and users.
type CatalogService struct {
	events *repository.EventRepository
	users  *repository.UserRepository
}

// NewCatalogService constructs a CatalogService with its dependencies.
func NewCatalogService(
	events *repository.EventRepository,
	users *repository.UserRepository,
) *CatalogService {
	return &CatalogService{events: events, users: users}
}

// CreateEvent adds an event with every seat available. It always succeeds;
// category and numeric bounds are checked by callers at the boundary.
func (s *CatalogService) CreateEvent(req model.CreateEventRequest, category model.Category) model.Event {
	return s.events.Create(req, category)
}

// ListEvents returns all events in insertion order.
func (s *CatalogService) ListEvents() []model.Event {
	return s.events.List()
}

// GetEvent returns a single event by ID.
func (s *CatalogService) GetEvent(id string) (model.Event, error) {
	return s.events.GetByID(id)
}

// FilterEventsByCategory returns the events of one category.
func (s *CatalogService) FilterEventsByCategory(category model.Category) []model.Event {
	return s.events.Filter(func(e model.Event) bool { return e.Category == category })
}

// FilterAvailableEvents returns the events that still have seats left.
func (s *CatalogService) FilterAvailableEvents() []model.Event {
	return s.events.Filter(func(e model.Event) bool { return e.AvailableSeats > 0 })
}

// SearchEventsByName does a case-insensitive substring match on event names.
// A blank term matches nothing rather than everything.
func (s *CatalogService) SearchEventsByName(term string) []model.Event {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return []model.Event{}
	}
	return s.events.Filter(func(e model.Event) bool {
		return strings.Contains(strings.ToLower(e.Name), needle)
	})
}

// CreateUser adds a user. It always succeeds.
func (s *CatalogService) CreateUser(req model.CreateUserRequest) model.User {
	return s.users.Create(req)
}

// ListUsers returns all users in insertion order.
func (s *CatalogService) ListUsers() []model.User {
	return s.users.List()
}

// GetUser returns a single user by ID.
func (s *CatalogService) GetUser(id string) (model.User, error) {
	return s.users.GetByID(id)
}
