package repository

import (
	"fmt"

	"github.com/Shivanand-hulikatti/reservation-ledger/internal/model"
)

// EventRepository handles storage for events.
type EventRepository struct {
	store *Store
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

// Create appends a new event with a generated ID and every seat available.
func (r *EventRepository) Create(req model.CreateEventRequest, category model.Category) model.Event {
	event := &model.Event{
		ID:             NewID(eventPrefix),
		Name:           req.Name,
		Date:           req.Date,
		Location:       req.Location,
		MaxCapacity:    req.MaxCapacity,
		AvailableSeats: req.MaxCapacity,
		Category:       category,
		Price:          req.Price,
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventIdx[event.ID] = len(s.events)
	s.events = append(s.events, event)
	return *event
}

// List returns a copy of all events in insertion order.
func (r *EventRepository) List() []model.Event {
	return r.Filter(func(model.Event) bool { return true })
}

// Filter returns copies of the events matching keep, in insertion order.
// The result is never nil.
func (r *EventRepository) Filter(keep func(model.Event) bool) []model.Event {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	events := make([]model.Event, 0, len(r.store.events))
	for _, e := range r.store.events {
		if keep(*e) {
			events = append(events, *e)
		}
	}
	return events
}

// GetByID returns a copy of a single event or ErrNotFound.
func (r *EventRepository) GetByID(id string) (model.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.eventLocked(id)
	if !ok {
		return model.Event{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
	}
	return *e, nil
}

// UserRepository handles storage for users.
type UserRepository struct {
	store *Store
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create appends a new user. Emails are not checked for format or uniqueness.
func (r *UserRepository) Create(req model.CreateUserRequest) model.User {
	user := &model.User{
		ID:    NewID(userPrefix),
		Name:  req.Name,
		Email: req.Email,
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userIdx[user.ID] = len(s.users)
	s.users = append(s.users, user)
	return *user
}

// List returns a copy of all users in insertion order.
func (r *UserRepository) List() []model.User {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]model.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		users = append(users, *u)
	}
	return users
}

// GetByID returns a single user or ErrNotFound.
func (r *UserRepository) GetByID(id string) (model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.userLocked(id)
	if !ok {
		return model.User{}, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	return *u, nil
}
