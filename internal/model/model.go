// Package model defines the core domain types for the reservation ledger.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Category is the closed set of event kinds.
type Category string

const (
	CategoryConcert    Category = "CONCERT"
	CategoryConference Category = "CONFERENCE"
	CategoryWorkshop   Category = "WORKSHOP"
	CategorySport      Category = "SPORT"
	CategoryTheater    Category = "THEATER"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryConcert,
	CategoryConference,
	CategoryWorkshop,
	CategorySport,
	CategoryTheater,
}

// ParseCategory matches s against the known categories, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Categories {
		if string(c) == want {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
	// StatusPending is part of the enumeration but nothing produces it yet.
	StatusPending ReservationStatus = "PENDING"
)

// Event represents a bookable event with a fixed seat capacity.
type Event struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Date           time.Time `json:"date"`
	Location       string    `json:"location"`
	MaxCapacity    int       `json:"max_capacity"`
	AvailableSeats int       `json:"available_seats"`
	Category       Category  `json:"category"`
	Price          float64   `json:"price"`
}

// Booked returns the number of seats held by confirmed reservations.
func (e *Event) Booked() int {
	return e.MaxCapacity - e.AvailableSeats
}

// IsFull returns true when no seats remain.
func (e *Event) IsFull() bool {
	return e.AvailableSeats <= 0
}

// User is someone who can hold reservations.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Reservation represents seats held by a user for an event.
type Reservation struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	EventID   string            `json:"event_id"`
	Seats     int               `json:"seats"`
	CreatedAt time.Time         `json:"created_at"`
	Status    ReservationStatus `json:"status"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	MaxCapacity int       `json:"max_capacity"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
}

// CreateUserRequest is the payload for creating a new user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateReservationRequest is the payload for booking seats.
type CreateReservationRequest struct {
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
	Seats   int    `json:"seats"`
}

// FillRateResponse reports how much of an event's capacity is booked.
type FillRateResponse struct {
	EventID  string  `json:"event_id"`
	FillRate float64 `json:"fill_rate"`
}

// Stats aggregates ledger-wide figures.
type Stats struct {
	ActiveReservations int     `json:"active_reservations"`
	TotalRevenue       float64 `json:"total_revenue"`
}

// ErrorResponse is a standard JSON error envelope. Available is only set
// when a booking was rejected for lack of seats.
type ErrorResponse struct {
	Error     string `json:"error"`
	Available *int   `json:"available,omitempty"`
}

// BookingResult summarises the outcome of a single reservation attempt.
// Used in the concurrent test harness.
type BookingResult struct {
	UserID string
	Seats  int
	Err    error
}
