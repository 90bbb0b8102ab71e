package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested user, event, or reservation does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidArgument is returned when a seat count is zero or negative.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrCapacityExceeded is returned when an event cannot fit the requested seats.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// CapacityError reports a rejected booking together with the seats that
// were still available when it was rejected.
type CapacityError struct {
	EventID   string
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("event %s: requested %d seats, available: %d", e.EventID, e.Requested, e.Available)
}

// Unwrap lets errors.Is match ErrCapacityExceeded.
func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
