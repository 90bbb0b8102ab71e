package repository

import "github.com/google/uuid"

const (
	eventPrefix       = "evt-"
	userPrefix        = "usr-"
	reservationPrefix = "res-"
)

// NewID returns prefix followed by a version 7 UUID: 48 bits of Unix
// milliseconds, then random bits. IDs sort by creation time across
// milliseconds and are unique in practice, but are not secrets.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + id.String()
}
