package types

import (
	"time"

	"github.com/google/uuid"
)

// NewID generates a UUIDv7 string identifier for attached domain objects.
// Time-ordered IDs keep insertion order and identity order aligned in the
// in-memory store. Panics on clock regression (uuid.Must); acceptable for
// ID generation.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ParseID validates a string identifier produced by NewID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseID(s string) (string, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return s, nil
}

// IDTime extracts the timestamp embedded in a UUIDv7 identifier.
// Returns zero time for invalid or non-v7 IDs; caller should check IsZero().
func IDTime(id string) time.Time {
	u, err := uuid.Parse(id)
	if err != nil || u.Version() != 7 {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
