package domain

import "github.com/google/uuid"

// ID is the opaque identifier shared by every concept. Links are keyed by
// (user ID, item ID) pairs regardless of which concept owns the item, so all
// concepts must mint ids from this single namespace.
type ID string

// NewID mints a fresh identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// IsZero reports whether the id is unset. An unset viewer id means the
// request is anonymous.
func (i ID) IsZero() bool {
	return i == ""
}

func (i ID) String() string {
	return string(i)
}
