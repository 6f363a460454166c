package model

import "github.com/google/uuid"

// IDFunc returns a fresh identifier that is unique for the life of the process.
type IDFunc func() string

// NewID is the default IDFunc. Random UUIDs avoid the collisions a
// timestamp-derived ID would hit under rapid successive creates.
func NewID() string {
	return uuid.NewString()
}
