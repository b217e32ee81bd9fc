package model

import "github.com/google/uuid"

// User is a device-scoped identity. The id is an opaque token generated once
// per device and never verified; username is display-only and mutable.
type User struct {
	ID       uuid.UUID
	Username string
}
