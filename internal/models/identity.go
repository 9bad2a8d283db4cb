package models

import "github.com/google/uuid"

// Identity is the authenticated caller a request acts on behalf of.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}
