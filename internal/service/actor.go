package service

import "github.com/google/uuid"

// Actor identifies the authenticated caller for authorization decisions made
// inside the service layer (ownership, role-sensitive fields).
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

// Owns reports whether the actor is the given user, or an admin.
func (a Actor) Owns(userID uuid.UUID) bool {
	return a.IsAdmin || a.ID == userID
}
