package service

import "github.com/google/uuid"

// Identity is the caller resolved from the bearer token, once per request.
// The zero value is an anonymous caller.
type Identity struct {
	UserID uuid.UUID
}

// NewIdentity returns the identity of userID
func NewIdentity(userID uuid.UUID) Identity {
	return Identity{UserID: userID}
}

// Anonymous reports whether no user is attached
func (i Identity) Anonymous() bool {
	return i.UserID == uuid.Nil
}

func requireIdentity(i Identity) error {
	if i.Anonymous() {
		return ErrUnauthorized
	}
	return nil
}
