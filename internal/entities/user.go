// Package entities contains core business entities.
package entities

import "time"

// User is a domain representation of an account. The ID is assigned by the
// store on creation and is immutable afterwards; timestamps are stamped by
// the store on insert/update and never set by callers.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         *string
	Projects     []*ProjectLink
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Equal reports entity identity: two users are the same entity only when
// both carry a store-assigned ID and the IDs match. Users without an ID yet
// are never equal by value.
func (u *User) Equal(other *User) bool {
	if u == other {
		return true
	}
	if u == nil || other == nil {
		return false
	}
	return u.ID != 0 && u.ID == other.ID
}
