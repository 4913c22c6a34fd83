// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrProjectNotFound signals a missing project link for a user.
	ErrProjectNotFound = errors.New("project not found")
	// ErrEmailExists signals an email uniqueness conflict on user creation.
	ErrEmailExists = errors.New("email already in use")
	// ErrForbidden signals that the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")
)
