package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches the query.
	// Cross-owner access yields the same error as a genuinely missing
	// row, so callers cannot distinguish the two cases.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned by the auth capability for a
	// rejected email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned on signup when the email is already
	// registered.
	ErrEmailTaken = errors.New("email is already taken")

	// ErrEmptyName is a local validation decline: a required name
	// trimmed to the empty string. No network call is made.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrNoRoutine is a local validation decline: an exercise operation
	// against a routine the client has not loaded.
	ErrNoRoutine = errors.New("no routine selected")
)
