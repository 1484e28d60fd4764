// Package repository defines the persistence boundary for user records.
// Sentinel errors let handlers distinguish failure scenarios without
// depending on database/sql: ErrNotFound maps to HTTP 404 and
// ErrUsernameExists to HTTP 409.
package repository

import "errors"

// ErrNotFound is returned when no user matches the requested id or
// username.
var ErrNotFound = errors.New("user not found")

// ErrUsernameExists is returned when a create collides with an existing
// username. Usernames are unique at creation and never silently
// overwritten.
var ErrUsernameExists = errors.New("username already exists")
