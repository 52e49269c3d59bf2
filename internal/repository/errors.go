// Package repository implements the data access layer: thin per-entity
// accessors over database/sql with no business rules.  Sentinel errors
// defined here let the service and handler layers distinguish failure
// modes without inspecting driver errors.
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot proceed because
// of dependent records, such as removing a ticket offer that orders
// still reference.  Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInsufficientTickets is returned when the conditional inventory
// decrement matches no row, i.e. the requested quantity exceeds the
// remaining ticket count at the moment of the update.
var ErrInsufficientTickets = errors.New("insufficient tickets")

// ErrEmailExists is returned when registering a user with an email that
// is already taken.
var ErrEmailExists = errors.New("email already exists")
