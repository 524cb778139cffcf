// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between failure scenarios without
// string matching. For example, ErrForbidden indicates that the
// current user may not touch a resource owned by someone else, while
// the booking errors distinguish the three ways a seat request can
// be refused.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on
// a resource they do not own. Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because
// of existing state, such as joining a group twice. Handlers
// translate this into 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by user creation when the email is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// ErrAlreadyBooked is returned when a user tries to book an event
// they already hold a booking for.
var ErrAlreadyBooked = errors.New("already booked")

// ErrEventFull is returned when an event has reached its
// max_participants capacity.
var ErrEventFull = errors.New("event is full")

// ErrHostBooking is returned when a host tries to book a seat in
// their own event.
var ErrHostBooking = errors.New("host cannot book own event")

// ErrAlreadyResolved is returned when a moderator attempts to resolve
// a report that has already left the pending state. Resolution is
// terminal.
var ErrAlreadyResolved = errors.New("report already resolved")
