// Package repository defines sentinel error values reused across the
// individual repositories. These let higher layers such as the booking
// service and the handlers distinguish failure scenarios with
// errors.Is instead of inspecting driver errors. For example,
// ErrRoomFull signals that a write was refused because the target
// room already holds as many bookings as its capacity allows.
package repository

import "errors"

// ErrRoomNotFound is returned when a room lookup matches no row.
// Handlers should translate this into an HTTP 404 response.
var ErrRoomNotFound = errors.New("room not found")

// ErrHotelNotFound is returned when a hotel lookup matches no row.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrBookingNotFound is returned when a booking lookup matches no
// row, either by user or by primary key.
var ErrBookingNotFound = errors.New("booking not found")

// ErrEnrollmentNotFound is returned when a user has no enrollment
// record. Booking flows treat this as a hard stop.
var ErrEnrollmentNotFound = errors.New("enrollment not found")

// ErrTicketNotFound is returned when an enrollment has no ticket.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrRoomFull is returned when a booking mutation would push a room
// past its capacity. The check runs inside the same transaction that
// performs the write, so the verdict is authoritative even under
// concurrent requests. Handlers should translate this into 403.
var ErrRoomFull = errors.New("room full")
