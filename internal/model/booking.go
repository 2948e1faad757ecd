package model

import "time"

// Booking assigns a user to a hotel room.  A user is expected to hold
// one active booking at a time; lookups by user return the first
// booking found.  Bookings are never deleted, only moved between
// rooms.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – room currently occupied.
//  UserID    – occupant.
//  CreatedAt – creation timestamp.
//  UpdatedAt – bumped whenever the booking changes room.
type Booking struct {
	ID        uint64    // bookings.id
	RoomID    uint64    // bookings.room_id
	UserID    uint64    // bookings.user_id
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}
