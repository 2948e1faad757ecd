package model

import "time"

// Hotel represents a partner hotel offered to event attendees.
// The catalog is maintained by an upstream admin tool; this service
// only reads it.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the hotel.
//  Image     – URL of the hotel's cover image.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hotel struct {
	ID        uint64    // hotels.id
	Name      string    // hotels.name
	Image     string    // hotels.image
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}

// Room is a bookable room within a hotel.  Capacity bounds how many
// bookings may point at the room at any time; the booking layer is
// responsible for never exceeding it.
//
// Fields:
//  ID        – primary key identifier.
//  HotelID   – hotel this room belongs to.
//  Name      – room label (e.g. "1020").
//  Capacity  – maximum number of simultaneous occupants, always >= 1.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Room struct {
	ID        uint64    // rooms.id
	HotelID   uint64    // rooms.hotel_id
	Name      string    // rooms.name
	Capacity  uint32    // rooms.capacity
	CreatedAt time.Time // rooms.created_at
	UpdatedAt time.Time // rooms.updated_at
}
