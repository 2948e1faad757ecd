// Package queue defines message payloads exchanged over the message
// broker along with the publisher and the background consumer.
package queue

// Booking event actions.
const (
	ActionCreated    = "created"
	ActionRoomChange = "room_change"
)

// BookingEvent is published whenever a booking is created or moved to
// another room. It carries enough information for downstream
// consumers to log, notify, or feed analytics without querying the
// primary database.
type BookingEvent struct {
	EventID    string `json:"event_id"`
	Action     string `json:"action"`
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	RoomID     uint64 `json:"room_id"`
	RoomName   string `json:"room_name"`
	HotelID    uint64 `json:"hotel_id"`
	OccurredAt string `json:"occurred_at"`
}
