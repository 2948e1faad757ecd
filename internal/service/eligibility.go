package service

import "github.com/iliyamo/hotel-room-booking/internal/model"

// Verdict is the outcome of the ticket eligibility check.
type Verdict int

const (
	// Allowed means the ticket holder may occupy a room.
	Allowed Verdict = iota
	// Denied means the ticket holder may not book at all.
	Denied
)

// EvaluateTicket decides whether a ticket entitles its holder to a
// hotel room: the ticket must be paid, include a hotel stay and be
// for in-person attendance.  Any other combination denies.  The
// function is pure and is shared by the create and the room-change
// flows so the rule can never drift between them.
func EvaluateTicket(t *model.Ticket) Verdict {
	if t.Status != model.TicketPaid {
		return Denied
	}
	if t.Type.IsRemote || !t.Type.IncludesHotel {
		return Denied
	}
	return Allowed
}

// HasCapacity reports whether a room with the given capacity can take
// one more booking.  Occupancy equal to capacity means the room is
// full.
func HasCapacity(capacity uint32, occupancy int) bool {
	return occupancy < int(capacity)
}
