// Package core holds the transport-agnostic types of the relay:
// sessions, the closed event set, and the gateway capability the
// presence layer is written against.
package core

import "github.com/dkeye/Chat/internal/domain"

// ConnID is assigned by the transport and stable for the
// connection's lifetime.
type ConnID string

// Session is the server-side state for one live, authenticated
// connection. Stored by value; updates go through the registry with
// replace semantics, never in-place.
type Session struct {
	Conn     ConnID
	Identity domain.Identity
	// Room is the session's current room, empty when not in one.
	// At most one room at a time; mutated only by the presence
	// coordinator.
	Room domain.RoomID
}

// InRoom reports whether the session currently belongs to a room.
func (s Session) InRoom() bool { return s.Room != "" }
