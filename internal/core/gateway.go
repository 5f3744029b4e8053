package core

import "github.com/dkeye/Chat/internal/domain"

// Gateway abstracts the transport's multicast capability.
// Owned by the adapter; the presence layer only calls it.
//
// Contract: a JoinGroup is visible to the very next SendToGroup for
// the same room, and SendToGroup reaches exactly the connections in
// the group at call time. Sends are fire-and-forget; slow consumers
// are the transport's concern.
type Gateway interface {
	JoinGroup(conn ConnID, room domain.RoomID)
	LeaveGroup(conn ConnID, room domain.RoomID)
	SendToGroup(room domain.RoomID, ev Event)
	SendToOne(conn ConnID, ev Event)
	SendToAll(ev Event)
}
