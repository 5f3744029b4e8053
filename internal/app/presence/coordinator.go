// Package presence orchestrates join/leave transitions and message
// fanout over the registry, directory and gateway it is handed.
package presence

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Chat/internal/app"
	"github.com/dkeye/Chat/internal/core"
	"github.com/dkeye/Chat/internal/domain"
)

// ReasonUnknownRoom is the unicast rejection for a join targeting a
// room id absent from the directory.
const ReasonUnknownRoom = "unknown_room"

// Coordinator is the state machine per session:
// admitted (no room) -> in room -> admitted -> ... -> disconnected.
//
// One mutex serializes every transition end to end, so a membership
// view computed inside a step can never be stale with respect to a
// concurrent join/leave, and a session is never visible in two rooms.
// Nothing under the mutex blocks on I/O: gateway sends only enqueue.
type Coordinator struct {
	mu       sync.Mutex
	registry *app.Registry
	rooms    *app.Directory
	gateway  core.Gateway

	// AnnounceRooms pushes a fresh room_list to every connection
	// when a room is (re)registered after startup.
	AnnounceRooms bool
}

func NewCoordinator(registry *app.Registry, rooms *app.Directory, gateway core.Gateway) *Coordinator {
	return &Coordinator{registry: registry, rooms: rooms, gateway: gateway}
}

// Admit creates the session for a verified connection and unicasts
// the room list snapshot to it. Admission alone is not presence:
// nobody else is notified.
func (c *Coordinator) Admit(conn core.ConnID, identity domain.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.registry.Add(core.Session{Conn: conn, Identity: identity})
	c.gateway.SendToOne(conn, core.NewRoomList(c.rooms.All()))
	log.Info().Str("module", "presence").Str("conn", string(conn)).Str("user", identity.Username).Msg("admitted")
}

// Join moves the session into the room as one atomic leave-then-enter.
// Joining an unregistered room is rejected with an error event and no
// state change. The join acknowledgement is unicast before the joined
// broadcast goes out: the joining client always sees its own ack first.
func (c *Coordinator) Join(conn core.ConnID, room domain.RoomID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.registry.Get(conn)
	if !ok {
		return
	}
	if _, ok := c.rooms.Get(room); !ok {
		log.Warn().Str("module", "presence").Str("conn", string(conn)).Str("room", string(room)).Msg("join rejected: unknown room")
		c.gateway.SendToOne(conn, core.NewErrorEvent(ReasonUnknownRoom))
		return
	}

	c.leaveLocked(sess)

	c.gateway.JoinGroup(conn, room)
	c.registry.SetRoom(conn, room)

	c.gateway.SendToOne(conn, core.NewJoinAck(room))

	members := c.registry.MembersOf(room)
	c.gateway.SendToGroup(room, core.NewPresenceChanged(room, members, sess.Identity, core.PresenceJoined))
	c.gateway.SendToGroup(room, core.NewSystemNotice(fmt.Sprintf("%s has joined the room", sess.Identity.Username), time.Now().UnixMilli()))
	log.Info().Str("module", "presence").Str("conn", string(conn)).Str("room", string(room)).Msg("joined")
}

// Disconnect runs the leave half of Join with no subsequent enter and
// destroys the session. Safe against connections that were never
// admitted or are already gone.
func (c *Coordinator) Disconnect(conn core.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.registry.Get(conn)
	if !ok {
		return
	}
	c.leaveLocked(sess)
	c.registry.Remove(conn)
	log.Info().Str("module", "presence").Str("conn", string(conn)).Msg("disconnected")
}

// Relay fans a chat message out to every member of the sender's
// current room, sender included (local echo rides the broadcast).
// A session not in a room is a silent no-op.
func (c *Coordinator) Relay(conn core.ConnID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.registry.Get(conn)
	if !ok || !sess.InRoom() {
		return
	}

	ts := time.Now().UnixMilli()
	ev := core.NewMessageReceived(messageID(ts), sess.Identity, text, ts)
	c.gateway.SendToGroup(sess.Room, ev)
	log.Debug().Str("module", "presence").Str("conn", string(conn)).Str("room", string(sess.Room)).Msg("message relayed")
}

// RegisterRoom is the administrative seeding path. With AnnounceRooms
// set, already-connected clients get a fresh room_list push.
func (c *Coordinator) RegisterRoom(room domain.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rooms.Register(room)
	if c.AnnounceRooms {
		c.gateway.SendToAll(core.NewRoomList(c.rooms.All()))
	}
}

// leaveLocked detaches the session from its current room, if any:
// transport group-leave and registry update in the same step, then a
// presence notification carrying the post-leave membership view.
// Callers hold the coordinator mutex.
func (c *Coordinator) leaveLocked(sess core.Session) {
	if !sess.InRoom() {
		return
	}
	prev := sess.Room
	c.gateway.LeaveGroup(sess.Conn, prev)
	c.registry.SetRoom(sess.Conn, "")

	members := c.registry.MembersOf(prev)
	c.gateway.SendToGroup(prev, core.NewPresenceChanged(prev, members, sess.Identity, core.PresenceLeft))
	c.gateway.SendToGroup(prev, core.NewSystemNotice(fmt.Sprintf("%s has left the room", sess.Identity.Username), time.Now().UnixMilli()))
	log.Info().Str("module", "presence").Str("conn", string(sess.Conn)).Str("room", string(prev)).Msg("left room")
}

// messageID is collision-resistant enough for a best-effort relay:
// a random token plus the send timestamp.
func messageID(ts int64) string {
	return fmt.Sprintf("%s%d", uuid.NewString(), ts)
}
