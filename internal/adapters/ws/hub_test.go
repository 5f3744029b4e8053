package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Chat/internal/core"
	"github.com/dkeye/Chat/internal/domain"
)

// bare connections: TrySend only touches the buffered channel, so no
// socket is needed to observe hub delivery.
func attach(h *Hub, id string) *Conn {
	conn := NewConn(nil, 8)
	h.Attach(core.ConnID(id), conn)
	return conn
}

func drain(c *Conn) [][]byte {
	var out [][]byte
	for {
		select {
		case data := <-c.send:
			out = append(out, data)
		default:
			return out
		}
	}
}

func TestHub_SendToGroupTargetsMembersOnly(t *testing.T) {
	h := NewHub()
	c1 := attach(h, "c1")
	c2 := attach(h, "c2")
	c3 := attach(h, "c3")

	h.JoinGroup("c1", "general")
	h.JoinGroup("c2", "general")
	h.JoinGroup("c3", "random")

	h.SendToGroup("general", core.NewSystemNotice("hi", 1))

	assert.Len(t, drain(c1), 1)
	assert.Len(t, drain(c2), 1)
	assert.Empty(t, drain(c3))
}

func TestHub_JoinVisibleToNextSend(t *testing.T) {
	h := NewHub()
	c1 := attach(h, "c1")

	h.SendToGroup("general", core.NewSystemNotice("before", 1))
	assert.Empty(t, drain(c1))

	h.JoinGroup("c1", "general")
	h.SendToGroup("general", core.NewSystemNotice("after", 2))
	require.Len(t, drain(c1), 1)
}

func TestHub_LeaveGroupStopsDelivery(t *testing.T) {
	h := NewHub()
	c1 := attach(h, "c1")
	h.JoinGroup("c1", "general")
	h.LeaveGroup("c1", "general")

	h.SendToGroup("general", core.NewSystemNotice("gone", 1))
	assert.Empty(t, drain(c1))
}

func TestHub_DetachRemovesGroupLeftovers(t *testing.T) {
	h := NewHub()
	c1 := attach(h, "c1")
	h.JoinGroup("c1", "general")
	h.Detach("c1")

	h.SendToGroup("general", core.NewSystemNotice("gone", 1))
	h.SendToAll(core.NewSystemNotice("all", 2))
	assert.Empty(t, drain(c1))
}

func TestHub_SendToOneAndAll(t *testing.T) {
	h := NewHub()
	c1 := attach(h, "c1")
	c2 := attach(h, "c2")

	h.SendToOne("c1", core.NewJoinAck("general"))
	require.Len(t, drain(c1), 1)
	assert.Empty(t, drain(c2))

	h.SendToAll(core.NewRoomList([]domain.Room{{ID: "general", Name: "General"}}))
	assert.Len(t, drain(c1), 1)
	assert.Len(t, drain(c2), 1)
}

func TestHub_FramesCarryEventType(t *testing.T) {
	h := NewHub()
	c1 := attach(h, "c1")

	h.SendToOne("c1", core.NewJoinAck("general"))
	frames := drain(c1)
	require.Len(t, frames, 1)

	var env core.Envelope
	require.NoError(t, json.Unmarshal(frames[0], &env))
	assert.Equal(t, core.EventJoinAck, env.Type)
}

func TestConn_TrySendBackpressure(t *testing.T) {
	c := NewConn(nil, 1)
	require.NoError(t, c.TrySend([]byte("one")))
	assert.ErrorIs(t, c.TrySend([]byte("two")), ErrBackpressure)

	c.Close()
	assert.Error(t, c.TrySend([]byte("closed")))
}
