package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Chat/internal/core"
	"github.com/dkeye/Chat/internal/domain"
)

// Hub implements core.Gateway over live websocket connections.
// Group maps are mutated synchronously under the hub mutex, so a
// JoinGroup is visible to the very next SendToGroup.
type Hub struct {
	mu     sync.RWMutex
	conns  map[core.ConnID]*Conn
	groups map[domain.RoomID]map[core.ConnID]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[core.ConnID]*Conn),
		groups: make(map[domain.RoomID]map[core.ConnID]struct{}),
	}
}

// Attach registers a live connection with the hub.
func (h *Hub) Attach(id core.ConnID, conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = conn
	log.Info().Str("module", "ws.hub").Str("conn", string(id)).Msg("attached")
}

// Detach removes the connection and any group membership left over
// from a partially completed transition.
func (h *Hub) Detach(id core.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
	for room, members := range h.groups {
		delete(members, id)
		if len(members) == 0 {
			delete(h.groups, room)
		}
	}
	log.Info().Str("module", "ws.hub").Str("conn", string(id)).Msg("detached")
}

func (h *Hub) JoinGroup(conn core.ConnID, room domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.groups[room] == nil {
		h.groups[room] = make(map[core.ConnID]struct{})
	}
	h.groups[room][conn] = struct{}{}
}

func (h *Hub) LeaveGroup(conn core.ConnID, room domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.groups[room]; ok {
		delete(members, conn)
		if len(members) == 0 {
			delete(h.groups, room)
		}
	}
}

func (h *Hub) SendToGroup(room domain.RoomID, ev core.Event) {
	data, ok := marshal(ev)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id := range h.groups[room] {
		h.trySend(id, data, ev.Kind())
	}
}

func (h *Hub) SendToOne(conn core.ConnID, ev core.Event) {
	data, ok := marshal(ev)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.trySend(conn, data, ev.Kind())
}

func (h *Hub) SendToAll(ev core.Event) {
	data, ok := marshal(ev)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id := range h.conns {
		h.trySend(id, data, ev.Kind())
	}
}

// trySend enqueues fire-and-forget; dropped frames are logged and
// forgotten. Callers hold at least the read lock.
func (h *Hub) trySend(id core.ConnID, data []byte, kind core.EventType) {
	conn, ok := h.conns[id]
	if !ok {
		return
	}
	if err := conn.TrySend(data); err != nil {
		log.Warn().Err(err).Str("module", "ws.hub").Str("conn", string(id)).Str("event", string(kind)).Msg("send dropped")
	}
}

func marshal(ev core.Event) ([]byte, bool) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "ws.hub").Str("event", string(ev.Kind())).Msg("marshal event")
		return nil, false
	}
	return data, true
}
