// Package app owns the shared mutable state of the relay: the
// session registry and the room directory. Both are plain maps
// behind an RWMutex, injected by handle into the presence layer.
package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Chat/internal/core"
	"github.com/dkeye/Chat/internal/domain"
)

// Registry is the authoritative map from live connection to session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.ConnID]core.Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[core.ConnID]core.Session)}
}

// Add inserts or replaces the session under its connection id.
func (r *Registry) Add(sess core.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.Conn] = sess
	log.Info().Str("module", "app.registry").Str("conn", string(sess.Conn)).Str("user", sess.Identity.Username).Msg("session added")
}

// Remove is a no-op for unknown ids; disconnect cleanup may race
// with other cleanup paths.
func (r *Registry) Remove(conn core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, conn)
	log.Info().Str("module", "app.registry").Str("conn", string(conn)).Msg("session removed")
}

func (r *Registry) Get(conn core.ConnID) (core.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[conn]
	return sess, ok
}

// SetRoom replaces the session with one pointing at the given room
// (empty means no room). Returns false for unknown sessions.
func (r *Registry) SetRoom(conn core.ConnID, room domain.RoomID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[conn]
	if !ok {
		return false
	}
	sess.Room = room
	r.sessions[conn] = sess
	return true
}

// All returns a snapshot of every live session, order unspecified.
func (r *Registry) All() []core.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, sess)
	}
	return out
}

// MembersOf is the membership view: identities of sessions currently
// in the room, recomputed at call time and never cached.
func (r *Registry) MembersOf(room domain.RoomID) []domain.Identity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Identity, 0, len(r.sessions))
	for _, sess := range r.sessions {
		if sess.Room == room {
			out = append(out, sess.Identity)
		}
	}
	return out
}
