package app

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Chat/internal/domain"
)

// Directory is the authoritative map from room id to room metadata.
// Purely descriptive; it never tracks membership. Rooms persist for
// the process lifetime once registered.
type Directory struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]domain.Room
}

func NewDirectory() *Directory {
	return &Directory{rooms: make(map[domain.RoomID]domain.Room)}
}

// Register upserts; re-registering the same id overwrites metadata.
func (d *Directory) Register(room domain.Room) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rooms[room.ID] = room
	log.Info().Str("module", "app.directory").Str("room", string(room.ID)).Str("name", room.Name).Msg("room registered")
}

func (d *Directory) Get(id domain.RoomID) (domain.Room, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.rooms[id]
	return room, ok
}

// All returns the directory snapshot sorted by id, so room_list
// payloads are deterministic.
func (d *Directory) All() []domain.Room {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.Room, 0, len(d.rooms))
	for _, room := range d.rooms {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
