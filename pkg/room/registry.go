package room

import (
	"errors"
	"sync"
)

// ErrRoomExists is an error when creating a room whose name is taken
var ErrRoomExists = errors.New("room already exists")

// Registry is the process-wide room lookup table. Rooms are never removed;
// a finished room stays listed until the process exits.
//
// The registry lock is only held for the duration of a lookup or insert,
// never while a room's own lock is acquired.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	order []string
	opts  Options
}

// NewRegistry returns an empty registry. The options are applied to every
// room it creates.
func NewRegistry(opts Options) *Registry {
	opts.applyDefaults()

	return &Registry{
		rooms: make(map[string]*Room),
		opts:  opts,
	}
}

// Create makes a new room, immediately visible to Get and List.
// It returns ErrRoomExists if the name is taken.
func (r *Registry) Create(name string) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[name]; exists {
		return nil, ErrRoomExists
	}

	rm := newRoom(name, r.opts)
	r.rooms[name] = rm
	r.order = append(r.order, name)

	return rm, nil
}

// Get returns the named room
func (r *Registry) Get(name string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[name]
	return rm, ok
}

// List returns a point-in-time snapshot of room names in creation order
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.order...)
}

// Infos returns a point-in-time snapshot of every room for the status API.
// Room locks are taken one at a time after the registry lock is released.
func (r *Registry) Infos() []Info {
	r.mu.Lock()
	rooms := make([]*Room, 0, len(r.order))
	for _, name := range r.order {
		rooms = append(rooms, r.rooms[name])
	}
	r.mu.Unlock()

	infos := make([]Info, len(rooms))
	for i, rm := range rooms {
		infos[i] = rm.Info()
	}

	return infos
}
