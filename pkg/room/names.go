package room

import "sync"

// NameRegistry reserves globally unique display names.
// Check-and-reserve is atomic across concurrent callers.
type NameRegistry struct {
	mu    sync.Mutex
	names map[string]struct{}
}

// NewNameRegistry returns an empty name registry
func NewNameRegistry() *NameRegistry {
	return &NameRegistry{
		names: make(map[string]struct{}),
	}
}

// Register reserves the name. It returns false, reserving nothing, if the
// name is empty or already taken.
func (r *NameRegistry) Register(name string) bool {
	if name == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.names[name]; taken {
		return false
	}

	r.names[name] = struct{}{}
	return true
}

// Release returns the name to the pool. Releasing an unknown name is a no-op.
func (r *NameRegistry) Release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.names, name)
}
