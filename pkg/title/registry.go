package title

import "sync"

// Registry records which titles are known to exist. It replaces the
// process-wide existence cache some wiki toolkits keep: callers construct
// one, populate it from whatever source they trust, and hand it to the
// components that need existence checks.
//
// Keys are canonical prefixed db-keys (Title.PrefixedDBKey).
type Registry interface {
	// Known reports whether key exists. The second return is false when
	// the registry has no record for key.
	Known(key string) (exists bool, ok bool)

	// SetKnown records the existence of key.
	SetKnown(key string, exists bool)

	// Forget drops any record for key.
	Forget(key string)
}

// MemoryRegistry is an in-memory Registry safe for concurrent use.
type MemoryRegistry struct {
	mu sync.RWMutex
	m  map[string]bool
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{m: make(map[string]bool)}
}

// Known implements Registry.
func (r *MemoryRegistry) Known(key string) (bool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exists, ok := r.m[key]
	return exists, ok
}

// SetKnown implements Registry.
func (r *MemoryRegistry) SetKnown(key string, exists bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[key] = exists
}

// Forget implements Registry.
func (r *MemoryRegistry) Forget(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, key)
}

// Len returns the number of recorded titles.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}
