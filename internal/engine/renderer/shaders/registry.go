package shaders

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Key identifies a registered shader source.
type Key string

// Stable keys for the built-in sources.
const (
	TileMapVertex   Key = "tilemap.vert"
	TileMapFragment Key = "tilemap.frag"
)

var (
	// ErrUnknownShader is returned when a key has no registered source.
	ErrUnknownShader = errors.New("unknown shader")
	// ErrShaderConflict is returned when a key is registered twice with
	// different sources.
	ErrShaderConflict = errors.New("shader already registered")
)

// Registry maps keys to shader sources. Materials refer to shaders by key
// and resolve the source when their program is built.
type Registry struct {
	mu      sync.RWMutex
	sources map[Key]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[Key]string)}
}

// NewBuiltinRegistry creates a registry holding the embedded sources.
func NewBuiltinRegistry() (*Registry, error) {
	r := NewRegistry()
	if err := r.Register(TileMapVertex, TileMapVertexShader); err != nil {
		return nil, err
	}
	if err := r.Register(TileMapFragment, TileMapFragmentShader); err != nil {
		return nil, err
	}
	return r, nil
}

// Register binds src to key. Registering identical source again is a no-op.
func (r *Registry) Register(key Key, src string) error {
	if key == "" {
		return errors.New("empty shader key")
	}
	if src == "" {
		return fmt.Errorf("shader %s: empty source", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sources[key]; ok {
		if existing == src {
			return nil
		}
		return fmt.Errorf("shader %s: %w", key, ErrShaderConflict)
	}
	r.sources[key] = src
	return nil
}

// Source returns the source registered under key.
func (r *Registry) Source(key Key) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src, ok := r.sources[key]
	if !ok {
		return "", fmt.Errorf("shader %s: %w", key, ErrUnknownShader)
	}
	return src, nil
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]Key, 0, len(r.sources))
	for k := range r.sources {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
