// Package assets loads image assets off the main thread and hands them back
// once per frame.
package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-tilemap/internal/engine/texture"
	"github.com/Faultbox/midgard-tilemap/internal/logger"
)

// State is the load state of a Handle.
type State int

const (
	StatePending State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Handle refers to an image that may not be loaded yet. Its fields change
// only inside Manager.Poll, so readers on the polling goroutine need no
// locking.
type Handle struct {
	Path string

	state State
	image *image.RGBA
	err   error
}

// State returns the current load state.
func (h *Handle) State() State { return h.state }

// Image returns the decoded image, or nil unless the handle is ready.
func (h *Handle) Image() *image.RGBA { return h.image }

// Err returns the load error of a failed handle.
func (h *Handle) Err() error { return h.err }

// Ready reports whether the image is available.
func (h *Handle) Ready() bool { return h.state == StateReady }

type result struct {
	handle *Handle
	image  *image.RGBA
	err    error
}

// Manager loads images from a root directory in background goroutines.
type Manager struct {
	root    string
	cache   *Cache
	results chan result
	wg      sync.WaitGroup
	log     *zap.Logger
}

// NewManager creates a manager that resolves paths relative to root.
func NewManager(root string) *Manager {
	return &Manager{
		root:    root,
		cache:   NewCache(),
		results: make(chan result, 8),
		log:     logger.Named("assets"),
	}
}

// Resolve returns the filesystem path for an asset path.
func (m *Manager) Resolve(path string) string {
	if filepath.IsAbs(path) || m.root == "" {
		return path
	}
	return filepath.Join(m.root, path)
}

// Load returns the handle for path, starting a background load the first
// time a path is requested.
func (m *Manager) Load(path string) *Handle {
	if h, ok := m.cache.Get(path); ok {
		return h
	}

	h := &Handle{Path: path}
	m.cache.Set(path, h)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		img, err := m.read(path)
		m.results <- result{handle: h, image: img, err: err}
	}()

	m.log.Debug("asset load started", zap.String("path", path))
	return h
}

// LoadSync reads and decodes path on the calling goroutine, bypassing the
// cache.
func (m *Manager) LoadSync(path string) (*image.RGBA, error) {
	return m.read(path)
}

func (m *Manager) read(path string) (*image.RGBA, error) {
	full := m.Resolve(path)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", full, err)
	}
	return texture.DecodeImage(full, data)
}

// Poll applies finished loads and returns the handles that changed state.
// It never blocks. Call it from the thread that reads the handles.
func (m *Manager) Poll() []*Handle {
	var done []*Handle
	for {
		select {
		case r := <-m.results:
			if r.err != nil {
				r.handle.state = StateFailed
				r.handle.err = r.err
				m.log.Error("asset load failed", zap.String("path", r.handle.Path), zap.Error(r.err))
			} else {
				r.handle.state = StateReady
				r.handle.image = r.image
				b := r.image.Bounds()
				m.log.Info("asset loaded",
					zap.String("path", r.handle.Path),
					zap.Int("width", b.Dx()),
					zap.Int("height", b.Dy()),
				)
			}
			done = append(done, r.handle)
		default:
			return done
		}
	}
}

// Close waits for outstanding loads and drops the cache.
func (m *Manager) Close() {
	// Drain so no loader blocks on a full channel.
	finished := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(finished)
	}()
	for {
		select {
		case <-m.results:
		case <-finished:
			m.cache.Clear()
			return
		}
	}
}

// Stats returns cache hit and miss counts.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache maps asset paths to handles.
type Cache struct {
	data map[string]*Handle
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*Handle),
	}
}

// Get retrieves a handle from the cache.
func (c *Cache) Get(key string) (*Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return h, ok
}

// Set stores a handle in the cache.
func (c *Cache) Set(key string, h *Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = h
}

// Clear empties the cache and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*Handle)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
