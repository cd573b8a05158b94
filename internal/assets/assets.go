// Package assets handles map asset loading and caching.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// ErrNotFound is returned when no root contains the requested asset.
var ErrNotFound = errors.New("asset not found")

// Manager loads asset files from one or more roots. Roots added later take
// priority, so a user directory can override bundled maps.
type Manager struct {
	roots []fs.FS
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a directory root to the manager.
func (m *Manager) AddDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("opening resource dir %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("resource path %s is not a directory", path)
	}
	m.AddFS(os.DirFS(path))
	return nil
}

// AddFS adds an arbitrary filesystem root (embedded assets, tests).
func (m *Manager) AddFS(fsys fs.FS) {
	m.mu.Lock()
	m.roots = append(m.roots, fsys)
	m.mu.Unlock()
}

// Load returns the bytes of a file, serving repeated requests from the cache.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.roots[i], name)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Evict drops cached bytes so the next Load reads the file again.
func (m *Manager) Evict(names ...string) {
	for _, name := range names {
		m.cache.Delete(name)
	}
}

// Close drops all roots and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.cache.Clear()
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Delete removes an item from cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
