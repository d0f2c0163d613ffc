// Package assets handles texture loading and caching.
//
// Textures are looked up by name in user directories first, newest first,
// then in the textures embedded in the binary.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Faultbox/globe/internal/engine/texture"
	"github.com/Faultbox/globe/pkg/encoding"
)

//go:embed textures/*.txt
var builtin embed.FS

// Built-in texture names.
const (
	EarthDay   = "earth_day.txt"
	EarthNight = "earth_night.txt"
)

// EarthPalette is the character palette of the built-in Earth textures,
// darkest first.
const EarthPalette = " .:;',wioOgLXHWYV@"

// Builtin returns the embedded textures as a file system.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "textures")
	if err != nil {
		panic(err)
	}
	return sub
}

// Manager handles texture loading from directories and the embedded set.
type Manager struct {
	format texture.CharFormat
	dirs   []fs.FS
	cache  *Cache
	mu     sync.RWMutex
}

// NewManager creates a manager that interprets character textures with
// palette. An empty palette means EarthPalette.
func NewManager(palette string) *Manager {
	if palette == "" {
		palette = EarthPalette
	}
	return &Manager{
		format: texture.CharFormat{Palette: []rune(palette)},
		cache:  NewCache(),
	}
}

// Palette returns the palette used for character textures.
func (m *Manager) Palette() []rune { return m.format.Palette }

// SetCharset sets the encoding of character texture files outside the
// built-in set. Cached textures are dropped.
func (m *Manager) SetCharset(name string) error {
	if _, err := encoding.Lookup(name); err != nil {
		return err
	}
	m.mu.Lock()
	m.format.Charset = name
	m.mu.Unlock()
	m.cache.Clear()
	return nil
}

// AddDir adds a texture directory. Directories are searched in reverse
// order (last added = highest priority).
func (m *Manager) AddDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("adding texture dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding texture dir: %s is not a directory", path)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, os.DirFS(path))
	m.mu.Unlock()
	return nil
}

// Load returns the named texture. Names containing a path separator, or
// naming an existing file, are read from disk directly.
func (m *Manager) Load(name string) (*texture.Texture, error) {
	if t, ok := m.cache.Get(name); ok {
		return t, nil
	}

	t, err := m.load(name)
	if err != nil {
		return nil, err
	}
	m.cache.Set(name, t)
	return t, nil
}

func (m *Manager) load(name string) (*texture.Texture, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if filepath.IsAbs(name) || filepath.Base(name) != name {
		return texture.LoadFile(name, m.format)
	}
	if _, err := os.Stat(name); err == nil {
		return texture.LoadFile(name, m.format)
	}

	for i := len(m.dirs) - 1; i >= 0; i-- {
		t, err := texture.LoadFS(m.dirs[i], name, m.format)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("texture %s: %w", name, err)
		}
	}

	t, err := texture.LoadFS(Builtin(), name, texture.CharFormat{Palette: []rune(EarthPalette)})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("texture not found: %s", name)
		}
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}
	return t, nil
}

// Close forgets all directories and cached textures.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for decoded textures.
type Cache struct {
	data map[string]*texture.Texture
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*texture.Texture),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*texture.Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return t, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, t *texture.Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = t
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*texture.Texture)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
