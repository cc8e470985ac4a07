package level

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

//go:embed levels.json
var defaultLevels []byte

// DefaultCacheSize is the number of validated levels kept by a Catalog.
const DefaultCacheSize = 8

// Source supplies levels by index.
type Source interface {
	// Count returns the number of levels available.
	Count() int
	// Level returns the validated level at index.
	Level(index int) (*Level, error)
}

// Catalog is a Source backed by a JSON level pack. Levels are validated on
// first access and kept in an LRU cache.
type Catalog struct {
	raw []json.RawMessage

	mu    sync.Mutex
	cache *simplelru.LRU
}

type container struct {
	Levels []json.RawMessage `json:"levels"`
}

// Parse reads a level pack. Individual levels are only validated when requested.
func Parse(data []byte, cacheSize int) (*Catalog, error) {
	var c container
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(c.Levels) == 0 {
		return nil, fmt.Errorf("%w: no levels", ErrMalformed)
	}

	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := simplelru.NewLRU(cacheSize, nil)
	if err != nil {
		return nil, fmt.Errorf("creating level cache: %w", err)
	}

	return &Catalog{raw: c.Levels, cache: cache}, nil
}

// LoadFile reads a level pack from disk.
func LoadFile(path string, cacheSize int) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level pack: %w", err)
	}
	return Parse(data, cacheSize)
}

// Default returns the level pack built into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultLevels, DefaultCacheSize)
}

// Count returns the number of levels in the pack
func (c *Catalog) Count() int {
	return len(c.raw)
}

// Level returns the validated level at index.
func (c *Catalog) Level(index int) (*Level, error) {
	if index < 0 || index >= len(c.raw) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrLevelIndex, index, len(c.raw))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache.Get(index); ok {
		return cached.(*Level), nil
	}

	lvl, err := parse(index, c.raw[index])
	if err != nil {
		return nil, err
	}
	c.cache.Add(index, lvl)
	return lvl, nil
}

// IsLast reports whether index is the final level of src.
func IsLast(src Source, index int) bool {
	return index >= src.Count()-1
}
