package discord

import (
	"fmt"

	"github.com/keshon/datastore"
)

// CommandCache remembers the hash of every registered application command so
// unchanged definitions are not pushed again on reconnect.
type CommandCache interface {
	Hash(key string) string
	SetHash(key, hash string)
	Save() error
}

// FileCommandCache persists hashes in a JSON datastore file.
type FileCommandCache struct {
	ds *datastore.DataStore
}

func NewFileCommandCache(path string) (*FileCommandCache, error) {
	ds, err := datastore.New(path)
	if err != nil {
		return nil, fmt.Errorf("open command cache: %w", err)
	}
	return &FileCommandCache{ds: ds}, nil
}

func (c *FileCommandCache) Hash(key string) string {
	v, ok := c.ds.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (c *FileCommandCache) SetHash(key, hash string) {
	c.ds.Add(key, hash)
}

// Save writes the cache to disk now instead of waiting for the next
// auto-save tick.
func (c *FileCommandCache) Save() error {
	if err := c.ds.SaveToFile(); err != nil {
		return fmt.Errorf("save command cache: %w", err)
	}
	return nil
}

// Close flushes the cache to disk.
func (c *FileCommandCache) Close() error {
	return c.ds.Close()
}

// memoryCommandCache is used when no cache file is configured.
type memoryCommandCache map[string]string

func (m memoryCommandCache) Hash(key string) string { return m[key] }
func (m memoryCommandCache) SetHash(key, hash string) { m[key] = hash }
func (m memoryCommandCache) Save() error { return nil }

// globalKey scopes cache entries for global (non-guild) commands.
func globalKey(name string) string {
	return "global:" + name
}
