package kv

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached fronts a Store with an LRU of recently read or written values.
// Writes go through to the backing store before the cache is updated,
// so a failed write never leaves a value visible that was not stored.
type Cached struct {
	backing Store
	cache   *lru.Cache[string, string]
}

// NewCached wraps backing with an LRU holding up to size entries.
func NewCached(backing Store, size int) (*Cached, error) {
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cached{backing: backing, cache: cache}, nil
}

func (c *Cached) Get(key string) (string, error) {
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}
	v, err := c.backing.Get(key)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, v)
	return v, nil
}

func (c *Cached) Set(key, value string) error {
	if err := c.backing.Set(key, value); err != nil {
		c.cache.Remove(key)
		return err
	}
	c.cache.Add(key, value)
	return nil
}

func (c *Cached) Remove(key string) error {
	c.cache.Remove(key)
	return c.backing.Remove(key)
}

// Close closes the backing store if it holds resources.
func (c *Cached) Close() error {
	c.cache.Purge()
	if closer, ok := c.backing.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
