package kv

import (
	"fmt"

	"github.com/drake/oefen/config"
)

// Open returns the store selected by cfg, wrapped in an LRU front
// when cfg.CacheSize is positive.
func Open(cfg config.StoreConfig) (StoreCloser, error) {
	var base StoreCloser
	switch cfg.Backend {
	case config.BackendSQLite, "":
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		base = s
	case config.BackendFile:
		base = NewFile(cfg.Path)
	case config.BackendMemory:
		base = NewMemory()
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}

	if cfg.CacheSize <= 0 {
		return base, nil
	}
	cached, err := NewCached(base, cfg.CacheSize)
	if err != nil {
		base.Close()
		return nil, err
	}
	return cached, nil
}
