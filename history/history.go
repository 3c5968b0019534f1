// Package history remembers the most recent exercises shown per category
// and picks the next one so that nothing repeats inside that window.
//
// A History is a bounded, most-recent-first list of opaque identifiers.
// It is loaded once from a kv.Store when constructed and written through
// to the store on every Record. Storage problems never surface as errors:
// an unreadable entry is an empty history, and a failed write leaves the
// handle working from memory for the rest of the session.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/drake/oefen/kv"
)

// KeyPrefix is prepended to the category name to form the storage key.
const KeyPrefix = "exercise_history_"

// History is the recent-selection window of one exercise category.
type History struct {
	mu       sync.Mutex
	store    kv.Store
	category string
	capacity int
	recent   []string // most recent first, len <= capacity
	detached bool     // set after a failed write; store no longer touched on Record
	intn     func(n int) int
	log      *zap.Logger
}

// Option configures a History.
type Option func(*History)

// WithLogger sets the logger used for storage warnings.
func WithLogger(l *zap.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.log = l
		}
	}
}

// WithRand replaces the uniform random source. intn must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(h *History) {
		if intn != nil {
			h.intn = intn
		}
	}
}

// New returns the history for category, loading any persisted entries.
// capacity is the number of identifiers remembered and must be positive.
func New(store kv.Store, category string, capacity int, opts ...Option) (*History, error) {
	if store == nil {
		return nil, errors.New("history: nil store")
	}
	if category == "" {
		return nil, errors.New("history: empty category")
	}
	if capacity < 1 {
		return nil, fmt.Errorf("history: capacity must be positive, got %d", capacity)
	}

	h := &History{
		store:    store,
		category: category,
		capacity: capacity,
		intn:     rand.IntN,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With(zap.String("category", category))
	h.recent = h.load()
	return h, nil
}

// Category returns the category name.
func (h *History) Category() string { return h.category }

// Capacity returns the size of the window.
func (h *History) Capacity() int { return h.capacity }

// Key returns the storage key of this history.
func (h *History) Key() string { return KeyPrefix + h.category }

// SelectIndex picks the index of the next candidate given their identifiers,
// or -1 when ids is empty. It does not record the choice.
//
// Candidates present anywhere in the window are skipped. When every
// candidate is in the window, only the most recent one is skipped; when
// that leaves nothing, any candidate may be returned.
func (h *History) SelectIndex(ids []string) int {
	switch len(ids) {
	case 0:
		return -1
	case 1:
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	fresh := make([]int, 0, len(ids))
	for i, id := range ids {
		if id == "" || !slices.Contains(h.recent, id) {
			fresh = append(fresh, i)
		}
	}
	if len(fresh) > 0 {
		return fresh[h.intn(len(fresh))]
	}

	last := h.recent[0]
	older := make([]int, 0, len(ids))
	for i, id := range ids {
		if id != last {
			older = append(older, i)
		}
	}
	if len(older) > 0 {
		return older[h.intn(len(older))]
	}

	return h.intn(len(ids))
}

// Select returns the next exercise from pool, avoiding those whose
// identifier is in the window of h. ok is false only when pool is empty.
// identify must be pure; records with the same semantic identity must
// yield the same identifier. An empty identifier is never considered seen.
func Select[T any](h *History, pool []T, identify func(T) string) (item T, ok bool) {
	if len(pool) == 0 {
		return item, false
	}
	if len(pool) == 1 {
		return pool[0], true
	}

	ids := make([]string, len(pool))
	for i, p := range pool {
		ids[i] = identify(p)
	}
	return pool[h.SelectIndex(ids)], true
}

// Record puts id at the front of the window, drops entries beyond
// capacity, and writes the window through to the store.
func (h *History) Record(id string) {
	if id == "" {
		h.log.Debug("ignoring empty exercise id")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = slices.Insert(h.recent, 0, id)
	if len(h.recent) > h.capacity {
		h.recent = h.recent[:h.capacity]
	}
	h.save()
}

// WasRecentlyUsed reports whether id is anywhere in the window.
func (h *History) WasRecentlyUsed(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Contains(h.recent, id)
}

// Clear empties the window and removes the persisted entry.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = h.recent[:0]
	if err := h.store.Remove(h.Key()); err != nil {
		h.log.Warn("error clearing exercise history", zap.Error(err))
	}
}

// Peek returns a copy of the window, most recent first.
func (h *History) Peek() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.recent)
}

func (h *History) load() []string {
	raw, err := h.store.Get(h.Key())
	if err != nil {
		if !kv.IsNotFound(err) {
			h.log.Warn("error reading exercise history", zap.Error(err))
		}
		return nil
	}

	ids, err := decode(raw)
	if err != nil {
		h.log.Warn("discarding unreadable exercise history", zap.Error(err))
		return nil
	}
	if len(ids) > h.capacity {
		ids = ids[:h.capacity]
	}
	return ids
}

func (h *History) save() {
	if h.detached {
		return
	}
	data, err := json.Marshal(h.recent)
	if err == nil {
		err = h.store.Set(h.Key(), string(data))
	}
	if err != nil {
		h.detached = true
		h.log.Warn("error saving exercise history; continuing in memory", zap.Error(err))
	}
}

// decode parses a persisted window. Entries may be strings or numbers;
// numbers are kept in their shortest decimal form.
func decode(raw string) ([]string, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if string(e) == "null" {
			return nil, errors.New("null history entry")
		}
		var s string
		if err := json.Unmarshal(e, &s); err == nil {
			ids = append(ids, s)
			continue
		}
		var n float64
		if err := json.Unmarshal(e, &n); err == nil {
			ids = append(ids, strconv.FormatFloat(n, 'f', -1, 64))
			continue
		}
		return nil, fmt.Errorf("unsupported history entry %s", e)
	}
	return ids, nil
}
