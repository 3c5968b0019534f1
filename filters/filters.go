// Package filters saves and restores the per-drill filter selections
// (levels, tenses, categories...) that narrow the exercise pool.
package filters

import (
	"encoding/json"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/drake/oefen/kv"
)

// KeyPrefix is prepended to the drill kind to form the storage key.
const KeyPrefix = "filters_"

// Prefs maps a filter dimension to its allowed values.
type Prefs map[string][]string

// Clone returns a deep copy.
func (p Prefs) Clone() Prefs {
	if p == nil {
		return nil
	}
	out := make(Prefs, len(p))
	for k, v := range p {
		out[k] = slices.Clone(v)
	}
	return out
}

// Dimensions returns the dimension names in sorted order.
func (p Prefs) Dimensions() []string {
	dims := slices.Collect(maps.Keys(p))
	sort.Strings(dims)
	return dims
}

// ParseValues accepts values as separate words, comma lists or both,
// as in "present past", "present,past" and "present, past". Blanks and
// repeats are dropped.
func ParseValues(args []string) []string {
	values := []string{}
	for _, arg := range args {
		for _, v := range strings.Split(arg, ",") {
			if v = strings.TrimSpace(v); v != "" && !slices.Contains(values, v) {
				values = append(values, v)
			}
		}
	}
	return values
}

// builtinDefaults are the selections used until the learner changes them.
// A kind with an empty Prefs is known but has nothing to filter on.
var builtinDefaults = map[string]Prefs{
	"verb_conjugation": {
		"tense":     {"present"},
		"level":     {"A1", "A2"},
		"verb_type": {"regular", "irregular"},
		"separable": {"separable", "non-separable"},
	},
	"verb_prepositions": {
		"level": {"A2", "B1", "B2"},
	},
	"adverbs": {
		"difficulty": {"A1", "A2", "B1"},
		"category":   {"time", "degree", "frequency"},
		"frequency":  {"very_high", "high"},
	},
	"articles":        {},
	"conjunctions":    {},
	"separable_verbs": {},
	"reflexive_verbs": {},
	"comparative":     {},
	"object_pronouns": {
		"pronoun_type": {"direct_object", "indirect_object", "after_preposition"},
	},
	"adjectives":         {},
	"negation":           {},
	"pronominal_adverbs": {},
}

// Manager persists filter preferences in a kv.Store.
type Manager struct {
	mu       sync.Mutex
	store    kv.Store
	defaults map[string]Prefs
	now      func() time.Time
	log      *zap.Logger
}

// NewManager creates a Manager with the built-in defaults.
func NewManager(store kv.Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	defaults := make(map[string]Prefs, len(builtinDefaults))
	for k, v := range builtinDefaults {
		defaults[k] = v.Clone()
	}
	return &Manager{
		store:    store,
		defaults: defaults,
		now:      time.Now,
		log:      log,
	}
}

// Kinds returns the known drill kinds in sorted order.
func (m *Manager) Kinds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := slices.Collect(maps.Keys(m.defaults))
	sort.Strings(kinds)
	return kinds
}

// Known reports whether kind has defaults registered.
func (m *Manager) Known(kind string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.defaults[kind]
	return ok
}

// Defaults returns a copy of the default selections for kind.
func (m *Manager) Defaults(kind string) Prefs {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaults[kind].Clone()
}

// SetDefault replaces the default values of one dimension, registering
// kind if it was unknown.
func (m *Manager) SetDefault(kind, dimension string, values []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.defaults[kind] == nil {
		m.defaults[kind] = Prefs{}
	}
	m.defaults[kind][dimension] = slices.Clone(values)
}

// Save stores prefs for kind together with the time of the change.
func (m *Manager) Save(kind string, prefs Prefs) {
	if !m.Known(kind) {
		m.log.Warn("unknown exercise type", zap.String("kind", kind))
		return
	}

	doc := make(map[string]any, len(prefs)+1)
	for k, v := range prefs {
		doc[k] = v
	}
	doc["timestamp"] = m.now().UnixMilli()

	data, err := json.Marshal(doc)
	if err == nil {
		err = m.store.Set(KeyPrefix+kind, string(data))
	}
	if err != nil {
		m.log.Error("error saving filter preferences", zap.String("kind", kind), zap.Error(err))
	}
}

// Load returns the stored prefs for kind, restricted to the dimensions
// present in its defaults. Missing or malformed dimensions fall back to
// the default values; an unreadable entry yields the defaults.
func (m *Manager) Load(kind string) Prefs {
	if !m.Known(kind) {
		m.log.Warn("unknown exercise type", zap.String("kind", kind))
		return Prefs{}
	}
	defaults := m.Defaults(kind)

	raw, err := m.store.Get(KeyPrefix + kind)
	if err != nil {
		if !kv.IsNotFound(err) {
			m.log.Error("error loading filter preferences", zap.String("kind", kind), zap.Error(err))
		}
		return defaults
	}

	var stored map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		m.log.Error("error loading filter preferences", zap.String("kind", kind), zap.Error(err))
		return defaults
	}

	validated := make(Prefs, len(defaults))
	for dim, def := range defaults {
		var values []string
		if msg, ok := stored[dim]; ok && json.Unmarshal(msg, &values) == nil && values != nil {
			validated[dim] = values
			continue
		}
		validated[dim] = def
	}
	return validated
}

// Clear removes the stored prefs for kind.
func (m *Manager) Clear(kind string) {
	if !m.Known(kind) {
		m.log.Warn("unknown exercise type", zap.String("kind", kind))
		return
	}
	if err := m.store.Remove(KeyPrefix + kind); err != nil {
		m.log.Error("error clearing filter preferences", zap.String("kind", kind), zap.Error(err))
	}
}

// Has reports whether prefs are stored for kind.
func (m *Manager) Has(kind string) bool {
	if !m.Known(kind) {
		return false
	}
	_, err := m.store.Get(KeyPrefix + kind)
	if err != nil && !kv.IsNotFound(err) {
		m.log.Error("error checking filter preferences", zap.String("kind", kind), zap.Error(err))
	}
	return err == nil
}
