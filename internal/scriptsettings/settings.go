// Package scriptsettings persists per-project preferences about script
// definitions: priority order, whether a definition is enabled, and whether
// its resolved configurations should refresh automatically.
//
// The store does no file I/O itself. CaptureState produces a Document
// snapshot and RestoreState merges one back in; reading and writing the
// document on disk belongs to the xmlstore subpackage.
package scriptsettings

import (
	"math"
	"sync"
)

// DefaultOrder is the sentinel priority for definitions with no explicit
// order preference. It sorts after every explicitly set order.
const DefaultOrder = math.MaxInt32

// DefinitionKey identifies a script definition by its display name and its
// fully-qualified implementation identifier. Both fields participate in
// equality; the store holds at most one entry per key.
type DefinitionKey struct {
	DefinitionName string
	ClassName      string
}

// KeyFor derives the settings key for a definition supplied by the
// definition catalog.
func KeyFor(def interface {
	DefinitionName() string
	ClassName() string
}) DefinitionKey {
	return DefinitionKey{
		DefinitionName: def.DefinitionName(),
		ClassName:      def.ClassName(),
	}
}

// DefinitionSettings is the stored preference record for one definition.
type DefinitionSettings struct {
	Order      int
	Enabled    bool
	AutoReload bool
}

// defaultSettings is the record returned for keys with no stored entry.
func defaultSettings() DefinitionSettings {
	return DefinitionSettings{
		Order:   DefaultOrder,
		Enabled: true,
	}
}

// Store holds script definition preferences for one workspace. Entries keep
// their insertion order so captured documents are deterministic. Safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	suppress bool
	keys     []DefinitionKey
	entries  map[DefinitionKey]DefinitionSettings
}

// NewStore returns an empty store with default state.
func NewStore() *Store {
	return &Store{
		entries: make(map[DefinitionKey]DefinitionSettings),
	}
}

// SetOrder upserts the priority for def, preserving any stored enabled and
// auto-reload flags.
func (s *Store) SetOrder(def DefinitionKey, order int) {
	s.upsert(def, order, func(e *DefinitionSettings) {
		e.Order = order
	})
}

// SetEnabled upserts the enabled flag for def. When no entry exists yet,
// order seeds the new entry's priority.
func (s *Store) SetEnabled(order int, def DefinitionKey, enabled bool) {
	s.upsert(def, order, func(e *DefinitionSettings) {
		e.Enabled = enabled
	})
}

// SetAutoReload upserts the auto-reload flag for def. When no entry exists
// yet, order seeds the new entry's priority.
func (s *Store) SetAutoReload(order int, def DefinitionKey, autoReload bool) {
	s.upsert(def, order, func(e *DefinitionSettings) {
		e.AutoReload = autoReload
	})
}

// upsert applies mutate to the stored entry for def, creating one from
// defaults (with order as its priority) when absent. Unrelated fields of an
// existing entry are left untouched.
func (s *Store) upsert(def DefinitionKey, order int, mutate func(*DefinitionSettings)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[def]
	if !ok {
		entry = defaultSettings()
		entry.Order = order
		s.keys = append(s.keys, def)
	}
	mutate(&entry)
	s.entries[def] = entry
}

// Order returns the stored priority for def. ok is false when the
// definition has no stored entry, which is distinct from an explicit order
// of DefaultOrder.
func (s *Store) Order(def DefinitionKey) (order int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[def]
	if !ok {
		return 0, false
	}
	return entry.Order, true
}

// Enabled reports whether def is enabled. Definitions without a stored
// entry are enabled.
func (s *Store) Enabled(def DefinitionKey) bool {
	return s.Settings(def).Enabled
}

// AutoReload reports whether resolved configurations for def refresh
// automatically. Definitions without a stored entry do not.
func (s *Store) AutoReload(def DefinitionKey) bool {
	return s.Settings(def).AutoReload
}

// Settings returns the stored record for def, or the default record
// (order DefaultOrder, enabled, no auto-reload) when absent.
func (s *Store) Settings(def DefinitionKey) DefinitionSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entry, ok := s.entries[def]; ok {
		return entry
	}
	return defaultSettings()
}

// Keys returns the stored definition keys in insertion order.
func (s *Store) Keys() []DefinitionKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]DefinitionKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// SuppressDefinitionsCheck reports whether the multiple-definitions warning
// is suppressed for this workspace.
func (s *Store) SuppressDefinitionsCheck() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suppress
}

// SetSuppressDefinitionsCheck sets the warning suppression flag.
func (s *Store) SetSuppressDefinitionsCheck(suppress bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppress = suppress
}
