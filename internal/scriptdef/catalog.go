package scriptdef

import (
	"fmt"
	"sync"
)

// Catalog stores the known script definitions in registration order.
// Class names are unique; registering a duplicate is an error.
type Catalog struct {
	mu      sync.RWMutex
	defs    []Definition
	byClass map[string]Definition
}

// NewCatalog constructs an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byClass: make(map[string]Definition),
	}
}

// Register adds def to the catalog, guarding against duplicates.
func (c *Catalog) Register(def Definition) error {
	if def == nil {
		return fmt.Errorf("scriptdef: definition is nil")
	}
	if def.ClassName() == "" {
		return fmt.Errorf("scriptdef: definition %q has an empty class name", def.DefinitionName())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byClass[def.ClassName()]; exists {
		return fmt.Errorf("scriptdef: definition %q already registered", def.ClassName())
	}
	c.byClass[def.ClassName()] = def
	c.defs = append(c.defs, def)
	return nil
}

// All returns the registered definitions in registration order.
func (c *Catalog) All() []Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// ByName returns the first definition whose display name equals name.
func (c *Catalog) ByName(name string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, def := range c.defs {
		if def.DefinitionName() == name {
			return def, true
		}
	}
	return nil, false
}

// ByClassName returns the definition registered under className.
func (c *Catalog) ByClassName(className string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.byClass[className]
	return def, ok
}
