// Package registry implements the hot-swappable Registry Cell, per spec §4.2.
package registry

import (
	"sync"

	"github.com/ST0x-Technology/st0x.rest.api/internal/engine"
)

// Cell holds the current engine.RegistryProvider behind a reader/writer
// discipline: many concurrent readers, one writer that waits for readers
// to drain. At any observable instant the cell holds exactly one fully
// loaded provider — readers never see a half-initialized state.
type Cell struct {
	mu       sync.RWMutex
	provider engine.RegistryProvider
}

// New creates a Cell seeded with an already-loaded provider.
func New(provider engine.RegistryProvider) *Cell {
	return &Cell{provider: provider}
}

// Read returns the current provider under a shared lock. The returned
// value must not be retained past the caller's use of it if the caller
// cares about atomicity across multiple reads — for a single read it is
// always consistent.
func (c *Cell) Read() engine.RegistryProvider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.provider
}

// Replace swaps in a new, already-validated provider under an exclusive
// lock, waiting for in-flight readers to drain.
func (c *Cell) Replace(provider engine.RegistryProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.provider = provider
}

// ReplaceWithPersist implements the hot-swap algorithm's atomicity
// requirement (spec §4.2 steps 3-5): the exclusive handle is held across
// both the persist step and the swap, so a failed persist leaves the old
// provider untouched and no reader ever observes a provider whose source
// URL wasn't durably recorded first.
func (c *Cell) ReplaceWithPersist(provider engine.RegistryProvider, persist func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := persist(); err != nil {
		return err
	}
	c.provider = provider
	return nil
}
