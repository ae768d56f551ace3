package engine

import (
	"sync"

	"github.com/nathanyu/lob-engine/internal/domain"
)

// orderLocation is the lightweight descriptor the order directory holds
// for a resting order: enough to route a cancel to the right Book and
// side, without owning the Order itself (spec.md §4.6, component C4).
type orderLocation struct {
	instrument string
	side       domain.Side
}

// orderDirectory maps order id to (instrument, side) for every order
// currently resting in some Book. An entry exists iff the order is live.
// All operations are serialized by mu (L_ord); callers must never hold a
// Book lock while blocking on mu for a different order (spec.md §5).
type orderDirectory struct {
	mu      sync.Mutex
	entries map[uint32]orderLocation
}

func newOrderDirectory() *orderDirectory {
	return &orderDirectory{entries: make(map[uint32]orderLocation)}
}

func (d *orderDirectory) insert(id uint32, instrument string, side domain.Side) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[id] = orderLocation{instrument: instrument, side: side}
}

func (d *orderDirectory) remove(id uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, id)
}

func (d *orderDirectory) lookup(id uint32) (orderLocation, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	loc, ok := d.entries[id]
	return loc, ok
}
