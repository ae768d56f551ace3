package engine

import (
	"sync"
	"sync/atomic"

	"github.com/nathanyu/lob-engine/internal/clock"
	"github.com/nathanyu/lob-engine/internal/domain"
	"github.com/nathanyu/lob-engine/internal/orderbook"
	"github.com/nathanyu/lob-engine/internal/output"
)

// instrumentDirectory is the engine's instrument-name-to-Book mapping
// (spec.md §4.5, component C3). Reads are completely lock-free — an
// atomic.Value load of an immutable map — which is also how this directory
// satisfies the L_instr hand-off rule of spec.md §5: there is no lock to
// hold across a Book operation on the read path at all. Creation is the
// rare path and is guarded by mu using copy-on-write.
type instrumentDirectory struct {
	books atomic.Value // map[string]*orderbook.Book
	mu    sync.Mutex

	clock      clock.Clock
	sink       output.Sink
	register   func(id uint32, instrument string, side domain.Side)
	unregister func(id uint32)
}

func newInstrumentDirectory(c clock.Clock, sink output.Sink, register func(uint32, string, domain.Side), unregister func(uint32)) *instrumentDirectory {
	d := &instrumentDirectory{
		clock:      c,
		sink:       sink,
		register:   register,
		unregister: unregister,
	}
	d.books.Store(make(map[string]*orderbook.Book))
	return d
}

// getOrCreate returns the Book for instrument, creating and registering one
// on first reference. Once created, a Book's identity is stable for the
// life of the process: callers may retain the returned pointer past the
// call.
func (d *instrumentDirectory) getOrCreate(instrument string) *orderbook.Book {
	books := d.books.Load().(map[string]*orderbook.Book)
	if b, ok := books[instrument]; ok {
		return b
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Re-check: another goroutine may have created it while we waited.
	books = d.books.Load().(map[string]*orderbook.Book)
	if b, ok := books[instrument]; ok {
		return b
	}

	b := orderbook.New(instrument, d.clock, d.sink, d.register, d.unregister)

	next := make(map[string]*orderbook.Book, len(books)+1)
	for k, v := range books {
		next[k] = v
	}
	next[instrument] = b
	d.books.Store(next)

	return b
}

// lookup returns the Book for instrument without creating one.
func (d *instrumentDirectory) lookup(instrument string) (*orderbook.Book, bool) {
	books := d.books.Load().(map[string]*orderbook.Book)
	b, ok := books[instrument]
	return b, ok
}

// names returns a snapshot of known instrument names, for admin/diagnostic
// use (internal/httpapi). This is intentionally not a price-level view.
func (d *instrumentDirectory) names() []string {
	books := d.books.Load().(map[string]*orderbook.Book)
	names := make([]string, 0, len(books))
	for name := range books {
		names = append(names, name)
	}
	return names
}
