// Package engine wires the instrument directory (C3), order directory
// (C4), and per-instrument books (C2) into the single entry point workers
// call into (spec.md §4.3/§4.4, §5 lock ordering: L_instr → L_book[b] →
// L_ord).
package engine

import (
	"github.com/nathanyu/lob-engine/internal/clock"
	"github.com/nathanyu/lob-engine/internal/domain"
	"github.com/nathanyu/lob-engine/internal/orderbook"
	"github.com/nathanyu/lob-engine/internal/output"
)

// Engine is the shared, explicitly-owned value passed to every worker
// (spec.md §9: "shared mutable globals must be replaced by an explicitly
// owned engine value"). It is safe for concurrent use by many goroutines.
type Engine struct {
	instruments *instrumentDirectory
	orders      *orderDirectory
	clock       clock.Clock
	sink        output.Sink
}

// New creates an Engine wired to the given clock and output sink.
func New(c clock.Clock, sink output.Sink) *Engine {
	e := &Engine{
		orders: newOrderDirectory(),
		clock:  c,
		sink:   sink,
	}
	e.instruments = newInstrumentDirectory(c, sink, e.orders.insert, e.orders.remove)
	return e
}

// Buy submits an incoming buy order for instrument (spec.md §4.3).
func (e *Engine) Buy(id uint32, price, count uint32, instrument string) {
	book := e.instruments.getOrCreate(instrument) // L_instr released on return
	book.AddBid(id, price, count)                 // L_book[b] acquired/released inside
}

// Sell submits an incoming sell order for instrument (spec.md §4.3 mirror).
func (e *Engine) Sell(id uint32, price, count uint32, instrument string) {
	book := e.instruments.getOrCreate(instrument)
	book.AddAsk(id, price, count)
}

// Cancel removes a resting order by id, emitting Deleted(id, accepted, ts)
// exactly once (spec.md §4.4).
func (e *Engine) Cancel(id uint32) {
	loc, ok := e.orders.lookup(id) // L_ord, standalone
	if !ok {
		e.sink.Deleted(domain.Deleted{OrderID: id, Accepted: false, Timestamp: e.clock.Now()})
		return
	}

	book, ok := e.instruments.lookup(loc.instrument) // L_instr, brief
	if !ok {
		// Can't happen in practice (a Book is never removed once created),
		// but an order directory entry pointing nowhere is not an accepted
		// cancel.
		e.sink.Deleted(domain.Deleted{OrderID: id, Accepted: false, Timestamp: e.clock.Now()})
		return
	}

	accepted := book.Cancel(id, loc.side) // L_book[b], which may touch L_ord internally
	e.sink.Deleted(domain.Deleted{OrderID: id, Accepted: accepted, Timestamp: e.clock.Now()})
}

// BookFor exposes the Book for an already-created instrument, for tests and
// diagnostics. The bool is false if the instrument has never been
// referenced.
func (e *Engine) BookFor(instrument string) (*orderbook.Book, bool) {
	return e.instruments.lookup(instrument)
}

// InstrumentNames returns a snapshot of known instrument names.
func (e *Engine) InstrumentNames() []string {
	return e.instruments.names()
}
