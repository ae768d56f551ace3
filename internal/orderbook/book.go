// Package orderbook implements the per-instrument continuous limit order
// book: two price-time-priority heaps under one mutex (spec.md §4.3/§4.4).
package orderbook

import (
	"container/heap"
	"sync"

	"github.com/nathanyu/lob-engine/internal/clock"
	"github.com/nathanyu/lob-engine/internal/domain"
	"github.com/nathanyu/lob-engine/internal/output"
)

// Book is the matching engine for a single instrument: one bid heap, one
// ask heap, and the mutex (L_book) that serializes all activity against
// them. Every exported method acquires this mutex for its whole duration.
type Book struct {
	mu         sync.Mutex
	instrument string
	bids       bidHeap
	asks       askHeap

	clock clock.Clock
	sink  output.Sink

	// register/unregister keep the shared order directory (C4) consistent
	// with what actually rests in this Book, without this Book ever taking
	// L_ord while holding another Book's lock (it never holds one).
	register   func(id uint32, instrument string, side domain.Side)
	unregister func(id uint32)
}

// New creates an empty Book for instrument, wired to the shared clock,
// output sink, and order-directory callbacks.
func New(instrument string, c clock.Clock, sink output.Sink, register func(uint32, string, domain.Side), unregister func(uint32)) *Book {
	return &Book{
		instrument: instrument,
		clock:      c,
		sink:       sink,
		register:   register,
		unregister: unregister,
	}
}

// AddBid processes an incoming buy order: matches against resting asks,
// then rests any unfilled remainder (spec.md §4.3).
func (b *Book) AddBid(id uint32, price, count uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for count > 0 && b.asks.Len() > 0 && b.asks[0].Price <= price {
		ask := b.asks[0]

		fill := min(count, ask.Remaining)
		count -= fill
		ask.Remaining -= fill
		ask.ExecutionCount++

		ts := b.clock.Now()
		b.sink.Executed(domain.Executed{
			RestingID:      ask.ID,
			AggressorID:    id,
			ExecutionCount: ask.ExecutionCount,
			Price:          ask.Price,
			Count:          fill,
			Timestamp:      ts,
		})

		if ask.Filled() {
			heap.Pop(&b.asks)
			b.unregister(ask.ID)
		} else {
			// count is now 0 (the aggressor's order is fully consumed by
			// this partial fill); the loop terminates on its own.
			break
		}
	}

	if count > 0 {
		ts := b.clock.Now()
		b.sink.Added(domain.Added{OrderID: id, Instrument: b.instrument, Price: price, Count: count, Side: domain.SideBid, Timestamp: ts})

		order := domain.NewOrder(id, price, count, domain.SideBid, b.instrument, ts)
		heap.Push(&b.bids, order)
		b.register(id, b.instrument, domain.SideBid)
	}
}

// AddAsk processes an incoming sell order: the mirror image of AddBid,
// matching against resting bids.
func (b *Book) AddAsk(id uint32, price, count uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for count > 0 && b.bids.Len() > 0 && b.bids[0].Price >= price {
		bid := b.bids[0]

		fill := min(count, bid.Remaining)
		count -= fill
		bid.Remaining -= fill
		bid.ExecutionCount++

		ts := b.clock.Now()
		b.sink.Executed(domain.Executed{
			RestingID:      bid.ID,
			AggressorID:    id,
			ExecutionCount: bid.ExecutionCount,
			Price:          bid.Price,
			Count:          fill,
			Timestamp:      ts,
		})

		if bid.Filled() {
			heap.Pop(&b.bids)
			b.unregister(bid.ID)
		} else {
			break
		}
	}

	if count > 0 {
		ts := b.clock.Now()
		b.sink.Added(domain.Added{OrderID: id, Instrument: b.instrument, Price: price, Count: count, Side: domain.SideAsk, Timestamp: ts})

		order := domain.NewOrder(id, price, count, domain.SideAsk, b.instrument, ts)
		heap.Push(&b.asks, order)
		b.register(id, b.instrument, domain.SideAsk)
	}
}

// Cancel removes a resting order of the given side and id from this Book,
// if still present. Returns whether a live order was found and removed
// (spec.md §4.4 step 3 — the id's Book-level lifecycle, not the full
// directory-lookup-plus-cancel flow, which lives in internal/engine).
func (b *Book) Cancel(id uint32, side domain.Side) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	var h heap.Interface
	var orders []*domain.Order
	if side == domain.SideBid {
		h = &b.bids
		orders = b.bids
	} else {
		h = &b.asks
		orders = b.asks
	}

	for _, o := range orders {
		if o.ID == id {
			heap.Remove(h, o.HeapIndex())
			b.unregister(id)
			return true
		}
	}
	return false
}

// BestBidPrice returns the current best bid price, or 0 if the bid side is
// empty. It is exposed for tests and internal invariant checks only — the
// engine does not expose price-level structures externally (Non-goal).
func (b *Book) BestBidPrice() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bids.Len() == 0 {
		return 0
	}
	return b.bids[0].Price
}

// BestAskPrice returns the current best ask price, or 0 if the ask side is
// empty.
func (b *Book) BestAskPrice() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.asks.Len() == 0 {
		return 0
	}
	return b.asks[0].Price
}

// Depth returns the number of resting orders on each side. Test/diagnostic
// use only.
func (b *Book) Depth() (bids, asks int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.Len(), b.asks.Len()
}
