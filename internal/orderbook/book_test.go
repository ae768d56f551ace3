package orderbook

import (
	"testing"

	"github.com/nathanyu/lob-engine/internal/clock"
	"github.com/nathanyu/lob-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures emitted events in order, for assertions.
type recordingSink struct {
	added    []domain.Added
	executed []domain.Executed
	deleted  []domain.Deleted
}

func (s *recordingSink) Added(a domain.Added)       { s.added = append(s.added, a) }
func (s *recordingSink) Executed(e domain.Executed) { s.executed = append(s.executed, e) }
func (s *recordingSink) Deleted(d domain.Deleted)   { s.deleted = append(s.deleted, d) }

func newTestBook(instrument string) (*Book, *recordingSink) {
	sink := &recordingSink{}
	c := clock.NewAtomicClock()
	reg := map[uint32]struct {
		instrument string
		side       domain.Side
	}{}
	register := func(id uint32, instr string, side domain.Side) {
		reg[id] = struct {
			instrument string
			side       domain.Side
		}{instr, side}
	}
	unregister := func(id uint32) { delete(reg, id) }
	return New(instrument, c, sink, register, unregister), sink
}

func TestRestThenMatch(t *testing.T) {
	b, sink := newTestBook("GOOG")

	b.AddBid(10, 100, 5)
	b.AddAsk(11, 100, 3)

	require.Len(t, sink.added, 1)
	assert.Equal(t, uint32(10), sink.added[0].OrderID)
	assert.Equal(t, uint32(5), sink.added[0].Count)
	assert.Equal(t, domain.SideBid, sink.added[0].Side)

	require.Len(t, sink.executed, 1)
	assert.Equal(t, uint32(10), sink.executed[0].RestingID)
	assert.Equal(t, uint32(11), sink.executed[0].AggressorID)
	assert.Equal(t, uint32(1), sink.executed[0].ExecutionCount)
	assert.Equal(t, uint32(3), sink.executed[0].Count)

	assert.Equal(t, uint32(100), b.BestBidPrice())
	bids, asks := b.Depth()
	assert.Equal(t, 1, bids)
	assert.Equal(t, 0, asks)
}

func TestPriceImprovementForAggressor(t *testing.T) {
	b, sink := newTestBook("AAPL")

	b.AddAsk(20, 90, 4)
	b.AddBid(21, 100, 4)

	require.Len(t, sink.executed, 1)
	assert.Equal(t, uint32(90), sink.executed[0].Price, "execution price is the resting price, not the aggressor's")
}

func TestPartialAggressorRests(t *testing.T) {
	b, sink := newTestBook("MSFT")

	b.AddAsk(30, 50, 2)
	b.AddBid(31, 60, 5)

	require.Len(t, sink.executed, 1)
	assert.Equal(t, uint32(2), sink.executed[0].Count)

	require.Len(t, sink.added, 2)
	assert.Equal(t, uint32(31), sink.added[1].OrderID)
	assert.Equal(t, uint32(3), sink.added[1].Count)
	assert.Equal(t, uint32(60), sink.added[1].Price)
}

func TestMultiLevelSweepWithExecutionCounter(t *testing.T) {
	b, sink := newTestBook("X")

	b.AddAsk(40, 10, 1)
	b.AddAsk(41, 10, 1)
	b.AddAsk(42, 11, 1)
	b.AddBid(43, 11, 3)

	require.Len(t, sink.executed, 3)
	assert.Equal(t, uint32(40), sink.executed[0].RestingID)
	assert.Equal(t, uint32(41), sink.executed[1].RestingID)
	assert.Equal(t, uint32(42), sink.executed[2].RestingID)
	for _, e := range sink.executed {
		assert.Equal(t, uint32(1), e.ExecutionCount)
	}
}

func TestCancelAccepted(t *testing.T) {
	b, sink := newTestBook("Y")

	b.AddBid(50, 100, 1)
	found := b.Cancel(50, domain.SideBid)

	assert.True(t, found)
	bids, _ := b.Depth()
	assert.Equal(t, 0, bids)
	assert.Len(t, sink.added, 1)
}

func TestCancelRejectedAfterFullConsumption(t *testing.T) {
	b, _ := newTestBook("Z")

	b.AddBid(60, 100, 1)
	b.AddAsk(61, 100, 1)

	// order 60 is fully consumed; it no longer rests in the book
	found := b.Cancel(60, domain.SideBid)
	assert.False(t, found)
}

func TestTopOfBookNeverCrossed(t *testing.T) {
	b, _ := newTestBook("N")

	b.AddBid(1, 100, 1)
	b.AddAsk(2, 200, 1)

	bids, asks := b.Depth()
	require.Equal(t, 1, bids)
	require.Equal(t, 1, asks)
	assert.Less(t, b.BestBidPrice(), b.BestAskPrice())
}

func TestTimePriorityAtEqualPrice(t *testing.T) {
	b, sink := newTestBook("T")

	b.AddAsk(1, 10, 1)
	b.AddAsk(2, 10, 1)
	b.AddBid(3, 10, 1)

	require.Len(t, sink.executed, 1)
	assert.Equal(t, uint32(1), sink.executed[0].RestingID, "earlier arrival at the same price fills first")
}
