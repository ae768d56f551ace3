package domain

// Side represents which side of the book an order rests on.
type Side int

const (
	SideBid Side = iota
	SideAsk
)

func (s Side) String() string {
	if s == SideBid {
		return "bid"
	}
	return "ask"
}

// Order is a single resting limit order.
//
// ArrivalSeq doubles as the order's time-priority key and is assigned the
// moment the order first becomes eligible to match or rest (see
// internal/clock). Price, ArrivalSeq, and Side are the heap ordering keys
// and must never change after construction; Remaining and ExecutionCount
// mutate in place while the order sits in a book.
type Order struct {
	ID             uint32
	Price          uint32
	Remaining      uint32
	ArrivalSeq     int64
	Side           Side
	ExecutionCount uint32
	Instrument     string

	// heapIndex is maintained by the orderbook package's heap.Interface
	// implementations so that a cancel, once it has found this order by a
	// linear scan of its side, can heap.Remove it at this index in O(log n).
	heapIndex int
}

// NewOrder constructs a resting order with zero execution count.
func NewOrder(id uint32, price, remaining uint32, side Side, instrument string, arrivalSeq int64) *Order {
	return &Order{
		ID:         id,
		Price:      price,
		Remaining:  remaining,
		ArrivalSeq: arrivalSeq,
		Side:       side,
		Instrument: instrument,
		heapIndex:  -1,
	}
}

// Filled reports whether the order has no remaining quantity left to match.
func (o *Order) Filled() bool {
	return o.Remaining == 0
}

// HeapIndex returns this order's current position in its side's heap, or -1
// if it is not currently stored in a heap.
func (o *Order) HeapIndex() int {
	return o.heapIndex
}

// SetHeapIndex is called by container/heap.Interface implementations as
// elements move during sift-up/sift-down; it is not meant for other callers.
func (o *Order) SetHeapIndex(i int) {
	o.heapIndex = i
}
