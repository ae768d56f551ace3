package domain

// Added is emitted exactly once per resting arrival. Count is the quantity
// left to rest after any matching on arrival, which equals the original
// submitted count only when nothing matched.
type Added struct {
	OrderID    uint32
	Instrument string
	Price      uint32
	Count      uint32
	Side       Side
	Timestamp  int64
}

// Executed is emitted per fill. Price is the resting order's price;
// ExecutionCount is the resting order's post-increment value.
type Executed struct {
	RestingID      uint32
	AggressorID    uint32
	ExecutionCount uint32
	Price          uint32
	Count          uint32
	Timestamp      int64
}

// Deleted is emitted exactly once per cancel command. Accepted is true iff
// a live resting order with the given id was found and removed.
type Deleted struct {
	OrderID   uint32
	Accepted  bool
	Timestamp int64
}
