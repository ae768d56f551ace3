// Package output implements the engine's event sink: the synchronized,
// atomic-per-record destination for Added/Executed/Deleted events
// (spec.md §4.2).
package output

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/nathanyu/lob-engine/internal/domain"
)

// Sink is the engine's idempotent, atomic emit surface. Concurrent calls
// must not interleave their serialized bytes.
type Sink interface {
	Added(a domain.Added)
	Executed(e domain.Executed)
	Deleted(d domain.Deleted)
}

// WriterSink serializes each record to an io.Writer under a mutex, so that
// concurrent emits from different Books never interleave mid-record.
type WriterSink struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewWriterSink wraps w for synchronized line-oriented output.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

func (s *WriterSink) Added(a domain.Added) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "ADDED %d %s %d %d %s %d\n", a.OrderID, a.Instrument, a.Price, a.Count, a.Side, a.Timestamp)
	s.w.Flush()
}

func (s *WriterSink) Executed(e domain.Executed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "EXECUTED %d %d %d %d %d %d\n", e.RestingID, e.AggressorID, e.ExecutionCount, e.Price, e.Count, e.Timestamp)
	s.w.Flush()
}

func (s *WriterSink) Deleted(d domain.Deleted) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "DELETED %d %t %d\n", d.OrderID, d.Accepted, d.Timestamp)
	s.w.Flush()
}

var _ Sink = (*WriterSink)(nil)
