package transport

import (
	"errors"
	"io"
	"log"

	"github.com/nathanyu/lob-engine/internal/engine"
)

// Worker drives a single connection's command stream against a shared
// engine.Engine (spec.md §5, component C5: "one worker goroutine per
// connection... workers never share engine-internal locks with one
// another directly — all coordination happens through the engine's own
// components"). A Worker is used once and discarded.
type Worker struct {
	engine *engine.Engine
	dec    *Decoder
	connID string
}

// NewWorker creates a Worker reading commands from r and applying them to
// eng. connID is used only for log correlation.
func NewWorker(eng *engine.Engine, r io.Reader, connID string) *Worker {
	return &Worker{engine: eng, dec: NewDecoder(r), connID: connID}
}

// Run processes commands until the connection closes cleanly (io.EOF) or
// a malformed command is received. A malformed command terminates this
// Worker only — it never touches any other connection or the engine's
// shared state beyond the one command already rejected before dispatch,
// mirroring the reference connection_thread: invalid input ends that
// connection's loop without aborting the process.
func (w *Worker) Run() {
	for {
		cmd, err := w.dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			log.Printf("transport: connection %s terminated: %v", w.connID, err)
			return
		}

		switch cmd.Kind {
		case KindBuy:
			w.engine.Buy(cmd.OrderID, cmd.Price, cmd.Count, cmd.Instrument)
		case KindSell:
			w.engine.Sell(cmd.OrderID, cmd.Price, cmd.Count, cmd.Instrument)
		case KindCancel:
			w.engine.Cancel(cmd.OrderID)
		}
	}
}
