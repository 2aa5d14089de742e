package analysislog

import (
	"context"
	"time"

	"github.com/vralchenko/ai-jurist/internal/shared/telemetry"
)

const insertTimeout = 10 * time.Second

// Async decouples record hand-off from the response path: Insert enqueues and
// returns immediately while a single worker drains the queue. A full queue
// drops the record rather than blocking a request.
type Async struct {
	sink  Sink
	queue chan Record
	done  chan struct{}
}

// NewAsync starts the worker. depth bounds the queue.
func NewAsync(sink Sink, depth int) *Async {
	if depth <= 0 {
		depth = 64
	}
	a := &Async{
		sink:  sink,
		queue: make(chan Record, depth),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

// Insert enqueues the record. It never blocks and never returns an error to
// the response path.
func (a *Async) Insert(_ context.Context, rec Record) error {
	select {
	case a.queue <- rec:
	default:
		telemetry.Warn("analysis_log.queue_full", map[string]any{
			"session_id": rec.SessionID,
		})
	}
	return nil
}

// Close stops accepting records and waits for the queue to drain.
func (a *Async) Close() {
	close(a.queue)
	<-a.done
}

func (a *Async) run() {
	defer close(a.done)
	for rec := range a.queue {
		// Detached from any request context: the request may already be done.
		ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
		if err := a.sink.Insert(ctx, rec); err != nil {
			telemetry.Error("analysis_log.insert_failed", map[string]any{
				"error":      err.Error(),
				"session_id": rec.SessionID,
			})
		}
		cancel()
	}
}

var _ Sink = (*Async)(nil)
