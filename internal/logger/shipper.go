package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ShipperOptions tunes the remote shipping queue. Zero values pick the defaults.
type ShipperOptions struct {
	QueueSize    int           // default 1024
	DrainTimeout time.Duration // default 5s, used when Shutdown gets no deadline
}

type shipment struct {
	ctx    context.Context
	record slog.Record
	sink   slog.Handler
}

// shipQueue is shared by every handler derived from one ShippingHandler.
// mu orders offers against stop so nothing is sent on a closed channel.
type shipQueue struct {
	mu      sync.RWMutex
	stopped bool
	records chan shipment
	drained chan struct{}
	dropped atomic.Uint64
	timeout time.Duration
}

func newShipQueue(opts ShipperOptions) *shipQueue {
	q := &shipQueue{
		records: make(chan shipment, cmpOr(opts.QueueSize, 1024)),
		drained: make(chan struct{}),
		timeout: cmpOr(opts.DrainTimeout, 5*time.Second),
	}
	go q.drain()
	return q
}

func cmpOr[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

func (q *shipQueue) drain() {
	defer close(q.drained)
	for s := range q.records {
		_ = s.sink.Handle(s.ctx, s.record)
	}
}

// offer never blocks. A stopped or full queue counts the record as dropped.
func (q *shipQueue) offer(s shipment) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.stopped {
		q.dropped.Add(1)
		return
	}
	select {
	case q.records <- s:
	default:
		q.dropped.Add(1)
	}
}

func (q *shipQueue) stop(ctx context.Context) error {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return nil
	}
	q.stopped = true
	close(q.records)
	q.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}
	select {
	case <-q.drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ShippingHandler hands records to a background goroutine so a slow remote
// sink (Better Stack) never holds up webhook processing.
type ShippingHandler struct {
	q    *shipQueue
	sink slog.Handler
}

// NewShippingHandler starts the shipping goroutine for sink.
func NewShippingHandler(sink slog.Handler, opts ShipperOptions) *ShippingHandler {
	return &ShippingHandler{q: newShipQueue(opts), sink: sink}
}

func (h *ShippingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.sink.Enabled(ctx, level)
}

func (h *ShippingHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.sink.Enabled(ctx, r.Level) {
		h.q.offer(shipment{ctx: context.WithoutCancel(ctx), record: r.Clone(), sink: h.sink})
	}
	return nil
}

func (h *ShippingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ShippingHandler{q: h.q, sink: h.sink.WithAttrs(attrs)}
}

func (h *ShippingHandler) WithGroup(name string) slog.Handler {
	return &ShippingHandler{q: h.q, sink: h.sink.WithGroup(name)}
}

// Dropped returns how many records were discarded because the queue was full or stopped.
func (h *ShippingHandler) Dropped() uint64 {
	if h == nil || h.q == nil {
		return 0
	}
	return h.q.dropped.Load()
}

// Shutdown stops accepting records and waits for the queue to drain.
// Records logged afterwards are dropped, never sent on the closed queue.
func (h *ShippingHandler) Shutdown(ctx context.Context) error {
	if h == nil || h.q == nil {
		return nil
	}
	return h.q.stop(ctx)
}
