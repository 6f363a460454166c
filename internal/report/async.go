package report

import (
	"context"
	"time"
)

// DefaultLatency is the simulated generation delay.
const DefaultLatency = 2 * time.Second

// Result is the single value delivered by an asynchronous operation.
type Result[T any] struct {
	Value T
	Err   error
}

// After runs produce once latency has elapsed and delivers its value on the
// returned channel. The channel yields exactly one Result and is then closed.
// If ctx ends first, the Result carries ctx.Err() and produce never runs.
// An error from produce is delivered in the Result.
func After[T any](ctx context.Context, latency time.Duration, produce func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		timer := time.NewTimer(latency)
		defer timer.Stop()

		select {
		case <-timer.C:
			v, err := produce()
			ch <- Result[T]{Value: v, Err: err}
		case <-ctx.Done():
			ch <- Result[T]{Err: ctx.Err()}
		}
	}()
	return ch
}

// GenerateAsync synthesizes the report for s after latency. s is captured by
// value at call time. Concurrent calls are independent of each other.
func GenerateAsync(ctx context.Context, s Snapshot, asOf time.Time, latency time.Duration) <-chan Result[string] {
	return After(ctx, latency, func() (string, error) {
		return Synthesize(s, asOf)
	})
}

// Reply is a finished request tagged with the sequence number it was
// started under.
type Reply struct {
	Seq      uint64
	Snapshot Snapshot
	AsOf     time.Time
	Content  string
	Err      error
}

// Requester runs at most one live generation at a time. Starting a request
// cancels the one before it, and replies from superseded requests can be
// recognized by their sequence number. A Requester belongs to one goroutine.
type Requester struct {
	Latency time.Duration

	seq    uint64
	cancel context.CancelFunc
}

// NewRequester returns a Requester with the given latency.
func NewRequester(latency time.Duration) *Requester {
	return &Requester{Latency: latency}
}

// Start cancels any pending request and begins a new one. The returned
// channel delivers exactly one Reply.
func (r *Requester) Start(parent context.Context, s Snapshot, asOf time.Time) (uint64, <-chan Reply) {
	r.Cancel()
	ctx, cancel := context.WithCancel(parent)
	r.seq++
	r.cancel = cancel
	seq := r.seq

	out := make(chan Reply, 1)
	in := GenerateAsync(ctx, s, asOf, r.Latency)
	go func() {
		defer close(out)
		defer cancel()
		res := <-in
		out <- Reply{Seq: seq, Snapshot: s, AsOf: asOf, Content: res.Value, Err: res.Err}
	}()
	return seq, out
}

// Pending reports whether a started request has not yet been finished.
func (r *Requester) Pending() bool {
	return r.cancel != nil
}

// Current reports whether rep answers the most recent request.
func (r *Requester) Current(rep Reply) bool {
	return rep.Seq == r.seq
}

// Finish clears the pending state if rep answers the most recent request.
// It returns false for a stale reply, which the caller should drop.
func (r *Requester) Finish(rep Reply) bool {
	if !r.Current(rep) {
		return false
	}
	r.cancel = nil
	return true
}

// Cancel aborts the pending request, if any.
func (r *Requester) Cancel() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
