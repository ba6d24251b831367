package async

import "sync/atomic"

// Barrier counts outstanding operations and signals once the count reaches zero.
//
// A Barrier created with a count of zero is already done. Each operation must
// call Arrive exactly once; the arrival that brings the count to zero closes
// the channel returned by Done. Concurrent arrivals never observe the same
// pre-decrement count, so exactly one of them is the last.
type Barrier struct {
	outstanding atomic.Int64
	done        chan struct{}
}

// NewBarrier returns a Barrier waiting for n arrivals.
func NewBarrier(n int) *Barrier {
	if n < 0 {
		panic("async: negative barrier count")
	}
	b := &Barrier{done: make(chan struct{})}
	b.outstanding.Store(int64(n))
	if n == 0 {
		close(b.done)
	}
	return b
}

// Arrive records the completion of one operation.
func (b *Barrier) Arrive() {
	switch n := b.outstanding.Add(-1); {
	case n == 0:
		close(b.done)
	case n < 0:
		panic("async: barrier arrived more times than its count")
	}
}

// Done returns a channel that is closed once every operation has arrived.
func (b *Barrier) Done() <-chan struct{} {
	return b.done
}

// Outstanding returns the number of operations that have not arrived yet.
func (b *Barrier) Outstanding() int {
	n := b.outstanding.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}
