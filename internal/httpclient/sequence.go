package httpclient

import "sync/atomic"

var seqCounter atomic.Uint64

func nextSeq() uint64 {
	return seqCounter.Add(1)
}

// Sequencer correlates overlapping sends: every execution gets a
// monotonically increasing sequence number, and Observe rejects completions
// older than the newest one already seen. Without it the last response to
// arrive would win regardless of send order.
type Sequencer struct {
	last atomic.Uint64
}

// Observe reports whether resp is fresh. Stale completions return false and
// must be discarded by the caller.
func (s *Sequencer) Observe(resp *Response) bool {
	if resp == nil {
		return false
	}
	for {
		last := s.last.Load()
		if resp.Seq <= last {
			return false
		}
		if s.last.CompareAndSwap(last, resp.Seq) {
			return true
		}
	}
}
