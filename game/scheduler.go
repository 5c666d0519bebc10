package game

import "time"

// FrameHandle identifies a pending frame request.
type FrameHandle uint64

// FrameCallback receives the host timestamp of the frame it runs in.
type FrameCallback func(now time.Duration)

// Scheduler requests frame callbacks from the host.
type Scheduler interface {
	Request(cb FrameCallback) FrameHandle
	// Cancel drops a pending request. Unknown or spent handles are ignored.
	Cancel(h FrameHandle)
}

type frameRequest struct {
	handle FrameHandle
	cb     FrameCallback
}

// LoopScheduler is a Scheduler driven by the host's own loop. Each call to
// RunFrame runs the callbacks requested before it; callbacks requested while
// a frame runs wait for the next one.
type LoopScheduler struct {
	next    FrameHandle
	pending []frameRequest
}

// NewLoopScheduler creates an empty scheduler.
func NewLoopScheduler() *LoopScheduler {
	return &LoopScheduler{}
}

func (s *LoopScheduler) Request(cb FrameCallback) FrameHandle {
	s.next++
	s.pending = append(s.pending, frameRequest{handle: s.next, cb: cb})
	return s.next
}

func (s *LoopScheduler) Cancel(h FrameHandle) {
	for i, r := range s.pending {
		if r.handle == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of queued callbacks.
func (s *LoopScheduler) Pending() int {
	return len(s.pending)
}

// RunFrame runs every callback queued before the call and returns how many
// ran. A callback cancelled by an earlier one in the same frame is skipped.
func (s *LoopScheduler) RunFrame(now time.Duration) int {
	if len(s.pending) == 0 {
		return 0
	}
	last := s.next
	ran := 0
	for {
		i := s.indexDue(last)
		if i < 0 {
			return ran
		}
		r := s.pending[i]
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		r.cb(now)
		ran++
	}
}

// indexDue returns the first pending request issued no later than last.
func (s *LoopScheduler) indexDue(last FrameHandle) int {
	for i, r := range s.pending {
		if r.handle <= last {
			return i
		}
	}
	return -1
}
