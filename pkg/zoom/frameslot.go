package zoom

import "sync"

// FrameSlot coalesces high-frequency offsets into at most one pending frame.
//
// Post stores the offset and asks the host for a frame only when none is
// pending. When the frame fires, the pending flag is cleared before the
// update runs, so an offset posted during the update schedules a new frame.
// The update always sees the latest posted offset.
type FrameSlot struct {
	request func(frame func())
	run     func(offset float64)

	mu      sync.Mutex
	pending bool
	offset  float64
}

// NewFrameSlot returns a slot that schedules frames with request and handles
// them with run. request is typically the host's requestAnimationFrame.
func NewFrameSlot(request func(frame func()), run func(offset float64)) *FrameSlot {
	return &FrameSlot{request: request, run: run}
}

// Post records offset as the value for the next frame.
func (s *FrameSlot) Post(offset float64) {
	s.mu.Lock()
	s.offset = offset
	if s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.mu.Unlock()

	s.request(s.fire)
}

// Pending reports whether a frame has been requested and not yet fired.
func (s *FrameSlot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *FrameSlot) fire() {
	s.mu.Lock()
	s.pending = false
	offset := s.offset
	s.mu.Unlock()

	s.run(offset)
}
