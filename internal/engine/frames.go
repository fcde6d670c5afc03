package engine

// Handle identifies a pending tick request.
type Handle uint64

// FrameSource is the host facility that calls back once per display refresh.
// A callback fires at most once per request; cancelled requests never fire.
type FrameSource interface {
	RequestTick(fn func()) Handle
	CancelTick(h Handle)
}

// ManualFrameSource queues requests until Fire is called. It drives headless
// simulations (replays, tests) one frame at a time.
type ManualFrameSource struct {
	next    Handle
	pending []request
}

type request struct {
	h  Handle
	fn func()
}

// NewManualFrameSource creates an empty frame source.
func NewManualFrameSource() *ManualFrameSource {
	return &ManualFrameSource{}
}

// RequestTick implements FrameSource.
func (m *ManualFrameSource) RequestTick(fn func()) Handle {
	m.next++
	m.pending = append(m.pending, request{h: m.next, fn: fn})
	return m.next
}

// CancelTick implements FrameSource.
func (m *ManualFrameSource) CancelTick(h Handle) {
	for i, r := range m.pending {
		if r.h == h {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of outstanding requests.
func (m *ManualFrameSource) Pending() int { return len(m.pending) }

// Fire runs every request queued before the call and returns how many ran.
// Requests made by the callbacks wait for the next Fire.
func (m *ManualFrameSource) Fire() int {
	batch := m.pending
	m.pending = nil
	for _, r := range batch {
		r.fn()
	}
	return len(batch)
}
