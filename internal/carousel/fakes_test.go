package carousel

import (
	"sort"
	"time"
)

// manualScheduler fires callbacks only when the test advances its clock.
type manualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
	fired     bool
}

func (s *manualScheduler) Schedule(d time.Duration, fn func()) func() {
	s.seq++
	t := &manualTimer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

// Advance moves the clock forward, firing due timers in order.
func (s *manualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		next.fn()
	}
	s.now = target
}

// Pending counts timers that are neither fired nor cancelled.
func (s *manualScheduler) Pending() int {
	count := 0
	for _, t := range s.timers {
		if !t.fired && !t.cancelled {
			count++
		}
	}
	return count
}

func (s *manualScheduler) nextDue(limit time.Duration) *manualTimer {
	var due []*manualTimer
	for _, t := range s.timers {
		if !t.fired && !t.cancelled && t.at <= limit {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

type fakeDimensions struct {
	width float64
	next  int
	subs  map[int]func(float64)
}

func (f *fakeDimensions) Subscribe(fn func(float64)) func() {
	if f.subs == nil {
		f.subs = make(map[int]func(float64))
	}
	id := f.next
	f.next++
	f.subs[id] = fn
	fn(f.width)
	return func() { delete(f.subs, id) }
}

func (f *fakeDimensions) Resize(width float64) {
	f.width = width
	for _, fn := range f.subs {
		fn(width)
	}
}

type fakeVisibility struct {
	thresholds map[Edge]float64
	subs       map[Edge]func(bool)
}

func (f *fakeVisibility) Observe(edge Edge, threshold float64, fn func(bool)) func() {
	if f.subs == nil {
		f.subs = make(map[Edge]func(bool))
		f.thresholds = make(map[Edge]float64)
	}
	f.subs[edge] = fn
	f.thresholds[edge] = threshold
	return func() { delete(f.subs, edge) }
}

func (f *fakeVisibility) Set(edge Edge, visible bool) {
	if fn, ok := f.subs[edge]; ok {
		fn(visible)
	}
}

type fakeContainer struct{ width float64 }

func (f *fakeContainer) ContainerWidth() float64 { return f.width }

type fakeSizer struct{ widths []int }

func (f *fakeSizer) SetItemWidth(width int) { f.widths = append(f.widths, width) }

// harness mounts a carousel on fakes and reports edge visibility the way a
// renderer of equally sized items would.
type harness struct {
	c     *Carousel[int]
	sched *manualScheduler
	dims  *fakeDimensions
	vis   *fakeVisibility
	box   *fakeContainer
	sizer *fakeSizer
}

func newHarness(items []int, opts Options, width float64) (*harness, error) {
	c, err := New(items, opts)
	if err != nil {
		return nil, err
	}
	h := &harness{
		c:     c,
		sched: &manualScheduler{},
		dims:  &fakeDimensions{width: width},
		vis:   &fakeVisibility{},
		box:   &fakeContainer{width: width},
		sizer: &fakeSizer{},
	}
	err = c.Mount(Env{
		Dimensions: h.dims,
		Visibility: h.vis,
		Container:  h.box,
		Sizer:      h.sizer,
		Scheduler:  h.sched,
	})
	if err != nil {
		return nil, err
	}
	h.syncEdges()
	return h, nil
}

// warm fires the one-time transition warm-up.
func (h *harness) warm() {
	h.sched.Advance(warmUpDelay)
}

func (h *harness) syncEdges() {
	window := len(h.c.Window())
	view := h.c.Layout().SlidesPerView
	h.vis.Set(EdgeFirst, h.c.Index() == 0)
	h.vis.Set(EdgeLast, h.c.Index()+view >= window)
}

func (h *harness) advance() bool {
	moved := h.c.Advance()
	h.syncEdges()
	return moved
}

func (h *harness) retreat() bool {
	moved := h.c.Retreat()
	h.syncEdges()
	return moved
}

func (h *harness) transitionEnd() {
	h.c.TransitionEnd()
	h.syncEdges()
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
