package ui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/marquee/internal/carousel"
)

// timerMsg fires a scheduled callback by id.
type timerMsg struct{ id int }

type edgeWatch struct {
	threshold float64
	fn        func(bool)
	known     bool
	visible   bool
}

// terminalEnv implements the carousel collaborators on top of the Bubble Tea
// event loop. Timers become tea.Tick commands tagged with an id; a cancelled
// id is forgotten, so its tick is dropped when it arrives.
type terminalEnv struct {
	viewport  float64
	hasSize   bool
	container float64
	itemWidth int

	subs    map[int]func(float64)
	nextSub int

	edges map[carousel.Edge]*edgeWatch

	timers    map[int]func()
	nextTimer int
	pending   []tea.Cmd
}

func newTerminalEnv() *terminalEnv {
	return &terminalEnv{
		subs:   make(map[int]func(float64)),
		edges:  make(map[carousel.Edge]*edgeWatch),
		timers: make(map[int]func()),
	}
}

// Env returns the collaborator set handed to Carousel.Mount.
func (e *terminalEnv) Env() carousel.Env {
	return carousel.Env{
		Dimensions: e,
		Visibility: e,
		Container:  e,
		Sizer:      e,
		Scheduler:  e,
	}
}

// Subscribe implements carousel.DimensionObserver.
func (e *terminalEnv) Subscribe(fn func(float64)) func() {
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	if e.hasSize {
		fn(e.viewport)
	}
	return func() { delete(e.subs, id) }
}

// Resize records a new terminal width and notifies subscribers.
func (e *terminalEnv) Resize(width int) {
	e.viewport = float64(width)
	e.container = float64(max(0, width-2*StripMargin))
	e.hasSize = true
	for _, fn := range e.subs {
		fn(e.viewport)
	}
}

// ContainerWidth implements carousel.ContainerMeasurer.
func (e *terminalEnv) ContainerWidth() float64 { return e.container }

// SetItemWidth implements carousel.ItemSizer.
func (e *terminalEnv) SetItemWidth(width int) { e.itemWidth = width }

// Observe implements carousel.VisibilityObserver.
func (e *terminalEnv) Observe(edge carousel.Edge, threshold float64, fn func(bool)) func() {
	w := &edgeWatch{threshold: threshold, fn: fn}
	e.edges[edge] = w
	return func() {
		if e.edges[edge] == w {
			delete(e.edges, edge)
		}
	}
}

// UpdateEdges recomputes how much of the first and last window items is
// inside the container at the displayed offset and publishes changes.
func (e *terminalEnv) UpdateEdges(offset, space float64, windowLen int) {
	if windowLen == 0 {
		return
	}
	step := float64(e.itemWidth) + space
	positions := map[carousel.Edge]int{
		carousel.EdgeFirst: 0,
		carousel.EdgeLast:  windowLen - 1,
	}
	for edge, pos := range positions {
		w, ok := e.edges[edge]
		if !ok {
			continue
		}
		left := offset + float64(pos)*step
		visible := visibleFraction(left, float64(e.itemWidth), e.container) >= w.threshold-1e-9
		if w.known && w.visible == visible {
			continue
		}
		w.known, w.visible = true, visible
		w.fn(visible)
	}
}

// visibleFraction is the share of [left, left+width) inside [0, container).
func visibleFraction(left, width, container float64) float64 {
	if width <= 0 {
		return 0
	}
	overlap := math.Min(left+width, container) - math.Max(left, 0)
	if overlap <= 0 {
		return 0
	}
	return overlap / width
}

// Schedule implements carousel.Scheduler.
func (e *terminalEnv) Schedule(d time.Duration, fn func()) func() {
	e.nextTimer++
	id := e.nextTimer
	e.timers[id] = fn
	e.pending = append(e.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return func() { delete(e.timers, id) }
}

// Fire runs the callback for a timer that is still live.
func (e *terminalEnv) Fire(id int) bool {
	fn, ok := e.timers[id]
	if !ok {
		return false
	}
	delete(e.timers, id)
	fn()
	return true
}

// Live counts timers that have been scheduled and not fired or cancelled.
func (e *terminalEnv) Live() int { return len(e.timers) }

// Flush returns the commands for timers scheduled since the last flush.
func (e *terminalEnv) Flush() tea.Cmd {
	if len(e.pending) == 0 {
		return nil
	}
	cmds := e.pending
	e.pending = nil
	return tea.Batch(cmds...)
}
