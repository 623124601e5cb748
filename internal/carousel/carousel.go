package carousel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// warmUpDelay keeps the initial placement from being animated.
const warmUpDelay = 100 * time.Millisecond

// Lifecycle errors returned by Mount.
var (
	ErrMounted     = errors.New("carousel already mounted")
	ErrClosed      = errors.New("carousel closed")
	ErrNoScheduler = errors.New("carousel env requires a scheduler")
)

// Phase is the navigation state of a carousel.
//
//	           move (transitions on)
//	Idle ───────────────────────────► Transitioning
//	  ▲                                     │
//	  │  TransitionEnd, index in range      │
//	  ├─────────────────────────────────────┤
//	  │  TransitionEnd, index in a clone    ▼
//	  └──────────────────────────────── Teleporting
//
// Teleporting is reported once, in the snapshot that carries the corrected
// index with transitions disabled, and then falls back to Idle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTransitioning
	PhaseTeleporting
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseTeleporting:
		return "teleporting"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Snapshot is a consistent view of the carousel state for renderers.
type Snapshot struct {
	Index             int
	Offset            float64
	TransitionEnabled bool
	Phase             Phase
	Layout            Layout
	ItemWidth         int
	ItemCount         int
	WindowLen         int
	Logical           int
	Page              int
	Pages             int
	AutoPlaying       bool
}

type autoPlayKey struct {
	loop     bool
	group    int
	index    int
	count    int
	autoPlay bool
	interval time.Duration
	paused   bool
}

// Carousel is the positioning and looping state machine. It is not safe for
// concurrent use: every method, and every Scheduler callback, must run on the
// host's event loop.
type Carousel[T any] struct {
	opts Options
	log  *zap.Logger

	items       []T
	window      []T
	windowK     int
	windowLoop  bool
	windowStale bool

	layout      Layout
	viewport    float64
	hasViewport bool

	index       int
	transitions bool
	itemWidth   int
	phase       Phase
	edgeVisible [2]bool
	paused      bool

	env     Env
	mounted bool
	closed  bool
	unsubs  []func()

	cancelWarmUp   func()
	cancelAutoPlay func()
	armed          autoPlayKey
}

// New validates opts and returns an unmounted carousel over items.
func New[T any](items []T, opts Options) (*Carousel[T], error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	c := &Carousel[T]{
		opts:        opts,
		log:         opts.Logger.With(zap.String("carousel", uuid.NewString())),
		items:       items,
		layout:      opts.Base(),
		windowStale: true,
	}
	c.syncWindow()
	c.index = c.initialIndex()
	return c, nil
}

// Mount attaches the carousel to its collaborators, takes the first
// measurement and starts the warm-up and autoplay timers.
func (c *Carousel[T]) Mount(env Env) error {
	switch {
	case c.closed:
		return ErrClosed
	case c.mounted:
		return ErrMounted
	case env.Scheduler == nil:
		return ErrNoScheduler
	}
	c.env = env
	c.mounted = true

	if env.Dimensions != nil {
		c.unsubs = append(c.unsubs, env.Dimensions.Subscribe(c.SetViewportWidth))
	}
	if env.Visibility != nil {
		c.unsubs = append(c.unsubs,
			env.Visibility.Observe(EdgeFirst, FirstEdgeThreshold, func(v bool) { c.SetEdgeVisibility(EdgeFirst, v) }),
			env.Visibility.Observe(EdgeLast, LastEdgeThreshold, func(v bool) { c.SetEdgeVisibility(EdgeLast, v) }),
		)
	}
	c.cancelWarmUp = env.Scheduler.Schedule(warmUpDelay, c.warmUp)

	c.Measure()
	c.afterChange()
	return nil
}

// Close detaches every observer and cancels pending timers. It is safe to
// call more than once.
func (c *Carousel[T]) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, unsub := range c.unsubs {
		if unsub != nil {
			unsub()
		}
	}
	c.unsubs = nil
	if c.cancelWarmUp != nil {
		c.cancelWarmUp()
		c.cancelWarmUp = nil
	}
	c.stopAutoPlay()
	c.log.Debug("carousel closed")
}

// Advance moves forward by one group, or to the item count when fewer than a
// group of items remain. Without looping it refuses once the last item is
// visible or the index has reached len(items)-SlidesPerGroup. With looping it
// refuses while the index sits in the trailing clone region waiting for its
// teleport, so repeated calls cannot run past the window. It reports whether
// the index moved.
func (c *Carousel[T]) Advance() bool {
	if !c.canAdvance() {
		return false
	}
	c.guardTransitions()
	moved := c.moveTo(c.forwardTarget())
	c.afterChange()
	return moved
}

// Retreat moves backward by one group, snapping to 0 instead of going
// negative. With looping it refuses while the index is 0 and waiting for its
// teleport. It reports whether the index moved.
func (c *Carousel[T]) Retreat() bool {
	if !c.canRetreat() {
		return false
	}
	c.guardTransitions()
	moved := c.moveTo(c.backwardTarget())
	c.afterChange()
	return moved
}

// TransitionEnd tells the carousel the renderer finished animating. When
// looping and the index sits in a clone region, transitions are disabled and
// the index jumps to the equivalent real position in the same update.
func (c *Carousel[T]) TransitionEnd() {
	if c.closed {
		return
	}
	c.phase = PhaseIdle
	c.settle()
	c.afterChange()
}

// SetViewportWidth feeds a new observed viewport width.
func (c *Carousel[T]) SetViewportWidth(width float64) {
	if c.closed || (c.hasViewport && width == c.viewport) {
		return
	}
	c.viewport, c.hasViewport = width, true
	c.recompute(true, false)
}

// SetBreakpoints replaces the breakpoint table.
func (c *Carousel[T]) SetBreakpoints(bps Breakpoints) {
	if c.closed {
		return
	}
	c.opts.Breakpoints = bps
	c.recompute(false, false)
}

// SetLoop switches infinite looping on or off and re-seeds the index.
func (c *Carousel[T]) SetLoop(loop bool) {
	if c.closed || loop == c.opts.Loop {
		return
	}
	c.opts.Loop = loop
	c.recompute(false, true)
}

// SetItems replaces the items. The index is kept when it is still valid.
func (c *Carousel[T]) SetItems(items []T) {
	if c.closed {
		return
	}
	c.log.Debug("items replaced", zap.Int("from", len(c.items)), zap.Int("to", len(items)))
	c.items = items
	c.windowStale = true
	c.recompute(false, false)
}

// SetEdgeVisibility records whether the first or last item is visible.
func (c *Carousel[T]) SetEdgeVisibility(edge Edge, visible bool) {
	if edge != EdgeFirst && edge != EdgeLast {
		return
	}
	c.edgeVisible[edge] = visible
}

// SetPaused suspends or resumes autoplay without changing the options.
func (c *Carousel[T]) SetPaused(paused bool) {
	if c.closed || paused == c.paused {
		return
	}
	c.paused = paused
	c.afterChange()
}

// Measure recomputes the item width from a fresh container measurement and
// applies it to the rendered items.
func (c *Carousel[T]) Measure() int {
	if c.env.Container == nil {
		return c.itemWidth
	}
	container := c.env.Container.ContainerWidth()
	width := int(math.Ceil(container/float64(c.layout.SlidesPerView) - c.layout.SpaceBetween))
	c.itemWidth = max(width, 0)
	if c.env.Sizer != nil {
		c.env.Sizer.SetItemWidth(c.itemWidth)
	}
	return c.itemWidth
}

// Offset is the strip translation for the current index.
func (c *Carousel[T]) Offset() float64 {
	return -(float64(c.itemWidth) + c.layout.SpaceBetween) * float64(c.index)
}

// Index returns the active position in the window sequence.
func (c *Carousel[T]) Index() int { return c.index }

// Layout returns the resolved layout.
func (c *Carousel[T]) Layout() Layout { return c.layout }

// Items returns the items as supplied.
func (c *Carousel[T]) Items() []T { return c.items }

// Window returns the window sequence. Callers must not modify it.
func (c *Carousel[T]) Window() []T { return c.window }

// Rows returns the window split into the configured number of rows.
func (c *Carousel[T]) Rows() [][]T { return SplitRows(c.window, c.opts.Rows) }

// Loop reports whether looping is on.
func (c *Carousel[T]) Loop() bool { return c.opts.Loop }

// SlideIndex returns the original item index shown at window position pos.
func (c *Carousel[T]) SlideIndex(pos int) int {
	return SlideIndex(pos, len(c.window), len(c.items), c.windowK, c.opts.Loop)
}

// LogicalIndex returns the original index of the first visible item.
func (c *Carousel[T]) LogicalIndex() int {
	n := len(c.items)
	if n == 0 {
		return 0
	}
	if !c.opts.Loop {
		return c.index
	}
	return ((c.index-c.clones())%n + n) % n
}

// Pages returns the number of distinct group positions.
func (c *Carousel[T]) Pages() int {
	group := c.group()
	if group == 0 {
		return 0
	}
	return (len(c.items) + group - 1) / group
}

// Page returns the group position of the active index.
func (c *Carousel[T]) Page() int {
	pages := c.Pages()
	if pages == 0 {
		return 0
	}
	group := c.group()
	return min((c.LogicalIndex()+group-1)/group, pages-1)
}

// Snapshot returns the current state.
func (c *Carousel[T]) Snapshot() Snapshot {
	return Snapshot{
		Index:             c.index,
		Offset:            c.Offset(),
		TransitionEnabled: c.transitions,
		Phase:             c.phase,
		Layout:            c.layout,
		ItemWidth:         c.itemWidth,
		ItemCount:         len(c.items),
		WindowLen:         len(c.window),
		Logical:           c.LogicalIndex(),
		Page:              c.Page(),
		Pages:             c.Pages(),
		AutoPlaying:       c.mounted && !c.closed && c.autoPlaying(),
	}
}

func (c *Carousel[T]) canAdvance() bool {
	n := len(c.items)
	switch {
	case c.closed || n == 0:
		return false
	case c.opts.Loop:
		if c.index > n {
			c.log.Debug("advance deferred until teleport", zap.Int("index", c.index))
			return false
		}
		return true
	case c.edgeVisible[EdgeLast]:
		c.log.Debug("advance rejected: last item visible", zap.Int("index", c.index))
		return false
	case c.index >= n-c.group():
		c.log.Debug("advance rejected: last group", zap.Int("index", c.index))
		return false
	}
	return true
}

func (c *Carousel[T]) canRetreat() bool {
	switch {
	case c.closed || len(c.items) == 0:
		return false
	case c.opts.Loop:
		if c.index == 0 {
			c.log.Debug("retreat deferred until teleport")
			return false
		}
		return true
	case c.edgeVisible[EdgeFirst]:
		c.log.Debug("retreat rejected: first item visible", zap.Int("index", c.index))
		return false
	case c.index <= 0:
		return false
	}
	return true
}

// guardTransitions re-enables transitions when leaving the positions a
// teleport lands on, otherwise the first move after a teleport would snap.
func (c *Carousel[T]) guardTransitions() {
	if c.index == c.group() || c.index == len(c.items) {
		c.transitions = true
	}
}

func (c *Carousel[T]) forwardTarget() int {
	n, group := len(c.items), c.group()
	target := c.index + group
	if rest := n - c.index; rest > 0 && rest < group {
		target = n
	}
	return target
}

func (c *Carousel[T]) backwardTarget() int {
	if c.index < c.group() {
		return 0
	}
	return c.index - c.group()
}

func (c *Carousel[T]) moveTo(target int) bool {
	if target == c.index {
		return false
	}
	c.index = target
	if c.transitions {
		c.phase = PhaseTransitioning
		return true
	}
	// No transition runs, so no transition end will be reported.
	c.phase = PhaseIdle
	c.settle()
	return true
}

func (c *Carousel[T]) settle() {
	if !c.opts.Loop {
		return
	}
	n := len(c.items)
	switch {
	case c.index > n:
		c.teleport(c.group())
	case c.index == 0 && n > 0:
		c.teleport(n)
	}
}

func (c *Carousel[T]) teleport(to int) {
	c.log.Debug("teleport", zap.Int("from", c.index), zap.Int("to", to))
	c.transitions = false
	c.phase = PhaseTeleporting
	c.index = to
}

func (c *Carousel[T]) warmUp() {
	c.cancelWarmUp = nil
	if c.closed {
		return
	}
	c.transitions = true
	c.afterChange()
}

func (c *Carousel[T]) autoPlaying() bool {
	return c.opts.Loop && c.opts.AutoPlay && !c.paused && len(c.items) > 0
}

func (c *Carousel[T]) autoPlayTick() {
	c.cancelAutoPlay = nil
	if c.closed || !c.autoPlaying() {
		return
	}
	// A tick that lands in the trailing clones waits for the teleport.
	if c.index <= len(c.items) {
		c.guardTransitions()
		c.moveTo(c.forwardTarget())
	}
	c.afterChange()
}

// rearmAutoPlay replaces the autoplay timer whenever an input it depends on
// changed, so a tick never acts on stale values.
func (c *Carousel[T]) rearmAutoPlay() {
	key := autoPlayKey{
		loop:     c.opts.Loop,
		group:    c.group(),
		index:    c.index,
		count:    len(c.items),
		autoPlay: c.opts.AutoPlay,
		interval: c.opts.AutoPlayInterval,
		paused:   c.paused,
	}
	if c.cancelAutoPlay != nil && key == c.armed {
		return
	}
	c.stopAutoPlay()
	c.armed = key
	if !c.mounted || c.closed || !c.autoPlaying() {
		return
	}
	c.cancelAutoPlay = c.env.Scheduler.Schedule(c.opts.AutoPlayInterval, c.autoPlayTick)
}

func (c *Carousel[T]) stopAutoPlay() {
	if c.cancelAutoPlay != nil {
		c.cancelAutoPlay()
		c.cancelAutoPlay = nil
	}
}

func (c *Carousel[T]) afterChange() {
	c.rearmAutoPlay()
	if c.opts.OnChange != nil {
		c.opts.OnChange(c.Snapshot())
	}
	if c.phase == PhaseTeleporting {
		c.phase = PhaseIdle
	}
}

// recompute is the single entry point after any input change: resolve the
// layout, rebuild the window if its inputs moved, re-seed or clamp the
// index, re-measure, then notify.
func (c *Carousel[T]) recompute(remeasure, reseed bool) {
	prev := c.layout
	c.layout = c.resolve()
	if c.layout != prev {
		c.log.Debug("layout resolved",
			zap.Float64("viewport", c.viewport),
			zap.Int("slidesPerView", c.layout.SlidesPerView),
			zap.Int("slidesPerGroup", c.layout.SlidesPerGroup),
			zap.Float64("spaceBetween", c.layout.SpaceBetween),
		)
		if c.layout.SlidesPerView != prev.SlidesPerView {
			reseed = reseed || c.opts.Loop
			remeasure = true
		}
		if c.layout.SpaceBetween != prev.SpaceBetween {
			remeasure = true
		}
	}

	c.syncWindow()
	if reseed {
		c.index = c.initialIndex()
		c.phase = PhaseIdle
	} else {
		c.clampIndex()
	}
	if remeasure {
		c.Measure()
	}
	c.afterChange()
}

func (c *Carousel[T]) resolve() Layout {
	if !c.hasViewport {
		return c.opts.Base()
	}
	return Resolve(c.opts.Base(), c.opts.Breakpoints, c.viewport)
}

func (c *Carousel[T]) syncWindow() {
	k := c.clones()
	if !c.windowStale && c.opts.Loop == c.windowLoop && (!c.opts.Loop || k == c.windowK) {
		return
	}
	c.window = BuildWindow(c.items, k, c.opts.Loop)
	c.windowK, c.windowLoop, c.windowStale = k, c.opts.Loop, false
}

func (c *Carousel[T]) clampIndex() {
	n := len(c.items)
	switch {
	case n == 0:
		c.index = 0
	case c.opts.Loop:
		if c.index < 0 || c.index > n+c.clones() {
			c.index = c.clones()
		}
	case c.index > c.lastStop():
		c.index = c.lastStop()
	}
}

func (c *Carousel[T]) initialIndex() int {
	if c.opts.Loop {
		return c.clones()
	}
	return 0
}

func (c *Carousel[T]) clones() int {
	return cloneCount(c.layout.SlidesPerView, len(c.items))
}

// group is SlidesPerGroup clamped to the item count.
func (c *Carousel[T]) group() int {
	if n := len(c.items); n > 0 && c.layout.SlidesPerGroup > n {
		return n
	}
	return c.layout.SlidesPerGroup
}

// lastStop is the furthest index forward navigation reaches without looping:
// the last multiple of the group size below the item count.
func (c *Carousel[T]) lastStop() int {
	n := len(c.items)
	if n == 0 {
		return 0
	}
	return (n - 1) / c.group() * c.group()
}
