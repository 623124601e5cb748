package carousel

import (
	"fmt"
	"time"
)

// Edge identifies the first or last item of the window sequence.
type Edge int

const (
	EdgeFirst Edge = iota
	EdgeLast
)

// String returns a human-readable edge name.
func (e Edge) String() string {
	switch e {
	case EdgeFirst:
		return "first"
	case EdgeLast:
		return "last"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// Visibility thresholds requested from the VisibilityObserver.
const (
	FirstEdgeThreshold = 1.0
	LastEdgeThreshold  = 0.95
)

// DimensionObserver reports the viewport width. Subscribe may invoke fn
// immediately with the current width.
type DimensionObserver interface {
	Subscribe(fn func(width float64)) (unsubscribe func())
}

// VisibilityObserver reports whether an edge item is at least threshold
// visible inside the container.
type VisibilityObserver interface {
	Observe(edge Edge, threshold float64, fn func(visible bool)) (unobserve func())
}

// ContainerMeasurer returns the current width of the carousel container.
type ContainerMeasurer interface {
	ContainerWidth() float64
}

// ItemSizer applies a computed width to every rendered item.
type ItemSizer interface {
	SetItemWidth(width int)
}

// Scheduler runs fn once after d on the same event loop that drives the
// carousel. The returned cancel func must prevent fn from running.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// Env bundles the collaborators a mounted carousel talks to. Only Scheduler
// is required.
type Env struct {
	Dimensions DimensionObserver
	Visibility VisibilityObserver
	Container  ContainerMeasurer
	Sizer      ItemSizer
	Scheduler  Scheduler
}
