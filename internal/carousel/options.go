package carousel

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultAutoPlayInterval is used when AutoPlay is set without an interval.
const DefaultAutoPlayInterval = 2 * time.Second

// Validation errors returned by Options.Validate and New.
var (
	ErrSlidesPerView    = errors.New("slides per view must be at least 1")
	ErrSlidesPerGroup   = errors.New("slides per group must be at least 1")
	ErrSpaceBetween     = errors.New("space between must not be negative")
	ErrAutoPlayInterval = errors.New("autoplay interval must be positive")
	ErrRows             = errors.New("rows must be at least 1")
)

// Layout is the breakpoint-adjusted geometry the carousel runs with.
type Layout struct {
	SlidesPerView  int
	SlidesPerGroup int
	SpaceBetween   float64
}

// Override is a partial Layout applied at a breakpoint. Zero fields are
// treated as absent and leave the previous value in place.
type Override struct {
	SlidesPerView  int
	SlidesPerGroup int
	SpaceBetween   float64
}

func (o Override) apply(l Layout) Layout {
	if o.SlidesPerView != 0 {
		l.SlidesPerView = o.SlidesPerView
	}
	if o.SlidesPerGroup != 0 {
		l.SlidesPerGroup = o.SlidesPerGroup
	}
	if o.SpaceBetween != 0 {
		l.SpaceBetween = o.SpaceBetween
	}
	return l
}

// Options configure a Carousel.
type Options struct {
	SlidesPerView    int
	SlidesPerGroup   int
	SpaceBetween     float64
	Loop             bool
	AutoPlay         bool
	AutoPlayInterval time.Duration
	Rows             int

	// Breakpoints maps a minimum viewport width, written as a number, to the
	// layout override that applies from that width upward.
	Breakpoints Breakpoints

	Logger *zap.Logger

	// OnChange, when set, receives a snapshot after every state change.
	OnChange func(Snapshot)
}

// Base returns the layout before any breakpoint is applied.
func (o Options) Base() Layout {
	return Layout{
		SlidesPerView:  o.SlidesPerView,
		SlidesPerGroup: o.SlidesPerGroup,
		SpaceBetween:   o.SpaceBetween,
	}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if o.SlidesPerView < 1 {
		return fmt.Errorf("%w: got %d", ErrSlidesPerView, o.SlidesPerView)
	}
	if o.SlidesPerGroup < 1 {
		return fmt.Errorf("%w: got %d", ErrSlidesPerGroup, o.SlidesPerGroup)
	}
	if o.SpaceBetween < 0 {
		return fmt.Errorf("%w: got %g", ErrSpaceBetween, o.SpaceBetween)
	}
	if o.AutoPlay && o.AutoPlayInterval <= 0 {
		return fmt.Errorf("%w: got %s", ErrAutoPlayInterval, o.AutoPlayInterval)
	}
	if o.Rows < 1 {
		return fmt.Errorf("%w: got %d", ErrRows, o.Rows)
	}
	for _, bp := range o.Breakpoints.Sorted() {
		switch {
		case bp.SlidesPerView < 0:
			return fmt.Errorf("breakpoint %s: %w", bp.Key, ErrSlidesPerView)
		case bp.SlidesPerGroup < 0:
			return fmt.Errorf("breakpoint %s: %w", bp.Key, ErrSlidesPerGroup)
		case bp.SpaceBetween < 0:
			return fmt.Errorf("breakpoint %s: %w", bp.Key, ErrSpaceBetween)
		}
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.AutoPlayInterval == 0 {
		o.AutoPlayInterval = DefaultAutoPlayInterval
	}
	if o.Rows == 0 {
		o.Rows = 1
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
