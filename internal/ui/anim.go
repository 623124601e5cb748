package ui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// easeInOut is CSS ease-in-out.
var easeInOut = cubicBezier(0.42, 0, 0.58, 1)

// frameMsg advances the strip animation tagged tag.
type frameMsg struct {
	tag int
	at  time.Time
}

// slide animates the strip offset from one value to another.
type slide struct {
	from, to float64
	start    time.Time
	tag      int
	active   bool
}

// at returns the offset at now and whether the animation has finished.
func (s slide) at(now time.Time) (float64, bool) {
	progress := float64(now.Sub(s.start)) / float64(TransitionDuration)
	if progress >= 1 {
		return s.to, true
	}
	if progress < 0 {
		progress = 0
	}
	return s.from + (s.to-s.from)*easeInOut(progress), false
}

func frameCmd(tag int) tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg{tag: tag, at: t}
	})
}

// cubicBezier returns an easing function matching CSS cubic-bezier().
// The curve runs from (0,0) to (1,1) through control points (x1,y1) and (x2,y2).
func cubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		// Newton-Raphson on x(u) = t.
		u := t
		for range 8 {
			x := bezierSample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return bezierSample(y1, y2, clampUnit(u))
			}
			dx := bezierSlope(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection when Newton stalls.
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 20 {
			x := bezierSample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) / 2
		}
		return bezierSample(y1, y2, u)
	}
}

func bezierSample(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierSlope(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
