package carousel

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Breakpoints maps minimum viewport widths, as text, to layout overrides.
// Keys that do not parse as numbers are ignored.
type Breakpoints map[string]Override

// Breakpoint is one parsed entry of Breakpoints.
type Breakpoint struct {
	Key      string
	MinWidth float64
	Override
}

// Sorted returns the numeric breakpoints in ascending width order. Entries
// with equal widths are ordered by key so the result never depends on map
// iteration order.
func (b Breakpoints) Sorted() []Breakpoint {
	out := make([]Breakpoint, 0, len(b))
	for key, o := range b {
		width, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
		if err != nil || math.IsNaN(width) || math.IsInf(width, 0) {
			continue
		}
		out = append(out, Breakpoint{Key: key, MinWidth: width, Override: o})
	}
	slices.SortFunc(out, func(a, b Breakpoint) int {
		if c := cmp.Compare(a.MinWidth, b.MinWidth); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return out
}

// Resolve applies every breakpoint whose width is at most width on top of
// base, smallest first. Each step only replaces the fields its override
// sets, so an omitted field keeps the value resolved by the step before.
func Resolve(base Layout, bps Breakpoints, width float64) Layout {
	out := base
	for _, bp := range bps.Sorted() {
		if bp.MinWidth > width {
			break
		}
		out = bp.apply(out)
	}
	return out
}
