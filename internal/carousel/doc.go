// Package carousel is a headless positioning and looping engine for
// slide carousels.
//
// # Overview
//
// A Carousel holds an ordered list of items and decides which of them are in
// view. It never draws anything. A host feeds it viewport widths, edge
// visibility and transition-end notifications, and renders the strip from
// Snapshot, Window and Offset.
//
// # Window sequence
//
// When looping, the strip rendered by the host is the items padded on both
// sides with k clones, where k is the resolved SlidesPerView:
//
//	items:  a b c d e          (k = 2)
//	window: d e | a b c d e | a b
//
// The active index points into the window. Moving past the last real group,
// or back to position 0, lands in a clone region. When the host reports the
// end of that transition the carousel disables transitions and jumps to the
// equivalent real position, so the teleport is invisible.
//
// # Breakpoints
//
// Breakpoints map a minimum width, written as a number, to a partial layout.
// Every breakpoint at or below the current width is applied in ascending
// order on top of the base options. Keys that do not parse as numbers are
// ignored.
//
// # Collaborators
//
// The host passes its observers, measurer and scheduler in an Env at Mount.
// Scheduler callbacks must run on the same event loop as every other call;
// the carousel does no locking.
package carousel
