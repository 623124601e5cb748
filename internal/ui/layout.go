package ui

import "time"

// Strip geometry, in cells.
const (
	// StripMargin is the blank column kept on each side of the strip.
	StripMargin = 1

	// CardHeight is the outer height of a card, borders included.
	CardHeight = 9

	// MinCardWidth is the narrowest item width rendered with a border.
	MinCardWidth = 5

	// chromeLines counts the header, footer and dots rows.
	chromeLines = 4
)

// Help overlay geometry.
const (
	helpModalWidth = 44
	helpKeyWidth   = 10
)

// Timing constants.
const (
	// TransitionDuration matches a 0.5s CSS ease-in-out transition.
	TransitionDuration = 500 * time.Millisecond

	// FrameInterval paces animation frames at roughly 60fps.
	FrameInterval = time.Second / 60
)

// LayoutCompactWidth is the terminal width below which the header drops
// the layout summary.
const LayoutCompactWidth = 80
