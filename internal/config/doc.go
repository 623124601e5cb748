// Package config loads the marquee configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/marquee/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but a key is missing, keep its default
//
// # TOML Format
//
// Example config.toml:
//
//	slides_per_view = 1
//	slides_per_group = 1
//	space_between = 2          # cells between cards
//	loop = true
//	autoplay = true
//	autoplay_interval = 4000   # milliseconds
//	rows = 1
//	items_file = "~/slides.yaml"
//	log_path = "~/.local/state/marquee/marquee.log"
//
//	[breakpoints.72]
//	slides_per_view = 2
//	slides_per_group = 2
//
//	[breakpoints.120]
//	slides_per_view = 3
//	slides_per_group = 3
//
// Breakpoint keys are minimum terminal widths in cells. A breakpoint only
// overrides the fields it sets. When no breakpoints table is present the
// defaults from DefaultBreakpoints apply; an empty table disables them.
//
// Inline slides can be given with items = ["one", "two"]. items_file takes
// precedence and is watched for changes while marquee runs.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and values the carousel rejects. The
// latter wrap the carousel sentinel errors, so callers can use errors.Is.
package config
