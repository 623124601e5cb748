// Package ui provides the terminal host for the carousel engine.
//
// # Architecture Overview
//
// The package implements a Bubble Tea program that owns one
// carousel.Carousel of slides. The engine decides positions; this package
// measures, animates and draws.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling and Run
//   - env.go: terminalEnv, the carousel collaborators backed by Bubble Tea
//   - anim.go: offset animation with a CSS ease-in-out curve
//   - strip.go: card rendering and cropping of the strip
//   - header.go: status bar, page dots and footer
//   - help.go: help overlay
//   - keys.go, theme.go, layout.go: bindings, palettes and constants
//
// # Event Flow
//
//  1. tea.WindowSizeMsg resizes terminalEnv, which feeds the viewport width
//     to the carousel and re-measures the item width
//  2. Keys call Advance, Retreat or SetPaused
//  3. After every message, sync compares the carousel index with the
//     displayed one. A change with transitions enabled starts a 500ms
//     animation; otherwise the strip snaps
//  4. The final animation frame calls TransitionEnd, which may teleport
//  5. Edge visibility is recomputed from the displayed offset and reported
//     back through the observer callbacks
//  6. Timers scheduled by the carousel are flushed as tea.Tick commands
//
// Everything runs on the Bubble Tea event loop, so the carousel needs no
// locking.
package ui
