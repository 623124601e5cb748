// Package app provides the orchestration layer for marquee.
//
// # Overview
//
// This package wires together configuration, logging, slide loading, the
// slides file reloader and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Components
//
//   - app.go: Run and slide source selection
//   - reloader.go: background goroutine that reloads items_file when it changes
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()     Read config.toml
//	       ├─────> logging.New()     Open the log file
//	       ├─────> loadSlides()      Args, items_file, items or demo deck
//	       ├─────> StartReloader()   Watch items_file (when used)
//	       └─────> ui.Run()          Start TUI (blocks)
//
//	Reloader loop:
//	┌─────────────────────────────────────────┐
//	│ StartReloader() goroutine               │
//	│  ├─> os.Stat(items_file)                │
//	│  ├─> slides.Load() when mtime changed   │
//	│  └─> reload channel                     │
//	│      └─> UI calls Carousel.SetItems()   │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable, invalid TOML or rejected values
//   - Log file cannot be created
//   - items_file missing or empty at startup
//
// Recoverable errors (logged, reloading continues with backoff):
//   - items_file temporarily missing or mid-write
//   - items_file parse failures
//
// The reloader doubles its interval after each consecutive failure, capped
// at 30 seconds, and resets on the next successful poll.
package app
