package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/slides"
	"github.com/five82/marquee/internal/ui"
)

// Options configure the marquee application.
type Options struct {
	ConfigPath string
	PrefsPath  string   // empty uses default ~/.config/marquee/prefs.toml
	Args       []string // positional arguments, each one slide
	Debug      bool
}

// Run boots the marquee TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogPath, opts.Debug)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	deck, watch, err := loadSlides(cfg, opts.Args)
	if err != nil {
		return err
	}

	carouselOpts, err := cfg.Options(logger)
	if err != nil {
		return fmt.Errorf("carousel options: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		reload     chan []slides.Slide
		reloadErrs chan error
	)
	if watch != "" {
		reload = make(chan []slides.Slide, 1)
		reloadErrs = make(chan error, 1)
		StartReloader(ctx, watch, defaultReloadInterval, logger, func(s []slides.Slide) {
			select {
			case reload <- s:
			case <-ctx.Done():
			}
		}, func(err error) {
			select {
			case reloadErrs <- err:
			default: // the UI still shows an earlier failure
			}
		})
	}

	logger.Info("marquee starting",
		zap.Int("slides", len(deck)),
		zap.Bool("loop", carouselOpts.Loop),
		zap.Bool("autoplay", carouselOpts.AutoPlay),
		zap.String("watch", watch),
	)

	return ui.Run(ui.Options{
		Context:    ctx,
		Slides:     deck,
		Carousel:   carouselOpts,
		Reload:     reload,
		ReloadErrs: reloadErrs,
		ThemeName:  userPrefs.Theme,
		ShowLabels: userPrefs.ShowLabels,
		PrefsPath:  opts.PrefsPath,
		Logger:     logger,
	})
}

// loadSlides picks the slide source: arguments, then items_file (which is
// also watched), then inline items, then the built-in deck.
func loadSlides(cfg config.Config, args []string) ([]slides.Slide, string, error) {
	if deck := slides.FromArgs(args); len(deck) > 0 {
		return deck, "", nil
	}
	if cfg.ItemsFile != "" {
		deck, err := slides.Load(cfg.ItemsFile)
		if err != nil {
			return nil, "", fmt.Errorf("load items_file: %w", err)
		}
		return deck, cfg.ItemsFile, nil
	}
	if deck := slides.FromArgs(cfg.Items); len(deck) > 0 {
		return deck, "", nil
	}
	return slides.Demo(), "", nil
}
