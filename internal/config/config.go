package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/five82/marquee/internal/carousel"
)

// Breakpoint is a partial layout applied from a minimum terminal width up.
type Breakpoint struct {
	SlidesPerView  int `toml:"slides_per_view"`
	SlidesPerGroup int `toml:"slides_per_group"`
	SpaceBetween   int `toml:"space_between"`
}

// Config is the resolved marquee configuration.
type Config struct {
	SlidesPerView    int
	SlidesPerGroup   int
	SpaceBetween     int
	Loop             bool
	AutoPlay         bool
	AutoPlayInterval time.Duration
	Rows             int
	Breakpoints      map[string]Breakpoint

	// Items are inline slides; ItemsFile, when set, is loaded instead.
	Items     []string
	ItemsFile string
	LogPath   string
}

const (
	defaultConfigPath       = "~/.config/marquee/config.toml"
	defaultLogPath          = "~/.local/state/marquee/marquee.log"
	defaultSlidesPerView    = 1
	defaultSlidesPerGroup   = 1
	defaultSpaceBetween     = 2
	defaultRows             = 1
	defaultAutoPlayInterval = 4 * time.Second
)

// DefaultBreakpoints widen the carousel as the terminal grows.
func DefaultBreakpoints() map[string]Breakpoint {
	return map[string]Breakpoint{
		"72":  {SlidesPerView: 2, SlidesPerGroup: 2},
		"120": {SlidesPerView: 3, SlidesPerGroup: 3},
		"180": {SlidesPerView: 4, SlidesPerGroup: 4, SpaceBetween: 3},
	}
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		SlidesPerView:    defaultSlidesPerView,
		SlidesPerGroup:   defaultSlidesPerGroup,
		SpaceBetween:     defaultSpaceBetween,
		Loop:             true,
		AutoPlay:         true,
		AutoPlayInterval: defaultAutoPlayInterval,
		Rows:             defaultRows,
		Breakpoints:      DefaultBreakpoints(),
		LogPath:          mustExpand(defaultLogPath),
	}
}

// Load locates and parses the marquee config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SlidesPerView    *int                  `toml:"slides_per_view"`
		SlidesPerGroup   *int                  `toml:"slides_per_group"`
		SpaceBetween     *int                  `toml:"space_between"`
		Loop             *bool                 `toml:"loop"`
		AutoPlay         *bool                 `toml:"autoplay"`
		AutoPlayInterval *int64                `toml:"autoplay_interval"`
		Rows             *int                  `toml:"rows"`
		Items            []string              `toml:"items"`
		ItemsFile        string                `toml:"items_file"`
		LogPath          string                `toml:"log_path"`
		Breakpoints      map[string]Breakpoint `toml:"breakpoints"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.SlidesPerView != nil {
		cfg.SlidesPerView = *raw.SlidesPerView
	}
	if raw.SlidesPerGroup != nil {
		cfg.SlidesPerGroup = *raw.SlidesPerGroup
	}
	if raw.SpaceBetween != nil {
		cfg.SpaceBetween = *raw.SpaceBetween
	}
	if raw.Loop != nil {
		cfg.Loop = *raw.Loop
	}
	if raw.AutoPlay != nil {
		cfg.AutoPlay = *raw.AutoPlay
	}
	if raw.AutoPlayInterval != nil {
		cfg.AutoPlayInterval = time.Duration(*raw.AutoPlayInterval) * time.Millisecond
	}
	if raw.Rows != nil {
		cfg.Rows = *raw.Rows
	}
	if raw.Breakpoints != nil {
		cfg.Breakpoints = raw.Breakpoints
	}

	for _, item := range raw.Items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cfg.Items = append(cfg.Items, trimmed)
		}
	}

	if itemsFile := strings.TrimSpace(raw.ItemsFile); itemsFile != "" {
		expanded, err := expandPath(itemsFile)
		if err != nil {
			return Config{}, fmt.Errorf("items_file: %w", err)
		}
		cfg.ItemsFile = expanded
	}

	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}

	if _, err := cfg.Options(nil); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", resolved, err)
	}
	return cfg, nil
}

// Options converts the config into carousel options. A nil logger is
// replaced by a no-op logger.
func (c Config) Options(logger *zap.Logger) (carousel.Options, error) {
	bps := make(carousel.Breakpoints, len(c.Breakpoints))
	for key, bp := range c.Breakpoints {
		bps[key] = carousel.Override{
			SlidesPerView:  bp.SlidesPerView,
			SlidesPerGroup: bp.SlidesPerGroup,
			SpaceBetween:   float64(bp.SpaceBetween),
		}
	}
	opts := carousel.Options{
		SlidesPerView:    c.SlidesPerView,
		SlidesPerGroup:   c.SlidesPerGroup,
		SpaceBetween:     float64(c.SpaceBetween),
		Loop:             c.Loop,
		AutoPlay:         c.AutoPlay,
		AutoPlayInterval: c.AutoPlayInterval,
		Rows:             c.Rows,
		Breakpoints:      bps,
		Logger:           logger,
	}
	if err := opts.Validate(); err != nil {
		return carousel.Options{}, err
	}
	return opts, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
