package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/marquee/internal/carousel"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/slides"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Slides     []slides.Slide
	Carousel   carousel.Options
	Reload     <-chan []slides.Slide // optional; new slide sets while running
	ReloadErrs <-chan error          // optional; failed reloads while running
	ThemeName  string
	ShowLabels bool
	PrefsPath  string
	Logger     *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	prefsPath string
	reload    <-chan []slides.Slide
	reloadErr <-chan error
	log       *zap.Logger
	clock     func() time.Time

	// Engine
	car *carousel.Carousel[slides.Slide]
	env *terminalEnv

	// UI state
	theme      Theme
	keys       keyMap
	help       help.Model
	pages      paginator.Model
	width      int
	height     int
	ready      bool
	showHelp   bool
	showLabels bool
	paused     bool
	autoPlay   bool
	lastErr    error

	// Displayed strip position
	offset    float64
	lastIndex int
	anim      slide
}

// New creates a new Bubble Tea model with a mounted carousel.
func New(opts Options) (Model, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	carOpts := opts.Carousel
	carOpts.Logger = logger
	car, err := carousel.New(opts.Slides, carOpts)
	if err != nil {
		return Model{}, fmt.Errorf("create carousel: %w", err)
	}
	env := newTerminalEnv()
	if err := car.Mount(env.Env()); err != nil {
		return Model{}, fmt.Errorf("mount carousel: %w", err)
	}

	pages := paginator.New()
	pages.Type = paginator.Dots

	m := Model{
		ctx:        ctx,
		prefsPath:  prefsPath,
		reload:     opts.Reload,
		reloadErr:  opts.ReloadErrs,
		log:        logger,
		clock:      time.Now,
		car:        car,
		env:        env,
		theme:      GetTheme(themeName),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		pages:      pages,
		showLabels: opts.ShowLabels,
		autoPlay:   carOpts.AutoPlay,
	}
	snap := car.Snapshot()
	m.offset = snap.Offset
	m.lastIndex = snap.Index
	m.applyTheme()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.env.Flush(), waitForSlides(m.reload), waitForReloadErr(m.reloadErr))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		m = next
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.env.Resize(msg.Width)

	case timerMsg:
		m.env.Fire(msg.id)

	case frameMsg:
		cmds = append(cmds, m.handleFrame(msg))

	case slidesMsg:
		m.log.Info("slides updated", zap.Int("count", len(msg)))
		m.car.SetItems(msg)
		m.lastErr = nil
		cmds = append(cmds, waitForSlides(m.reload))

	case reloadErrMsg:
		m.log.Debug("reload error shown", zap.Error(msg.err))
		m.lastErr = msg.err
		cmds = append(cmds, waitForReloadErr(m.reloadErr))
	}

	cmds = append(cmds, m.sync(), m.env.Flush())
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Handle help overlay
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.car.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Next):
		m.car.Advance()

	case key.Matches(msg, m.keys.Prev):
		m.car.Retreat()

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		m.car.SetPaused(m.paused)

	case key.Matches(msg, m.keys.Labels):
		m.showLabels = !m.showLabels
		m.savePrefs()

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.savePrefs()
	}
	return m, nil
}

// handleFrame advances the running animation. The transition end is
// reported on the final frame.
func (m *Model) handleFrame(msg frameMsg) tea.Cmd {
	if !m.anim.active || msg.tag != m.anim.tag {
		return nil
	}
	offset, done := m.anim.at(msg.at)
	m.offset = offset
	if !done {
		return frameCmd(m.anim.tag)
	}
	m.anim.active = false
	m.car.TransitionEnd()
	return nil
}

// sync reconciles the displayed offset with the carousel. An index change
// with transitions enabled starts an animation; anything else snaps.
func (m *Model) sync() tea.Cmd {
	snap := m.car.Snapshot()
	var cmd tea.Cmd

	switch {
	case snap.Index != m.lastIndex && snap.TransitionEnabled:
		m.anim = slide{
			from:   m.offset,
			to:     snap.Offset,
			start:  m.clock(),
			tag:    m.anim.tag + 1,
			active: true,
		}
		cmd = frameCmd(m.anim.tag)
	case m.anim.active && snap.Index == m.lastIndex:
		m.anim.to = snap.Offset
	default:
		if m.anim.active {
			m.anim.active = false
			m.anim.tag++
		}
		m.offset = snap.Offset
	}
	m.lastIndex = snap.Index

	m.env.UpdateEdges(m.offset, snap.Layout.SpaceBetween, snap.WindowLen)
	m.pages.TotalPages = max(1, snap.Pages)
	m.pages.Page = snap.Page
	return cmd
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	m.pages.ActiveDot = styles.DotActive.Render("•")
	m.pages.InactiveDot = styles.DotInactive.Render("•")
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, ShowLabels: m.showLabels}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn("save prefs failed", zap.Error(err))
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	bodyHeight := max(0, m.height-chromeLines)
	b.WriteString(lipgloss.Place(m.width, bodyHeight, lipgloss.Left, lipgloss.Center, m.renderStrip()))
	b.WriteString("\n")

	b.WriteString(m.renderDots())
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// Messages

type slidesMsg []slides.Slide

type reloadErrMsg struct{ err error }

// Commands

func waitForSlides(ch <-chan []slides.Slide) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return slidesMsg(s)
	}
}

func waitForReloadErr(ch <-chan error) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return reloadErrMsg{err: err}
	}
}

// Run starts the Bubble Tea program and closes the carousel when it exits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.car.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err = p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
