package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bgStyle := lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Surface))
	sep := bgStyle.Render("  ")

	snap := m.car.Snapshot()
	compact := m.width < LayoutCompactWidth

	parts := []string{styles.Logo.Render("marquee")}

	switch {
	case snap.AutoPlaying:
		parts = append(parts, styles.SuccessText.Render("▶ playing"))
	case m.paused && m.autoPlay && m.car.Loop():
		parts = append(parts, styles.WarningText.Render("⏸ paused"))
	default:
		parts = append(parts, styles.MutedText.Render("manual"))
	}

	if snap.ItemCount == 0 {
		parts = append(parts, styles.MutedText.Render("no slides"))
	} else {
		parts = append(parts,
			styles.MutedText.Render("Slide")+bgStyle.Render(" ")+
				styles.Text.Render(fmt.Sprintf("%d/%d", snap.Logical+1, snap.ItemCount)),
		)
	}

	if m.lastErr != nil {
		parts = append(parts, styles.DangerText.Render("✗ reload failed"))
	}

	if !compact {
		layout := fmt.Sprintf("%d×%d gap %g", snap.Layout.SlidesPerView, snap.Layout.SlidesPerGroup, snap.Layout.SpaceBetween)
		parts = append(parts, styles.FaintText.Render(layout))
		if m.car.Loop() {
			parts = append(parts, styles.AccentText.Render("loop"))
		}
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderDots renders the page indicator centered under the strip.
func (m Model) renderDots() string {
	if m.pages.TotalPages <= 1 {
		return ""
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.pages.View())
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	return styles.Footer.Width(m.width).Render(m.help.View(m.keys))
}
