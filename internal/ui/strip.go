package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/marquee/internal/slides"
)

type cardKind int

const (
	cardPlain cardKind = iota
	cardClone
	cardActive
)

// renderStrip renders every row of the window at the displayed offset,
// cropped to the container.
func (m Model) renderStrip() string {
	container := int(m.env.ContainerWidth())
	if container <= 0 {
		return ""
	}

	window := m.car.Window()
	rows := m.car.Rows()
	clones := (len(window) - len(m.car.Items())) / 2
	space := int(math.Round(m.car.Layout().SpaceBetween))
	left := max(0, int(math.Round(-m.offset)))

	out := make([]string, 0, len(rows))
	base := 0
	for _, row := range rows {
		out = append(out, m.renderRow(row, base, left, space, clones, len(window), container))
		base += len(row)
	}
	return strings.Join(out, "\n")
}

// renderRow lays out only the cards that intersect the container and cuts
// the joined strip at the offset.
func (m Model) renderRow(row []slides.Slide, base, left, space, clones, windowLen, container int) string {
	width := m.env.itemWidth
	step := width + space
	margin := strings.Repeat(" ", StripMargin)
	blank := margin + strings.Repeat(" ", container) + margin

	if step <= 0 || len(row) == 0 {
		return strings.TrimSuffix(strings.Repeat(blank+"\n", CardHeight), "\n")
	}

	first := left / step
	last := min(len(row)-1, (left+container)/step)
	if first > last {
		return strings.TrimSuffix(strings.Repeat(blank+"\n", CardHeight), "\n")
	}

	index := m.car.Index()
	view := m.car.Layout().SlidesPerView
	gap := lipgloss.NewStyle().Width(space).Height(CardHeight).Render("")

	parts := make([]string, 0, 2*(last-first+1))
	for j := first; j <= last; j++ {
		pos := base + j
		kind := cardPlain
		switch {
		case j >= index && j < index+view:
			kind = cardActive
		case m.car.Loop() && (pos < clones || pos >= windowLen-clones):
			kind = cardClone
		}
		parts = append(parts, m.renderCard(row[j], m.car.SlideIndex(pos), kind))
		if space > 0 && j < last {
			parts = append(parts, gap)
		}
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	lead := left - first*step

	lines := strings.Split(strip, "\n")
	for i, line := range lines {
		cut := ansi.Cut(line, lead, lead+container)
		if pad := container - ansi.StringWidth(cut); pad > 0 {
			cut += strings.Repeat(" ", pad)
		}
		lines[i] = margin + cut + margin
	}
	for len(lines) < CardHeight {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

// renderCard renders one item as a bordered card exactly itemWidth wide.
func (m Model) renderCard(s slides.Slide, slideIndex int, kind cardKind) string {
	width := m.env.itemWidth
	styles := m.theme.Styles()

	if width < MinCardWidth {
		return lipgloss.NewStyle().
			Width(width).
			Height(CardHeight).
			Render(ansi.Truncate(s.String(), width, ""))
	}

	style := styles.Card
	switch kind {
	case cardActive:
		style = styles.CardActive
	case cardClone:
		style = styles.CardClone
	}

	inner := width - 4 // border and padding
	rows := CardHeight - 2

	lines := []string{styles.CardTitle.Render(ansi.Truncate(s.String(), inner, "…"))}
	if m.showLabels {
		lines = append(lines, styles.FaintText.Render("#"+strconv.Itoa(slideIndex+1)))
	}
	if s.Title != "" && s.Body != "" {
		wrapped := lipgloss.NewStyle().Width(inner).Render(s.Body)
		for _, line := range strings.Split(wrapped, "\n") {
			if len(lines) >= rows {
				break
			}
			lines = append(lines, line)
		}
	}

	return style.
		Width(width - 2).
		Height(rows).
		Render(strings.Join(lines, "\n"))
}
