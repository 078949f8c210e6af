package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderHeader renders the status bar: logo, gallery totals and scan health.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bar := styles.Header.Width(m.width)

	parts := []string{styles.Logo.Render("reel")}

	if !m.snapshot.HasData {
		parts = append(parts, styles.WarningText.Bold(true).Render("Scanning galleries..."))
		return bar.Render(strings.Join(parts, "  "))
	}

	images := 0
	for _, p := range m.panes {
		images += p.engine.Len()
	}
	parts = append(parts,
		styles.MutedText.Render("Galleries:")+" "+styles.Text.Render(fmt.Sprintf("%d", len(m.panes))),
		styles.MutedText.Render("Images:")+" "+styles.Text.Render(fmt.Sprintf("%d", images)),
	)

	switch {
	case m.snapshot.IsFailing():
		parts = append(parts,
			styles.DangerText.Render("SCAN FAILED"),
			styles.WarningText.Render("Retrying..."),
		)
	case m.snapshot.LastError != nil:
		parts = append(parts, styles.WarningText.Render("scan error"))
	default:
		parts = append(parts, styles.FaintText.Render("updated "+m.snapshot.LastUpdated.Format("15:04:05")))
	}

	if m.width >= 100 {
		parts = append(parts, styles.FaintText.Render("theme "+m.theme.Name))
	}

	content := ansi.Truncate(strings.Join(parts, "  "), max(m.width-2, 0), "…")
	return bar.Render(content)
}

// renderFooter shows key hints on the left and the target slide on the right.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	width := max(m.width-2, 0)

	left := m.help.ShortHelpView(m.keys.ShortHelp())
	right := m.slideStatus(styles)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		left = ansi.Truncate(left, max(width-lipgloss.Width(right)-2, 0), "…")
		gap = max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	}
	line := ansi.Truncate(left+strings.Repeat(" ", gap)+right, width, "…")
	return styles.Footer.Width(m.width).Render(line)
}

// slideStatus describes the slide shown by the keyboard target.
func (m Model) slideStatus(styles Styles) string {
	p := m.target()
	if p == nil {
		return ""
	}
	if err := p.engine.Err(); err != nil {
		return styles.FaintText.Render(p.name + ": " + strings.TrimPrefix(err.Error(), "carousel: "))
	}
	im, ok := p.currentImage()
	if !ok {
		return ""
	}
	status := styles.Text.Render(im.Alt())
	if phase := p.engine.Phase().String(); phase != "idle" {
		status += " " + styles.FaintText.Render(phase)
	}
	return status
}
