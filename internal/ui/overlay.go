package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/logtail"
)

// logTailLines caps how much of the log file the overlay reads.
const logTailLines = 500

// overlayChrome is the border plus padding around overlay content.
const overlayChrome = 4

type logLinesMsg struct {
	lines []string
	err   error
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, logTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) initOverlays() {
	m.logViewport = viewport.New(0, 0)
	m.aboutView = viewport.New(0, 0)
}

func (m *Model) resizeOverlays() {
	w := max(m.width-overlayChrome, 1)
	h := max(m.height-overlayChrome-1, 1) // one row for the title
	m.logViewport.Width, m.logViewport.Height = w, h
	m.aboutView.Width, m.aboutView.Height = w, h
	if m.overlay == overlayAbout {
		m.refreshAbout()
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	if msg.err != nil {
		log.Printf("read log: %v", msg.err)
		return
	}
	follow := m.logViewport.AtBottom() || len(m.logLines) == 0
	m.logLines = msg.lines
	content := m.theme.LogPalette().Lines(msg.lines)
	if len(content) == 0 {
		content = []string{m.theme.Styles().FaintText.Render("log is empty")}
	}
	m.logViewport.SetContent(strings.Join(content, "\n"))
	if follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.PageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.PageDown()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Log")
	if m.logPath != "" {
		title += "  " + styles.FaintText.Render(truncateMiddle(m.logPath, max(m.width-12, 8)))
	} else {
		title += "  " + styles.FaintText.Render("logging disabled")
	}
	return m.renderOverlayBox(title, m.logViewport.View())
}

// refreshAbout renders the target gallery's description and current image as
// markdown.
func (m *Model) refreshAbout() {
	p := m.target()
	if p == nil {
		m.aboutView.SetContent(m.theme.Styles().FaintText.Render("No gallery selected"))
		return
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", p.title())
	if d := strings.TrimSpace(p.collection.Description); d != "" {
		md.WriteString(d)
		md.WriteString("\n\n")
	}
	fmt.Fprintf(&md, "- **Directory:** `%s`\n", p.collection.Dir)
	fmt.Fprintf(&md, "- **Images:** %d\n", p.engine.Len())
	if p.collection.IsPlaceholder() {
		md.WriteString("- **Placeholders:** the directory has no images yet\n")
	}
	if im, ok := p.currentImage(); ok {
		fmt.Fprintf(&md, "\n## %s\n\n", im.Alt())
		fmt.Fprintf(&md, "- **File:** `%s`\n", im.Filename)
		if !im.Placeholder {
			fmt.Fprintf(&md, "- **Size:** %s\n", humanBytes(im.Size))
			fmt.Fprintf(&md, "- **Modified:** %s\n", im.ModTime.Format("2006-01-02 15:04"))
		}
	}

	m.aboutView.SetContent(renderMarkdown(md.String(), m.aboutView.Width))
	m.aboutView.GotoTop()
}

// renderMarkdown uses glamour's dark style. Failures fall back to the raw
// markdown.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-2, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func (m Model) renderAbout() string {
	title := m.theme.Styles().AccentText.Bold(true).Render("About")
	return m.renderOverlayBox(title, m.aboutView.View())
}

func (m Model) renderOverlayBox(title, body string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(0, 1).
		Width(max(m.width-2, 1))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		box.Render(title+"\n"+body))
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
