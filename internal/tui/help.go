package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

func (m *Model) helpMarkdown() string {
	var sb strings.Builder
	sb.WriteString(m.state.HelpMarkdown())

	sb.WriteString("\n# Keys\n\n")
	sb.WriteString("| Key | Action |\n")
	sb.WriteString("|-----|--------|\n")
	for _, column := range m.keys.FullHelp() {
		for _, b := range column {
			h := b.Help()
			fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	sb.WriteString("| `+ - * / ^ % _` | apply the operator (empty prompt) |\n")
	sb.WriteString("\nType `undo`, `redo`, `help` or `quit` at the prompt as words.\n")
	sb.WriteString("Strings are written in single quotes, e.g. `'x' store` binds the value below it to `x`.\n")
	return sb.String()
}

func (m *Model) helpRenderer(width int) *glamour.TermRenderer {
	if m.renderer != nil && m.rendererWidth == width {
		return m.renderer
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		m.log.Warn("help renderer unavailable: %v", err)
		return nil
	}
	m.renderer = renderer
	m.rendererWidth = width
	return renderer
}

// renderHelp fills the help viewport for the current window size.
func (m *Model) renderHelp() {
	width := max(m.contentWidth(), 20)
	height := max(m.height-2, 3)
	if m.viewport.Width != width || m.viewport.Height != height {
		offset := m.viewport.YOffset
		m.viewport = viewport.New(width, height)
		m.viewport.SetYOffset(offset)
	}

	md := m.helpMarkdown()
	content := wordwrap.String(md, width)
	if r := m.helpRenderer(width); r != nil {
		if out, err := r.Render(md); err == nil {
			content = out
		} else {
			m.log.Warn("failed to render help: %v", err)
		}
	}
	m.viewport.SetContent(content)
}

func (m *Model) openHelp() {
	m.showHelp = true
	m.viewport.GotoTop()
	m.renderHelp()
}

func (m *Model) helpView() string {
	footer := m.renderFooter(
		statusStyle.Render("esc close  ↑/↓ scroll"),
		statusStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)),
	)
	return m.viewport.View() + "\n" + footer
}
