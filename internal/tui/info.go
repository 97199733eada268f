package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codefionn/rpncalc/internal/expr"
	"github.com/codefionn/rpncalc/internal/value"
)

var infoBases = []struct {
	label string
	base  int
}{
	{"HEX", value.Hexadecimal},
	{"DEC", value.Decimal},
	{"OCT", value.Octal},
	{"BIN", value.Binary},
}

func baseLabel(base int) string {
	for _, b := range infoBases {
		if b.base == base {
			return b.label
		}
	}
	return fmt.Sprintf("BASE%d", base)
}

// refreshPreview evaluates the pending prompt text and reverts it again, so
// the info pane can show what Enter would leave on top of the stack.
func (m *Model) refreshPreview() {
	m.preview = value.Value{}
	m.previewOK = false
	m.previewErr = nil

	line := strings.TrimSpace(m.input.Value())
	if line == "" || isCommandWord(line) {
		return
	}
	m.preview, m.previewOK, m.previewErr = m.state.Preview(line)
}

// infoLines renders the preview, or the top of the stack when the prompt is
// empty, in every supported base.
func (m *Model) infoLines() []string {
	if m.previewErr != nil {
		var perr *expr.ParseError
		if errors.As(m.previewErr, &perr) {
			return strings.Split(perr.Snippet(), "\n")
		}
		return []string{m.previewErr.Error()}
	}

	v, ok := m.preview, m.previewOK
	if strings.TrimSpace(m.input.Value()) == "" {
		v, ok = m.state.Peek(0)
	}
	if !ok {
		return nil
	}
	if !v.IsNumber() {
		return []string{m.state.Format(v)}
	}

	opts := m.state.FormatOptions()
	lines := make([]string, 0, len(infoBases))
	for _, b := range infoBases {
		opts.Base = b.base
		text := value.Format(v, opts)
		if text == "" {
			text = "-"
		}
		lines = append(lines, fmt.Sprintf("%s %s", infoLabelStyle.Render(b.label), text))
	}
	return lines
}
