package expr

import (
	"fmt"
	"strings"
)

// ParseError reports a lexing or parsing failure at a byte span of Source.
type ParseError struct {
	Source string
	Start  int
	End    int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Start, e.Msg)
}

// Snippet renders the source with a caret line under the offending span.
func (e *ParseError) Snippet() string {
	start := min(max(e.Start, 0), len(e.Source))
	end := min(max(e.End, start+1), len(e.Source)+1)

	var sb strings.Builder
	sb.WriteString(e.Source)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", start))
	sb.WriteString(strings.Repeat("^", end-start))
	sb.WriteByte(' ')
	sb.WriteString(e.Msg)
	return sb.String()
}

func errorAt(src string, start, end int, format string, args ...any) *ParseError {
	return &ParseError{Source: src, Start: start, End: end, Msg: fmt.Sprintf(format, args...)}
}
