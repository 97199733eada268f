package value

import (
	"regexp"
	"strconv"
	"strings"
)

var numberRe = regexp.MustCompile(`^([+-])?(?:0x([0-9a-fA-F]+)|((?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?))$`)

// Parse converts a single literal into a Value. It accepts an optional sign,
// an optional 0x prefix (the result is displayed in base 16), decimal numbers
// with optional fraction and exponent, and single-quoted strings where \' is
// the only escape.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, &ParseStackItemError{Text: s, Reason: "empty input"}
	}
	if s[0] == '\'' {
		text, n, err := Unquote(s)
		if err != nil {
			return Value{}, err
		}
		if n != len(s) {
			return Value{}, &ParseStackItemError{Text: s, Reason: "trailing characters after string"}
		}
		return String(text), nil
	}

	m := numberRe.FindStringSubmatch(s)
	if m == nil {
		return Value{}, &ParseStackItemError{Text: s}
	}
	sign := 1.0
	if m[1] == "-" {
		sign = -1
	}
	if m[2] != "" {
		u, err := strconv.ParseUint(m[2], 16, 64)
		if err != nil {
			return Value{}, &ParseStackItemError{Text: s, Reason: "hexadecimal out of range"}
		}
		return Number(sign*float64(u), Hexadecimal), nil
	}
	f, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Value{}, &ParseStackItemError{Text: s, Reason: err.Error()}
	}
	return Dec(sign * f), nil
}

// Unquote reads a single-quoted literal from the start of s and returns its
// contents together with the number of bytes consumed. \' is the only escape.
func Unquote(s string) (string, int, error) {
	if !strings.HasPrefix(s, "'") {
		return "", 0, &ParseStackItemError{Text: s, Reason: "expected '"}
	}
	var sb strings.Builder
	escape := false
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case escape:
			// only \' collapses; any other backslash is kept as written
			if c != '\'' {
				sb.WriteByte('\\')
			}
			sb.WriteByte(c)
			escape = false
		case c == '\\':
			escape = true
		case c == '\'':
			return sb.String(), i + 1, nil
		default:
			sb.WriteByte(c)
		}
	}
	return "", 0, &ParseStackItemError{Text: s, Reason: "unterminated string"}
}
