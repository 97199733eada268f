package expr

import "fmt"

// TokenKind classifies a lexed token.
type TokenKind int

const (
	StartOfInput TokenKind = iota
	EndOfInput
	DecimalNumber
	HexNumber
	Identifier
	String
	Operator
	LeftParen
	RightParen
	Comma
)

var tokenKindNames = map[TokenKind]string{
	StartOfInput:  "start of input",
	EndOfInput:    "end of input",
	DecimalNumber: "decimal number",
	HexNumber:     "hex number",
	Identifier:    "identifier",
	String:        "string",
	Operator:      "operator",
	LeftParen:     "'('",
	RightParen:    "')'",
	Comma:         "','",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexeme with its byte span [Start, End) in the source line.
type Token struct {
	Kind TokenKind
	// Text is the raw source for numbers, identifiers and operators, and the
	// unescaped contents for strings.
	Text string
	// Number holds the parsed magnitude of DecimalNumber and HexNumber tokens.
	Number float64
	Start  int
	End    int
}

func (t Token) describe() string {
	switch t.Kind {
	case StartOfInput, EndOfInput, LeftParen, RightParen, Comma:
		return t.Kind.String()
	case String:
		return fmt.Sprintf("string '%s'", t.Text)
	default:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
}

func (t Token) isOperator(ops ...string) bool {
	if t.Kind != Operator {
		return false
	}
	for _, op := range ops {
		if t.Text == op {
			return true
		}
	}
	return false
}
