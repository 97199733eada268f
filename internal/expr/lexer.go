package expr

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/codefionn/rpncalc/internal/value"
)

// Rules are tried in order and the first match wins, so hex literals come
// before decimals. Invalid catches any single character no other rule takes.
var lexDef = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Hex", Pattern: `0x[0-9a-fA-F]+`},
	{Name: "Decimal", Pattern: `[0-9]+(\.[0-9]*)?([eE][+-]?[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[-+*/%^()]`},
	{Name: "String", Pattern: `'(\\[\s\S]|[^'\\])*'`},
	{Name: "Invalid", Pattern: `(?s).`},
})

var symbols = lexDef.Symbols()

// Lex splits one input line into tokens bracketed by StartOfInput and
// EndOfInput.
func Lex(src string) ([]Token, error) {
	lex, err := lexDef.LexString("", src)
	if err != nil {
		return nil, err
	}

	tokens := []Token{{Kind: StartOfInput}}
	for {
		raw, err := lex.Next()
		if err != nil {
			return nil, lexError(src, err)
		}
		if raw.EOF() {
			break
		}
		if raw.Type == symbols["Whitespace"] {
			continue
		}
		tok, err := convert(src, raw)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	tokens = append(tokens, Token{Kind: EndOfInput, Start: len(src), End: len(src)})
	return tokens, nil
}

func convert(src string, raw lexer.Token) (Token, error) {
	start := raw.Pos.Offset
	end := start + len(raw.Value)
	text := raw.Value

	switch raw.Type {
	case symbols["Comma"]:
		return Token{Kind: Comma, Text: text, Start: start, End: end}, nil
	case symbols["Hex"]:
		u, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			return Token{}, errorAt(src, start, end, "parse hexadecimal: %v", err)
		}
		return Token{Kind: HexNumber, Text: text, Number: float64(u), Start: start, End: end}, nil
	case symbols["Decimal"]:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, errorAt(src, start, end, "parse decimal: %v", err)
		}
		return Token{Kind: DecimalNumber, Text: text, Number: f, Start: start, End: end}, nil
	case symbols["Ident"]:
		return Token{Kind: Identifier, Text: text, Start: start, End: end}, nil
	case symbols["Punct"]:
		kind := Operator
		switch text {
		case "(":
			kind = LeftParen
		case ")":
			kind = RightParen
		}
		return Token{Kind: kind, Text: text, Start: start, End: end}, nil
	case symbols["String"]:
		unquoted, _, err := value.Unquote(text)
		if err != nil {
			return Token{}, errorAt(src, start, end, "%v", unwrapReason(err))
		}
		return Token{Kind: String, Text: unquoted, Start: start, End: end}, nil
	}

	// a quote the String rule did not take starts an unterminated string
	if text == "'" {
		_, _, err := value.Unquote(src[start:])
		if err != nil {
			return Token{}, errorAt(src, start, len(src), "%v", unwrapReason(err))
		}
	}
	return Token{}, errorAt(src, start, end, "unexpected character %q", text)
}

func lexError(src string, err error) error {
	if lerr, ok := err.(*lexer.Error); ok {
		start := min(lerr.Pos.Offset, len(src))
		return errorAt(src, start, min(start+1, len(src)), "%s", lerr.Msg)
	}
	return err
}

func unwrapReason(err error) string {
	if perr, ok := err.(*value.ParseStackItemError); ok && perr.Reason != "" {
		return perr.Reason
	}
	return err.Error()
}
