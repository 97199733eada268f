// Package value implements the typed stack element of the calculator and its
// arithmetic. Every operation is total: division by zero and any operand that
// is already Undefined produce Undefined instead of an error.
package value

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNumber
	KindString
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Supported display bases.
const (
	Binary      = 2
	Octal       = 8
	Decimal     = 10
	Hexadecimal = 16
)

// ValidBase reports whether base is one of 2, 8, 10 or 16.
func ValidBase(base int) bool {
	switch base {
	case Binary, Octal, Decimal, Hexadecimal:
		return true
	}
	return false
}

// Value is a tagged variant: a Number with a display base, a String, or
// Undefined. The zero Value is Undefined.
type Value struct {
	kind Kind
	num  float64
	base int
	text string
}

// Number returns a Number value. An unsupported base falls back to 10.
func Number(magnitude float64, base int) Value {
	if !ValidBase(base) {
		base = Decimal
	}
	return Value{kind: KindNumber, num: magnitude, base: base}
}

// Dec is shorthand for a base-10 Number.
func Dec(magnitude float64) Value {
	return Number(magnitude, Decimal)
}

// String returns a String value.
func String(text string) Value {
	return Value{kind: KindString, text: text}
}

// Undefined returns the Undefined value.
func Undefined() Value {
	return Value{}
}

func (v Value) Kind() Kind        { return v.kind }
func (v Value) IsNumber() bool    { return v.kind == KindNumber }
func (v Value) IsString() bool    { return v.kind == KindString }
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// Float returns the magnitude of a Number. ok is false for other variants.
func (v Value) Float() (f float64, ok bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Base returns the display base of a Number, or 10 for other variants.
func (v Value) Base() int {
	if v.kind != KindNumber {
		return Decimal
	}
	return v.base
}

// Text returns the contents of a String. ok is false for other variants.
func (v Value) Text() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// WithBase returns a copy of a Number rendered in base. Other variants are
// returned unchanged.
func (v Value) WithBase(base int) Value {
	if v.kind != KindNumber {
		return v
	}
	return Number(v.num, base)
}

// IsInteger reports whether v is a Number without a fractional part.
func (v Value) IsInteger() bool {
	if v.kind != KindNumber || math.IsInf(v.num, 0) || math.IsNaN(v.num) {
		return false
	}
	return math.Trunc(v.num) == v.num
}

// Equal compares two values. Numbers compare their magnitudes bit for bit, so
// a NaN result equals itself and the display base is ignored.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return math.Float64bits(v.num) == math.Float64bits(other.num)
	case KindString:
		return v.text == other.text
	default:
		return true
	}
}

// GoString is used by %#v and by test failure output.
func (v Value) GoString() string {
	switch v.kind {
	case KindNumber:
		return fmt.Sprintf("Number(%v, %d)", v.num, v.base)
	case KindString:
		return fmt.Sprintf("String(%q)", v.text)
	default:
		return "Undefined"
	}
}

// String renders the value in its own base with default display settings.
func (v Value) String() string {
	return Format(v, DefaultFormatOptions())
}

// Quote renders text as a single-quoted literal that Parse accepts.
func Quote(text string) string {
	return "'" + strings.ReplaceAll(text, "'", `\'`) + "'"
}
