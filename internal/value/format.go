package value

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultPrecision       = 10
	DefaultScientificLimit = 1_000_000_000.0

	// fractions smaller than this are treated as rounding noise when
	// rendering in bases 2, 8 and 16
	integerTolerance = 1e-9
	groupWidth       = 4
)

// FormatOptions controls how a Value is rendered.
type FormatOptions struct {
	// Base overrides the value's own display base when non-zero.
	Base int
	// Precision is the number of fraction digits before trailing zeros are trimmed.
	Precision int
	// ScientificLimit switches non-integers to mantissa/exponent form when
	// |x| >= limit or |x| < 1/limit.
	ScientificLimit float64
	// Locale drives thousands grouping and the decimal separator in base 10.
	Locale language.Tag
}

// DefaultFormatOptions returns en-US, 10 digits, 1e9 threshold.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		Precision:       DefaultPrecision,
		ScientificLimit: DefaultScientificLimit,
		Locale:          language.AmericanEnglish,
	}
}

var printers sync.Map // language.Tag string -> *localePrinter

type localePrinter struct {
	p       *message.Printer
	decimal string
}

func printerFor(tag language.Tag) *localePrinter {
	key := tag.String()
	if lp, ok := printers.Load(key); ok {
		return lp.(*localePrinter)
	}
	p := message.NewPrinter(tag)
	lp := &localePrinter{p: p, decimal: decimalSeparator(p)}
	actual, _ := printers.LoadOrStore(key, lp)
	return actual.(*localePrinter)
}

// decimalSeparator extracts the separator the locale puts between 1 and 5.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprintf("%.1f", 1.5)
	s = strings.TrimPrefix(s, "1")
	s = strings.TrimSuffix(s, "5")
	if s == "" {
		return "."
	}
	return s
}

// Format renders v. Bases 2, 8 and 16 only represent non-negative integers;
// any other Number renders as the empty string in those bases.
func Format(v Value, opts FormatOptions) string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindString:
		return Quote(v.text)
	}

	base := opts.Base
	if base == 0 {
		base = v.base
	}
	if base == Decimal {
		return formatDecimal(v.num, opts)
	}
	return formatRadix(v.num, base)
}

// Literal renders v as input text that Parse reads back to an equal value.
// base overrides the value's own base when non-zero. Hexadecimal integers
// keep their 0x prefix; bases 2 and 8 have no literal form and fall back to
// ungrouped decimal.
func Literal(v Value, base int) string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindString:
		return Quote(v.text)
	}

	if base == 0 {
		base = v.base
	}
	x := v.num
	if base == Hexadecimal && math.Trunc(x) == x && math.Abs(x) < math.MaxUint64 {
		digits := strconv.FormatUint(uint64(math.Abs(x)), 16)
		if x < 0 {
			return "-0x" + digits
		}
		return "0x" + digits
	}
	if math.Trunc(x) == x && math.Abs(x) < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func formatDecimal(x float64, opts FormatOptions) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}

	precision := opts.Precision
	if precision < 0 {
		precision = DefaultPrecision
	}
	limit := opts.ScientificLimit
	if limit <= 1 {
		limit = DefaultScientificLimit
	}
	lp := printerFor(opts.Locale)

	abs := math.Abs(x)
	if math.Trunc(x) == x && abs < 1<<53 {
		return lp.p.Sprintf("%d", int64(x))
	}
	if abs >= limit || abs < 1/limit {
		return formatScientific(x, precision)
	}

	fixed := strconv.FormatFloat(abs, 'f', precision, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	var sb strings.Builder
	if x < 0 {
		sb.WriteByte('-')
	}
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		sb.WriteString(lp.p.Sprintf("%d", n))
	} else {
		sb.WriteString(intPart)
	}
	if fracPart != "" {
		sb.WriteString(lp.decimal)
		sb.WriteString(fracPart)
	}
	return sb.String()
}

// formatScientific renders x as <mantissa>e<exponent> with a trimmed mantissa
// and an exponent without sign padding, e.g. 1.5e-12.
func formatScientific(x float64, precision int) string {
	s := strconv.FormatFloat(x, 'e', precision, 64)
	mantissa, exponent, _ := strings.Cut(s, "e")
	if strings.Contains(mantissa, ".") {
		mantissa = strings.TrimRight(mantissa, "0")
		mantissa = strings.TrimSuffix(mantissa, ".")
	}
	exp, err := strconv.Atoi(exponent)
	if err != nil {
		return s
	}
	return mantissa + "e" + strconv.Itoa(exp)
}

func formatRadix(x float64, base int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	r := math.Round(x)
	if r < 0 || math.Abs(x-r) > integerTolerance || r >= math.MaxUint64 {
		return ""
	}
	digits := strconv.FormatUint(uint64(r), base)
	return groupDigits(digits, base == Binary)
}

// groupDigits splits digits into blocks of four from the right, separated by a
// single space. With pad set the leftmost block is zero-filled.
func groupDigits(digits string, pad bool) string {
	if rem := len(digits) % groupWidth; pad && rem != 0 {
		digits = strings.Repeat("0", groupWidth-rem) + digits
	}

	var sb strings.Builder
	head := len(digits) % groupWidth
	if head == 0 {
		head = groupWidth
	}
	sb.WriteString(digits[:head])
	for i := head; i < len(digits); i += groupWidth {
		sb.WriteByte(' ')
		sb.WriteString(digits[i : i+groupWidth])
	}
	return sb.String()
}
