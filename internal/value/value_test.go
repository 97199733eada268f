package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestArithmeticBasePreservation(t *testing.T) {
	a := Number(0x10, Hexadecimal)
	b := Number(2, Decimal)

	tests := []struct {
		name string
		op   func(Value, Value) (Value, error)
		want float64
	}{
		{"add", Value.Add, 18},
		{"subtract", Value.Subtract, 14},
		{"multiply", Value.Multiply, 32},
		{"divide", Value.Divide, 8},
		{"modulus", Value.Modulus, 0},
		{"pow", Value.Pow, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.op(a, b)
			require.NoError(t, err)
			f, ok := r.Float()
			require.True(t, ok)
			assert.Equal(t, tt.want, f)
			assert.Equal(t, Hexadecimal, r.Base(), "left operand base should be kept")

			r, err = tt.op(b, a)
			require.NoError(t, err)
			assert.Equal(t, Decimal, r.Base())
		})
	}
}

func TestDivisionByZeroIsUndefined(t *testing.T) {
	r, err := Dec(1).Divide(Dec(0))
	require.NoError(t, err)
	assert.True(t, r.IsUndefined())

	r, err = Dec(5).Modulus(Dec(0))
	require.NoError(t, err)
	assert.True(t, r.IsUndefined())

	r, err = Dec(0).Inv()
	require.NoError(t, err)
	assert.True(t, r.IsUndefined())
}

func TestUndefinedPropagates(t *testing.T) {
	u := Undefined()
	operands := []Value{Dec(3), Number(7, Binary), String("x"), u}

	binaryOps := map[string]func(Value, Value) (Value, error){
		"add":      Value.Add,
		"subtract": Value.Subtract,
		"multiply": Value.Multiply,
		"divide":   Value.Divide,
		"modulus":  Value.Modulus,
		"pow":      Value.Pow,
		"nroot":    Value.NthRoot,
	}
	for name, op := range binaryOps {
		for _, other := range operands {
			r, err := op(u, other)
			require.NoError(t, err, name)
			assert.True(t, r.IsUndefined(), "%s(undefined, %#v)", name, other)

			r, err = op(other, u)
			require.NoError(t, err, name)
			assert.True(t, r.IsUndefined(), "%s(%#v, undefined)", name, other)
		}
	}

	r, err := u.Atan2(Dec(1), Degrees)
	require.NoError(t, err)
	assert.True(t, r.IsUndefined())

	unaryOps := []func(Value) (Value, error){
		Value.Negate, Value.Sqrt, Value.Inv, Value.Sq, Value.Abs, Value.Ln,
	}
	for _, op := range unaryOps {
		r, err := op(u)
		require.NoError(t, err)
		assert.True(t, r.IsUndefined())
	}
}

func TestStringOperands(t *testing.T) {
	r, err := String("foo").Add(String("bar"))
	require.NoError(t, err)
	assert.Equal(t, String("foobar"), r)

	_, err = Dec(1).Add(String("x"))
	var invalid *InvalidArgumentError
	require.ErrorAs(t, err, &invalid)

	_, err = String("x").Multiply(String("y"))
	require.ErrorAs(t, err, &invalid)

	_, err = String("x").Negate()
	require.ErrorAs(t, err, &invalid)
}

func TestTrigonometryModes(t *testing.T) {
	r, err := Dec(30).Sin(Degrees)
	require.NoError(t, err)
	f, _ := r.Float()
	assert.InDelta(t, 0.5, f, 1e-12)

	r, err = Dec(30).Sin(Radians)
	require.NoError(t, err)
	f, _ = r.Float()
	assert.InDelta(t, math.Sin(30), f, 1e-12)
	assert.InDelta(t, -0.988, f, 1e-3)

	r, err = Dec(1).Sin(Degrees)
	require.NoError(t, err)
	f, _ = r.Float()
	assert.InDelta(t, 0.01745240643728351, f, 1e-15)

	r, err = Dec(0.5).Asin(Degrees)
	require.NoError(t, err)
	f, _ = r.Float()
	assert.InDelta(t, 30, f, 1e-9)

	r, err = Dec(1).Atan2(Dec(2), Radians)
	require.NoError(t, err)
	f, _ = r.Float()
	assert.InDelta(t, 0.4636476090008061, f, 1e-15)

	r, err = Dec(1).Atan2(Dec(2), Degrees)
	require.NoError(t, err)
	f, _ = r.Float()
	assert.InDelta(t, 26.56505117707799, f, 1e-12)
}

func TestEqual(t *testing.T) {
	assert.True(t, Dec(1).Equal(Number(1, Hexadecimal)), "base does not affect equality")
	assert.False(t, Dec(1).Equal(Dec(1.0000001)))
	assert.True(t, Undefined().Equal(Undefined()))
	assert.False(t, Undefined().Equal(Dec(0)))
	assert.False(t, String("1").Equal(Dec(1)))

	nan, err := Dec(-1).Sqrt()
	require.NoError(t, err)
	assert.True(t, nan.Equal(nan), "a NaN result must match itself for undo checks")
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{"42", Dec(42)},
		{"-42.5", Dec(-42.5)},
		{"+7", Dec(7)},
		{"1.", Dec(1)},
		{".25", Dec(0.25)},
		{"1e3", Dec(1000)},
		{"2.5E-2", Dec(0.025)},
		{"0x1f2e", Number(0x1f2e, Hexadecimal)},
		{"-0x1f2e", Number(-0x1f2e, Hexadecimal)},
		{"'x'", String("x")},
		{`'test\'asd'`, String("test'asd")},
		{"''", String("")},
		{`'C:\dir'`, String(`C:\dir`)},
		{`'a\b'`, String(`a\b`)},
		{`'a\\'`, String(`a\\`)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(v), "got %#v", v)
			assert.Equal(t, tt.want.Base(), v.Base())
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "abc", "0x", "1..2", "'open", `'trailing\'`, "'a' b", "1e"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			var perr *ParseStackItemError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	opts := DefaultFormatOptions()

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"integer", Dec(42), "42"},
		{"grouped integer", Dec(1234567), "1,234,567"},
		{"negative integer", Dec(-1000), "-1,000"},
		{"fraction", Dec(0.5), "0.5"},
		{"trailing zeros trimmed", Dec(2.25), "2.25"},
		{"precision rounding", Dec(1.0 / 3), "0.3333333333"},
		{"grouped fraction", Dec(12345.5), "12,345.5"},
		{"large non integer", Dec(1.5e12 + 0.5), "1.5e12"},
		{"tiny", Dec(1.5e-12), "1.5e-12"},
		{"undefined", Undefined(), "undefined"},
		{"string", String("it's"), `'it\'s'`},
		{"nan", Number(math.NaN(), Decimal), "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.v, opts))
		})
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		base int
		want string
	}{
		{"integer is ungrouped", Dec(1234567), 0, "1234567"},
		{"fraction", Dec(0.1), 0, "0.1"},
		{"negative", Dec(-3), 0, "-3"},
		{"large integer", Dec(1e30), 0, "1e+30"},
		{"tiny", Dec(1e-7), 0, "1e-07"},
		{"own hex base", Number(255, Hexadecimal), 0, "0xff"},
		{"negative hex", Number(-16, Hexadecimal), 0, "-0x10"},
		{"forced hex", Dec(4096), Hexadecimal, "0x1000"},
		{"hex fraction falls back", Dec(2.5), Hexadecimal, "2.5"},
		{"binary has no literal", Dec(5), Binary, "5"},
		{"octal has no literal", Dec(8), Octal, "8"},
		{"string", String("it's"), 0, `'it\'s'`},
		{"undefined", Undefined(), 0, "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Literal(tt.v, tt.base)
			assert.Equal(t, tt.want, got)
			if tt.v.IsUndefined() {
				return
			}
			back, err := Parse(got)
			require.NoError(t, err)
			assert.True(t, tt.v.Equal(back), "parsed %#v", back)
		})
	}
}

func TestFormatLocale(t *testing.T) {
	opts := DefaultFormatOptions()
	opts.Locale = language.German

	assert.Equal(t, "1.234.567", Format(Dec(1234567), opts))
	assert.Equal(t, "1.234,5", Format(Dec(1234.5), opts))
}

func TestFormatRadix(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		base int
		want string
	}{
		{"hex", Dec(0x1f2e), Hexadecimal, "1f2e"},
		{"hex grouped", Dec(0x12345), Hexadecimal, "1 2345"},
		{"octal not padded", Dec(8), Octal, "10"},
		{"octal grouped", Dec(0o123456), Octal, "12 3456"},
		{"binary padded", Dec(5), Binary, "0101"},
		{"binary grouped", Dec(0b110010), Binary, "0011 0010"},
		{"binary zero", Dec(0), Binary, "0000"},
		{"negative", Dec(-1), Hexadecimal, ""},
		{"fraction", Dec(1.5), Hexadecimal, ""},
		{"almost integer", Dec(16.0000000000001), Hexadecimal, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultFormatOptions()
			opts.Base = tt.base
			assert.Equal(t, tt.want, Format(tt.v, opts))
		})
	}

	// a Number without an override renders in its own base
	assert.Equal(t, "ff", Format(Number(255, Hexadecimal), DefaultFormatOptions()))
}
