package value

import "math"

// AngleMode selects how trigonometric arguments and results are interpreted.
type AngleMode int

const (
	Degrees AngleMode = iota
	Radians
)

// String returns the status-line label of the mode.
func (m AngleMode) String() string {
	if m == Radians {
		return "RAD"
	}
	return "DEG"
}

func (m AngleMode) toRadians(x float64) float64 {
	if m == Degrees {
		return x * math.Pi / 180
	}
	return x
}

func (m AngleMode) fromRadians(x float64) float64 {
	if m == Degrees {
		return x * 180 / math.Pi
	}
	return x
}

// binary applies f to two Numbers. The result keeps the left operand's base.
func binary(op string, a, b Value, f func(x, y float64) Value) (Value, error) {
	if a.IsUndefined() || b.IsUndefined() {
		return Undefined(), nil
	}
	if !a.IsNumber() || !b.IsNumber() {
		return Value{}, invalidBinary(op, a, b)
	}
	r := f(a.num, b.num)
	if r.IsNumber() {
		r.base = a.base
	}
	return r, nil
}

// unary applies f to a Number, keeping its base when keepBase is set.
func unary(op string, a Value, keepBase bool, f func(x float64) Value) (Value, error) {
	if a.IsUndefined() {
		return Undefined(), nil
	}
	if !a.IsNumber() {
		return Value{}, invalidUnary(op, a)
	}
	r := f(a.num)
	if r.IsNumber() && keepBase {
		r.base = a.base
	}
	return r, nil
}

func num(x float64) Value { return Dec(x) }

// Add sums two Numbers or concatenates two Strings.
func (v Value) Add(other Value) (Value, error) {
	if v.IsString() && other.IsString() {
		return String(v.text + other.text), nil
	}
	return binary("add", v, other, func(x, y float64) Value { return num(x + y) })
}

func (v Value) Subtract(other Value) (Value, error) {
	return binary("subtract", v, other, func(x, y float64) Value { return num(x - y) })
}

func (v Value) Multiply(other Value) (Value, error) {
	return binary("multiply", v, other, func(x, y float64) Value { return num(x * y) })
}

// Divide yields Undefined when other is zero.
func (v Value) Divide(other Value) (Value, error) {
	return binary("divide", v, other, func(x, y float64) Value {
		if y == 0 {
			return Undefined()
		}
		return num(x / y)
	})
}

// Modulus yields Undefined when other is zero. The result takes the sign of
// the dividend.
func (v Value) Modulus(other Value) (Value, error) {
	return binary("modulus", v, other, func(x, y float64) Value {
		if y == 0 {
			return Undefined()
		}
		return num(math.Mod(x, y))
	})
}

func (v Value) Pow(other Value) (Value, error) {
	return binary("pow", v, other, func(x, y float64) Value { return num(math.Pow(x, y)) })
}

// NthRoot returns v^(1/n). A zero root is Undefined.
func (v Value) NthRoot(n Value) (Value, error) {
	return binary("nroot", v, n, func(x, y float64) Value {
		if y == 0 {
			return Undefined()
		}
		if x < 0 && math.Mod(y, 2) == 1 {
			return num(-math.Pow(-x, 1/y))
		}
		return num(math.Pow(x, 1/y))
	})
}

func (v Value) Negate() (Value, error) {
	return unary("negate", v, true, func(x float64) Value { return num(-x) })
}

func (v Value) Abs() (Value, error) {
	return unary("abs", v, true, func(x float64) Value { return num(math.Abs(x)) })
}

// Inv returns 1/v, Undefined for zero.
func (v Value) Inv() (Value, error) {
	return unary("inv", v, true, func(x float64) Value {
		if x == 0 {
			return Undefined()
		}
		return num(1 / x)
	})
}

func (v Value) Sq() (Value, error) {
	return unary("sq", v, true, func(x float64) Value { return num(x * x) })
}

func (v Value) Sqrt() (Value, error) {
	return unary("sqrt", v, true, func(x float64) Value { return num(math.Sqrt(x)) })
}

func (v Value) Floor() (Value, error) {
	return unary("floor", v, true, func(x float64) Value { return num(math.Floor(x)) })
}

func (v Value) Ceil() (Value, error) {
	return unary("ceil", v, true, func(x float64) Value { return num(math.Ceil(x)) })
}

func (v Value) Round() (Value, error) {
	return unary("round", v, true, func(x float64) Value { return num(math.Round(x)) })
}

func (v Value) Ln() (Value, error) {
	return unary("ln", v, false, func(x float64) Value { return num(math.Log(x)) })
}

func (v Value) Log10() (Value, error) {
	return unary("log10", v, false, func(x float64) Value { return num(math.Log10(x)) })
}

func (v Value) Log2() (Value, error) {
	return unary("log2", v, false, func(x float64) Value { return num(math.Log2(x)) })
}

func (v Value) Exp() (Value, error) {
	return unary("exp", v, false, func(x float64) Value { return num(math.Exp(x)) })
}

// Sin converts v from mode to radians before taking the sine.
func (v Value) Sin(mode AngleMode) (Value, error) {
	return unary("sin", v, false, func(x float64) Value { return num(math.Sin(mode.toRadians(x))) })
}

func (v Value) Cos(mode AngleMode) (Value, error) {
	return unary("cos", v, false, func(x float64) Value { return num(math.Cos(mode.toRadians(x))) })
}

func (v Value) Tan(mode AngleMode) (Value, error) {
	return unary("tan", v, false, func(x float64) Value { return num(math.Tan(mode.toRadians(x))) })
}

// Asin returns the arc sine expressed in mode.
func (v Value) Asin(mode AngleMode) (Value, error) {
	return unary("asin", v, false, func(x float64) Value { return num(mode.fromRadians(math.Asin(x))) })
}

func (v Value) Acos(mode AngleMode) (Value, error) {
	return unary("acos", v, false, func(x float64) Value { return num(mode.fromRadians(math.Acos(x))) })
}

func (v Value) Atan(mode AngleMode) (Value, error) {
	return unary("atan", v, false, func(x float64) Value { return num(mode.fromRadians(math.Atan(x))) })
}

// Atan2 treats v as y and x as x, returning the angle in mode.
func (v Value) Atan2(x Value, mode AngleMode) (Value, error) {
	if v.IsUndefined() || x.IsUndefined() {
		return Undefined(), nil
	}
	if !v.IsNumber() || !x.IsNumber() {
		return Value{}, invalidBinary("atan2", v, x)
	}
	return num(mode.fromRadians(math.Atan2(v.num, x.num))), nil
}
