package calc

import (
	"errors"
	"regexp"
	"strings"

	"github.com/codefionn/rpncalc/internal/value"
)

var identifierRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// ErrNoClipboard is wrapped in a *ClipboardError when copy or paste run on a
// state without a clipboard.
var ErrNoClipboard = errors.New("no clipboard available")

func builtinRegistry() *Registry {
	r := NewRegistry()
	for _, f := range arithmeticFunctions() {
		r.Register(f)
	}
	for _, f := range trigFunctions() {
		r.Register(f)
	}
	for _, f := range stackFunctions() {
		r.Register(f)
	}
	for _, f := range modeFunctions() {
		r.Register(f)
	}
	r.Register(storeFunction())
	r.Register(copyFunction())
	r.Register(pasteFunction())
	return r
}

func arithmeticFunctions() []Function {
	return []Function{
		binaryFn("add", "The addition (+) operator produces the sum of numeric operands or string concatenation.",
			[]string{"+"}, value.Value.Add),
		binaryFn("subtract", "The subtraction (-) operator subtracts the two operands, producing their difference.",
			[]string{"-"}, value.Value.Subtract),
		binaryFn("multiply", "The multiplication (*) operator produces the product of the operands.",
			[]string{"*"}, value.Value.Multiply),
		binaryFn("divide", "The division (/) operator produces the quotient of its operands where the left operand is the dividend and the right operand is the divisor.",
			[]string{"/"}, value.Value.Divide),
		binaryFn("modulus", "The remainder (%) operator returns the remainder left over when one operand is divided by a second operand. It always takes the sign of the dividend.",
			[]string{"%", "mod"}, value.Value.Modulus),
		binaryFn("pow", "The pow function returns the value of a base raised to a power.",
			[]string{"^"}, value.Value.Pow),
		binaryFn("nroot", "The nroot function returns the n-th root of a number, for nroot(x, n).",
			nil, value.Value.NthRoot),
		unaryFn("negate", "The unary negation operator produces the negative of its operand.",
			[]string{"neg", "_"}, value.Value.Negate),
		unaryFn("inv", "The inverse operator produces the inverse (1/x) of its operand.",
			nil, value.Value.Inv),
		unaryFn("sq", "The square (sq) function returns the square of a number (x^2).",
			nil, value.Value.Sq),
		unaryFn("sqrt", "The square root (sqrt) function returns the square root of a number.",
			nil, value.Value.Sqrt),
		unaryFn("abs", "The abs function returns the absolute value of a number.",
			nil, value.Value.Abs),
		unaryFn("ln", "The ln function returns the natural logarithm of a number.",
			nil, value.Value.Ln),
		unaryFn("log10", "The log10 function returns the base 10 logarithm of a number.",
			[]string{"log"}, value.Value.Log10),
		unaryFn("log2", "The log2 function returns the base 2 logarithm of a number.",
			nil, value.Value.Log2),
		unaryFn("exp", "The exp function returns e raised to the power of a number.",
			nil, value.Value.Exp),
		unaryFn("floor", "The floor function rounds a number down to the next integer.",
			nil, value.Value.Floor),
		unaryFn("ceil", "The ceil function rounds a number up to the next integer.",
			nil, value.Value.Ceil),
		unaryFn("round", "The round function rounds a number to the nearest integer, halves away from zero.",
			nil, value.Value.Round),
	}
}

func trigFunctions() []Function {
	return []Function{
		trigFn("sin", "The sin function returns the sine of a number in the current angle mode.", value.Value.Sin),
		trigFn("cos", "The cos function returns the cosine of a number in the current angle mode.", value.Value.Cos),
		trigFn("tan", "The tan function returns the tangent of a number in the current angle mode.", value.Value.Tan),
		trigFn("asin", "The asin function returns the inverse sine (in the current angle mode) of a number.", value.Value.Asin),
		trigFn("acos", "The acos function returns the inverse cosine (in the current angle mode) of a number.", value.Value.Acos),
		trigFn("atan", "The atan function returns the inverse tangent (in the current angle mode) of a number.", value.Value.Atan),
		&builtin{
			name:        "atan2",
			description: "The atan2 function returns the angle in the plane (in the current angle mode) between the positive x-axis and the ray from (0, 0) to the point (x, y), for atan2(y, x).",
			exec: func(s *State) (Record, error) {
				mode := s.angleMode
				return executeBinary(s, func(y, x value.Value) (value.Value, error) {
					return y.Atan2(x, mode)
				})
			},
		},
	}
}

func stackFunctions() []Function {
	return []Function{
		&builtin{
			name:        "drop",
			description: "The drop function removes the top item from the stack.",
			exec:        executeDrop,
		},
		&builtin{
			name:        "dup",
			description: "The dup function pushes a copy of the top item.",
			exec: func(s *State) (Record, error) {
				top, ok := s.stack.Peek(0)
				if !ok {
					return nil, notEnoughArguments(1, 0)
				}
				s.stack.Push(top)
				return PushRecord{Value: top}, nil
			},
		},
		&builtin{
			name:        "over",
			description: "The over function pushes a copy of the second item from the top.",
			exec: func(s *State) (Record, error) {
				second, ok := s.stack.Peek(1)
				if !ok {
					return nil, notEnoughArguments(2, s.stack.Len())
				}
				s.stack.Push(second)
				return PushRecord{Value: second}, nil
			},
		},
		&builtin{
			name:        "swap",
			description: "The swap function exchanges the two top items.",
			exec: func(s *State) (Record, error) {
				if s.stack.Len() < 2 {
					return nil, notEnoughArguments(2, s.stack.Len())
				}
				popped, err := s.stack.PopN(2)
				if err != nil {
					return nil, err
				}
				b, a := popped[0], popped[1]
				s.stack.Push(b)
				s.stack.Push(a)
				return CompositeRecord{Records: []Record{
					PopRecord{Value: b},
					PopRecord{Value: a},
					PushRecord{Value: b},
					PushRecord{Value: a},
				}}, nil
			},
		},
		&builtin{
			name:        "clear",
			description: "The clear function removes every item from the stack.",
			exec: func(s *State) (Record, error) {
				if s.stack.Len() == 0 {
					return nil, nil
				}
				return ClearRecord{Items: s.stack.Clear()}, nil
			},
		},
	}
}

func executeDrop(s *State) (Record, error) {
	top, ok := s.stack.Pop()
	if !ok {
		return nil, notEnoughArguments(1, 0)
	}
	return PopRecord{Value: top}, nil
}

func modeFunctions() []Function {
	angle := func(name, description string, mode value.AngleMode) Function {
		return &builtin{
			name:        name,
			description: description,
			exec: func(s *State) (Record, error) {
				if s.angleMode == mode {
					return nil, nil
				}
				rec := AngleModeRecord{Previous: s.angleMode, New: mode}
				s.angleMode = mode
				return rec, nil
			},
		}
	}
	base := func(name, description string, b int) Function {
		return &builtin{
			name:        name,
			description: description,
			exec: func(s *State) (Record, error) {
				if s.displayBase == b {
					return nil, nil
				}
				rec := DisplayBaseRecord{Previous: s.displayBase, New: b}
				s.displayBase = b
				return rec, nil
			},
		}
	}

	return []Function{
		angle("deg", "The deg function sets the current angle mode to degrees", value.Degrees),
		angle("rad", "The rad function sets the current angle mode to radians", value.Radians),
		base("bin", "The bin function displays numbers in binary.", value.Binary),
		base("oct", "The oct function displays numbers in octal.", value.Octal),
		base("dec", "The dec function displays numbers in their own base, decimal unless entered otherwise.", value.Decimal),
		base("hex", "The hex function displays numbers in hexadecimal.", value.Hexadecimal),
	}
}

func storeFunction() Function {
	return &builtin{
		name:        "store",
		description: "The store function binds the second item to the name given by the top string, for store(value, 'name').",
		exec: func(s *State) (Record, error) {
			if s.stack.Len() < 2 {
				return nil, notEnoughArguments(2, s.stack.Len())
			}
			top, _ := s.stack.Peek(0)
			v, _ := s.stack.Peek(1)

			name, ok := top.Text()
			if !ok {
				return nil, invalidArgument("store expects a string name on top, got %s", top.Kind())
			}
			if !identifierRe.MatchString(name) {
				return nil, invalidArgument("%q is not a valid variable name", name)
			}
			if _, isConst := s.constants[name]; isConst {
				return nil, invalidArgument("%s is a constant", name)
			}
			if _, isFunc := s.registry.Lookup(name); isFunc {
				return nil, invalidArgument("%s is a function", name)
			}

			if _, err := s.stack.PopN(2); err != nil {
				return nil, err
			}
			previous, had := s.variables[name]
			s.variables[name] = v
			return StoreRecord{Name: name, Value: v, Previous: previous, HadPrevious: had}, nil
		},
	}
}

func copyFunction() Function {
	return &builtin{
		name:        "copy",
		description: "Copy the top item on the stack to the clipboard as text paste reads back.",
		exec: func(s *State) (Record, error) {
			top, ok := s.stack.Peek(0)
			if !ok {
				return nil, notEnoughArguments(1, 0)
			}
			if s.previewing {
				return nil, nil
			}
			if s.clipboard == nil {
				return nil, &ClipboardError{Op: "write", Err: ErrNoClipboard}
			}
			if err := s.clipboard.Set(value.Literal(top, s.FormatOptions().Base)); err != nil {
				return nil, &ClipboardError{Op: "write", Err: err}
			}
			return nil, nil
		},
	}
}

func pasteFunction() Function {
	return &builtin{
		name:        "paste",
		description: "Paste the clipboard text onto the stack.",
		exec: func(s *State) (Record, error) {
			if s.previewing {
				return nil, nil
			}
			if s.pasting {
				return nil, invalidArgument("the clipboard text cannot paste itself")
			}
			if s.clipboard == nil {
				return nil, &ClipboardError{Op: "read", Err: ErrNoClipboard}
			}
			text, err := s.clipboard.Get()
			if err != nil {
				return nil, &ClipboardError{Op: "read", Err: err}
			}
			if strings.TrimSpace(text) == "" {
				return nil, invalidArgument("no or invalid data on the clipboard")
			}

			s.pasting = true
			defer func() { s.pasting = false }()

			records, err := s.evaluate(text)
			if err != nil {
				return nil, err
			}
			return bundle(records), nil
		},
	}
}
