package value

import "fmt"

// InvalidArgumentError reports an operand of the wrong variant.
type InvalidArgumentError struct {
	Detail string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Detail)
}

// ParseStackItemError reports text that cannot be converted to a Value.
type ParseStackItemError struct {
	Text   string
	Reason string
}

func (e *ParseStackItemError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("parse stack item: %s", e.Text)
	}
	return fmt.Sprintf("parse stack item: %s: %s", e.Text, e.Reason)
}

func invalidBinary(op string, a, b Value) error {
	return &InvalidArgumentError{Detail: fmt.Sprintf("%s expects numbers, got %s and %s", op, a.kind, b.kind)}
}

func invalidUnary(op string, a Value) error {
	return &InvalidArgumentError{Detail: fmt.Sprintf("%s expects a number, got %s", op, a.kind)}
}
