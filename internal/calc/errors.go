package calc

import (
	"errors"
	"fmt"

	"github.com/codefionn/rpncalc/internal/journal"
	"github.com/codefionn/rpncalc/internal/value"
)

var (
	// ErrNotEnoughArguments is returned before any mutation when an operation
	// needs more items than the stack holds.
	ErrNotEnoughArguments = errors.New("not enough arguments")
	ErrNothingToUndo      = journal.ErrNothingToUndo
	ErrNothingToRedo      = journal.ErrNothingToRedo
)

type (
	// ParseStackItemError reports text that is not a valid stack item.
	ParseStackItemError = value.ParseStackItemError
	// InvalidArgumentError reports an operand of the wrong variant.
	InvalidArgumentError = value.InvalidArgumentError
)

// UnknownNameError reports an identifier that is neither a constant, a
// variable nor a function.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown constant, variable, or function: %s", e.Name)
}

// InconsistentJournalError reports an undo record replayed against a state
// other than the one it was recorded in. It indicates a bug.
type InconsistentJournalError struct {
	Detail string
}

func (e *InconsistentJournalError) Error() string {
	return fmt.Sprintf("inconsistent journal: %s", e.Detail)
}

// ClipboardError wraps a failure of the clipboard collaborator.
type ClipboardError struct {
	Op  string
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard %s: %v", e.Op, e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }

// IsFatal reports whether err signals a broken journal rather than bad input.
func IsFatal(err error) bool {
	var inconsistent *InconsistentJournalError
	return errors.As(err, &inconsistent)
}

func notEnoughArguments(need, have int) error {
	return fmt.Errorf("%w: need %d, have %d", ErrNotEnoughArguments, need, have)
}

func inconsistent(format string, args ...any) error {
	return &InconsistentJournalError{Detail: fmt.Sprintf(format, args...)}
}

func invalidArgument(format string, args ...any) error {
	return &InvalidArgumentError{Detail: fmt.Sprintf(format, args...)}
}
