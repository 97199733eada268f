package calc

import (
	"fmt"
	"strings"

	"github.com/codefionn/rpncalc/internal/value"
)

// Record is one journal entry: the inverse of a single evaluation step and the
// means to replay it. Both directions check the state they are about to
// revert and fail with *InconsistentJournalError on mismatch.
type Record interface {
	fmt.Stringer
	undo(s *State) error
	redo(s *State) error
}

// PushRecord is emitted when a value was pushed.
type PushRecord struct {
	Value value.Value
}

// PopRecord is emitted when a value was dropped.
type PopRecord struct {
	Value value.Value
}

// UnaryFnRecord is emitted when the top Arg was replaced by Result.
type UnaryFnRecord struct {
	Arg    value.Value
	Result value.Value
}

// BinaryFnRecord is emitted when A (below) and B (top) were replaced by Result.
type BinaryFnRecord struct {
	A      value.Value
	B      value.Value
	Result value.Value
}

// StoreRecord is emitted when Value and String(Name) were popped and Value was
// bound to Name. HadPrevious tells whether Previous held a binding.
type StoreRecord struct {
	Name        string
	Value       value.Value
	Previous    value.Value
	HadPrevious bool
}

// AngleModeRecord is emitted for a switch between degrees and radians.
type AngleModeRecord struct {
	Previous value.AngleMode
	New      value.AngleMode
}

// DisplayBaseRecord is emitted when the calculator display base changed.
type DisplayBaseRecord struct {
	Previous int
	New      int
}

// ClearRecord holds the items, bottom first, removed by clearing the stack.
type ClearRecord struct {
	Items []value.Value
}

// CompositeRecord bundles the records of one input line. It replays forward
// in order and backward in reverse order.
type CompositeRecord struct {
	Records []Record
}

func (r PushRecord) String() string  { return "push " + r.Value.GoString() }
func (r PopRecord) String() string   { return "pop " + r.Value.GoString() }
func (r UnaryFnRecord) String() string {
	return fmt.Sprintf("unary %#v -> %#v", r.Arg, r.Result)
}
func (r BinaryFnRecord) String() string {
	return fmt.Sprintf("binary %#v, %#v -> %#v", r.A, r.B, r.Result)
}
func (r StoreRecord) String() string { return fmt.Sprintf("store %s = %#v", r.Name, r.Value) }
func (r AngleModeRecord) String() string {
	return fmt.Sprintf("angle mode %s -> %s", r.Previous, r.New)
}
func (r DisplayBaseRecord) String() string {
	return fmt.Sprintf("display base %d -> %d", r.Previous, r.New)
}
func (r ClearRecord) String() string { return fmt.Sprintf("clear %d items", len(r.Items)) }
func (r CompositeRecord) String() string {
	parts := make([]string, len(r.Records))
	for i, rec := range r.Records {
		parts[i] = rec.String()
	}
	return "[" + strings.Join(parts, "; ") + "]"
}

// expectTop verifies that the topmost len(want) items equal want, given
// bottom first.
func (s *State) expectTop(op string, want ...value.Value) error {
	n := len(want)
	if s.stack.Len() < n {
		return inconsistent("%s: expected at least %d items on the stack, found %d", op, n, s.stack.Len())
	}
	for i, w := range want {
		got, _ := s.stack.Peek(n - 1 - i)
		if !got.Equal(w) {
			return inconsistent("%s: expected %#v at position %d, found %#v", op, w, n-1-i, got)
		}
	}
	return nil
}

func (s *State) dropTop(n int) {
	// expectTop has already checked the length
	_, _ = s.stack.PopN(n)
}

func (r PushRecord) undo(s *State) error {
	if err := s.expectTop("undo push", r.Value); err != nil {
		return err
	}
	s.dropTop(1)
	return nil
}

func (r PushRecord) redo(s *State) error {
	s.stack.Push(r.Value)
	return nil
}

func (r PopRecord) undo(s *State) error {
	s.stack.Push(r.Value)
	return nil
}

func (r PopRecord) redo(s *State) error {
	if err := s.expectTop("redo pop", r.Value); err != nil {
		return err
	}
	s.dropTop(1)
	return nil
}

func (r UnaryFnRecord) undo(s *State) error {
	if err := s.expectTop("undo unary function", r.Result); err != nil {
		return err
	}
	s.dropTop(1)
	s.stack.Push(r.Arg)
	return nil
}

func (r UnaryFnRecord) redo(s *State) error {
	if err := s.expectTop("redo unary function", r.Arg); err != nil {
		return err
	}
	s.dropTop(1)
	s.stack.Push(r.Result)
	return nil
}

func (r BinaryFnRecord) undo(s *State) error {
	if err := s.expectTop("undo binary function", r.Result); err != nil {
		return err
	}
	s.dropTop(1)
	s.stack.Push(r.A)
	s.stack.Push(r.B)
	return nil
}

func (r BinaryFnRecord) redo(s *State) error {
	if err := s.expectTop("redo binary function", r.A, r.B); err != nil {
		return err
	}
	s.dropTop(2)
	s.stack.Push(r.Result)
	return nil
}

func (r StoreRecord) undo(s *State) error {
	bound, ok := s.variables[r.Name]
	if !ok || !bound.Equal(r.Value) {
		return inconsistent("undo store: variable %q is not bound to %#v", r.Name, r.Value)
	}
	if r.HadPrevious {
		s.variables[r.Name] = r.Previous
	} else {
		delete(s.variables, r.Name)
	}
	s.stack.Push(r.Value)
	s.stack.Push(value.String(r.Name))
	return nil
}

func (r StoreRecord) redo(s *State) error {
	if err := s.expectTop("redo store", r.Value, value.String(r.Name)); err != nil {
		return err
	}
	s.dropTop(2)
	s.variables[r.Name] = r.Value
	return nil
}

func (r AngleModeRecord) undo(s *State) error {
	if s.angleMode != r.New {
		return inconsistent("undo angle mode: expected %s, found %s", r.New, s.angleMode)
	}
	s.angleMode = r.Previous
	return nil
}

func (r AngleModeRecord) redo(s *State) error {
	if s.angleMode != r.Previous {
		return inconsistent("redo angle mode: expected %s, found %s", r.Previous, s.angleMode)
	}
	s.angleMode = r.New
	return nil
}

func (r DisplayBaseRecord) undo(s *State) error {
	if s.displayBase != r.New {
		return inconsistent("undo display base: expected %d, found %d", r.New, s.displayBase)
	}
	s.displayBase = r.Previous
	return nil
}

func (r DisplayBaseRecord) redo(s *State) error {
	if s.displayBase != r.Previous {
		return inconsistent("redo display base: expected %d, found %d", r.Previous, s.displayBase)
	}
	s.displayBase = r.New
	return nil
}

func (r ClearRecord) undo(s *State) error {
	if s.stack.Len() != 0 {
		return inconsistent("undo clear: expected an empty stack, found %d items", s.stack.Len())
	}
	for _, v := range r.Items {
		s.stack.Push(v)
	}
	return nil
}

func (r ClearRecord) redo(s *State) error {
	if !s.stack.Equal(r.Items) {
		return inconsistent("redo clear: stack differs from the cleared items")
	}
	s.stack.Clear()
	return nil
}

// undo walks the records backwards. If one fails, the records already undone
// are replayed so the composite stays all-or-nothing.
func (r CompositeRecord) undo(s *State) error {
	for i := len(r.Records) - 1; i >= 0; i-- {
		if err := r.Records[i].undo(s); err != nil {
			for j := i + 1; j < len(r.Records); j++ {
				if rerr := r.Records[j].redo(s); rerr != nil {
					break
				}
			}
			return err
		}
	}
	return nil
}

func (r CompositeRecord) redo(s *State) error {
	for i, rec := range r.Records {
		if err := rec.redo(s); err != nil {
			for j := i - 1; j >= 0; j-- {
				if uerr := r.Records[j].undo(s); uerr != nil {
					break
				}
			}
			return err
		}
	}
	return nil
}
