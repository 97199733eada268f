package calc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codefionn/rpncalc/internal/expr"
	"github.com/codefionn/rpncalc/internal/value"
)

// evaluator walks one expression tree and collects the records of every step
// in execution order.
type evaluator struct {
	s       *State
	records []Record
}

func (e *evaluator) emit(r Record) {
	if r == nil {
		return
	}
	if c, ok := r.(CompositeRecord); ok && len(c.Records) == 0 {
		return
	}
	e.records = append(e.records, r)
}

func (e *evaluator) eval(n expr.Node) error {
	switch n := n.(type) {
	case expr.Literal:
		e.s.stack.Push(n.Value)
		e.emit(PushRecord{Value: n.Value})
		return nil

	case expr.Ident:
		return e.resolve(n.Name)

	case expr.Unary:
		if err := e.eval(n.Operand); err != nil {
			return err
		}
		return e.invoke(n.Op)

	case expr.Binary:
		if err := e.eval(n.Left); err != nil {
			return err
		}
		if err := e.eval(n.Right); err != nil {
			return err
		}
		return e.invoke(n.Op)

	case expr.Call:
		for _, arg := range n.Args {
			if err := e.eval(arg); err != nil {
				return err
			}
		}
		return e.invoke(n.Name)
	}
	return fmt.Errorf("unsupported expression node %T", n)
}

// resolve looks name up as a constant, then a variable, then a function.
func (e *evaluator) resolve(name string) error {
	if c, ok := e.s.constants[name]; ok {
		e.s.stack.Push(c.Value)
		e.emit(PushRecord{Value: c.Value})
		return nil
	}
	if v, ok := e.s.variables[name]; ok {
		e.s.stack.Push(v)
		e.emit(PushRecord{Value: v})
		return nil
	}
	return e.invoke(name)
}

func (e *evaluator) invoke(name string) error {
	f, ok := e.s.registry.Lookup(name)
	if !ok {
		return &UnknownNameError{Name: name}
	}
	rec, err := f.Execute(e.s)
	if err != nil {
		return fmt.Errorf("%s: %w", f.Name(), err)
	}
	e.emit(rec)
	return nil
}

// rollback undoes the collected records in reverse order.
func (e *evaluator) rollback() error {
	return undoAll(e.s, e.records)
}

func undoAll(s *State, records []Record) error {
	for i := len(records) - 1; i >= 0; i-- {
		if err := records[i].undo(s); err != nil {
			return fmt.Errorf("roll back %s: %w", records[i], err)
		}
	}
	return nil
}

// evaluate runs one input line against the state without touching the
// journal. On failure every mutation is rolled back and no records are
// returned.
func (s *State) evaluate(line string) ([]Record, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	e := &evaluator{s: s}

	// a whole line naming a function applies it directly, so "+" adds
	if _, ok := s.registry.Lookup(line); ok {
		if err := e.invoke(line); err != nil {
			return nil, err
		}
		return e.records, nil
	}

	if v, err := value.Parse(line); err == nil {
		s.stack.Push(v)
		return []Record{PushRecord{Value: v}}, nil
	}

	node, err := expr.Parse(line)
	if err != nil {
		return nil, err
	}

	if err := e.eval(node); err != nil {
		if rerr := e.rollback(); rerr != nil {
			s.log.Error("rollback failed", "input", line, "error", rerr)
			return nil, errors.Join(err, rerr)
		}
		if len(e.records) > 0 {
			s.log.Debug("rolled back partial evaluation", "input", line, "records", len(e.records))
		}
		return nil, err
	}
	return e.records, nil
}

// bundle turns the records of one line into a single journal entry.
func bundle(records []Record) Record {
	switch len(records) {
	case 0:
		return nil
	case 1:
		return records[0]
	default:
		return CompositeRecord{Records: records}
	}
}

func (s *State) commit(records []Record) {
	if rec := bundle(records); rec != nil {
		s.journal.Append(rec)
		s.log.Debug("journal append", "record", rec.String())
	}
}

// PushInput evaluates one line of user input. A line that names a function
// applies it; anything else is parsed as a literal or an infix expression.
// On error the state is left as it was.
func (s *State) PushInput(line string) error {
	records, err := s.evaluate(line)
	if err != nil {
		s.logFailure("push input", line, err)
		return err
	}
	s.commit(records)
	return nil
}

// Pop drops the top item, as the drop function does.
func (s *State) Pop() error {
	rec, err := executeDrop(s)
	if err != nil {
		return err
	}
	s.commit([]Record{rec})
	return nil
}

// Undo reverts the most recent journal entry.
func (s *State) Undo() error {
	rec, err := s.journal.Undo()
	if err != nil {
		return err
	}
	if err := rec.undo(s); err != nil {
		// put the cursor back on the record that could not be reverted
		_, _ = s.journal.Redo()
		s.logFailure("undo", rec.String(), err)
		return err
	}
	return nil
}

// Redo replays the journal entry after the cursor.
func (s *State) Redo() error {
	rec, err := s.journal.Redo()
	if err != nil {
		return err
	}
	if err := rec.redo(s); err != nil {
		_, _ = s.journal.Undo()
		s.logFailure("redo", rec.String(), err)
		return err
	}
	return nil
}

// Preview evaluates line, reads the resulting top of stack and reverts the
// evaluation. Clipboard functions are inert while previewing. ok is false when
// the stack would be empty.
func (s *State) Preview(line string) (top value.Value, ok bool, err error) {
	s.previewing = true
	defer func() { s.previewing = false }()

	records, err := s.evaluate(line)
	if err != nil {
		return value.Value{}, false, err
	}
	top, ok = s.stack.Peek(0)
	if err := undoAll(s, records); err != nil {
		s.log.Error("preview rollback failed", "input", line, "error", err)
		return value.Value{}, false, err
	}
	return top, ok, nil
}

func (s *State) logFailure(op, subject string, err error) {
	if IsFatal(err) {
		s.log.Error(op+" failed", "subject", subject, "error", err)
		return
	}
	s.log.Debug(op+" failed", "subject", subject, "error", err)
}
