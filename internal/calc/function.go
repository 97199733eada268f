package calc

import (
	"sort"

	"github.com/codefionn/rpncalc/internal/value"
)

// Function is an operation on the calculator state. Execute either mutates
// the state and returns the record that reverts it, or fails without touching
// the state. A nil record means nothing changed.
type Function interface {
	Name() string
	Aliases() []string
	Description() string
	Execute(s *State) (Record, error)
}

type builtin struct {
	name        string
	aliases     []string
	description string
	exec        func(s *State) (Record, error)
}

func (b *builtin) Name() string                     { return b.name }
func (b *builtin) Aliases() []string                { return b.aliases }
func (b *builtin) Description() string              { return b.description }
func (b *builtin) Execute(s *State) (Record, error) { return b.exec(s) }

// Registry maps canonical names and aliases to functions. Every key of a
// function points at the same Function value, so two lookups denote the same
// function exactly when they compare equal.
type Registry struct {
	entries   map[string]Function
	functions []Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Function)}
}

// Register adds f under its name and every alias. A later registration of a
// taken key replaces the earlier binding for that key only.
func (r *Registry) Register(f Function) {
	r.functions = append(r.functions, f)
	r.entries[f.Name()] = f
	for _, alias := range f.Aliases() {
		r.entries[alias] = f
	}
}

// Lookup resolves a canonical name or alias.
func (r *Registry) Lookup(name string) (Function, bool) {
	f, ok := r.entries[name]
	return f, ok
}

// Functions returns each registered function once, in registration order.
func (r *Registry) Functions() []Function {
	out := make([]Function, len(r.functions))
	copy(out, r.functions)
	return out
}

// Keys returns every name and alias, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// executeUnary replaces the top item with f(top).
func executeUnary(s *State, f func(a value.Value) (value.Value, error)) (Record, error) {
	if s.stack.Len() < 1 {
		return nil, notEnoughArguments(1, s.stack.Len())
	}
	a, _ := s.stack.Peek(0)
	result, err := f(a)
	if err != nil {
		return nil, err
	}
	s.stack.Pop()
	s.stack.Push(result)
	return UnaryFnRecord{Arg: a, Result: result}, nil
}

// executeBinary replaces the two top items a (below) and b (top) with f(a, b).
func executeBinary(s *State, f func(a, b value.Value) (value.Value, error)) (Record, error) {
	if s.stack.Len() < 2 {
		return nil, notEnoughArguments(2, s.stack.Len())
	}
	b, _ := s.stack.Peek(0)
	a, _ := s.stack.Peek(1)
	result, err := f(a, b)
	if err != nil {
		return nil, err
	}
	if _, err := s.stack.PopN(2); err != nil {
		return nil, err
	}
	s.stack.Push(result)
	return BinaryFnRecord{A: a, B: b, Result: result}, nil
}

func unaryFn(name, description string, aliases []string, op func(value.Value) (value.Value, error)) Function {
	return &builtin{
		name:        name,
		aliases:     aliases,
		description: description,
		exec: func(s *State) (Record, error) {
			return executeUnary(s, op)
		},
	}
}

func binaryFn(name, description string, aliases []string, op func(a, b value.Value) (value.Value, error)) Function {
	return &builtin{
		name:        name,
		aliases:     aliases,
		description: description,
		exec: func(s *State) (Record, error) {
			return executeBinary(s, op)
		},
	}
}

// trigFn reads the angle mode when the function runs, not when it is built.
func trigFn(name, description string, op func(value.Value, value.AngleMode) (value.Value, error)) Function {
	return &builtin{
		name:        name,
		description: description,
		exec: func(s *State) (Record, error) {
			mode := s.angleMode
			return executeUnary(s, func(a value.Value) (value.Value, error) {
				return op(a, mode)
			})
		},
	}
}
