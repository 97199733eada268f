// Package calc is the evaluation core of the calculator: the state aggregate,
// the function registry, the expression evaluator and the undo journal records.
package calc

import (
	"io"
	"log/slog"
	"math"
	"slices"
	"sort"

	"github.com/codefionn/rpncalc/internal/journal"
	"github.com/codefionn/rpncalc/internal/stack"
	"github.com/codefionn/rpncalc/internal/value"
	"golang.org/x/text/language"
)

// Clipboard is the capability the copy and paste functions need. Get returns
// the empty string when the clipboard holds no text.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Constant is a named, read-only value.
type Constant struct {
	Name        string
	Value       value.Value
	Description string
}

// State is the whole calculator session. It has a single owner and is not
// safe for concurrent use.
type State struct {
	stack       *stack.Stack
	angleMode   value.AngleMode
	displayBase int
	registry    *Registry
	constants   map[string]Constant
	variables   map[string]value.Value
	journal     *journal.Journal[Record]

	precision       int
	scientificLimit float64
	locale          language.Tag

	clipboard Clipboard
	log       *slog.Logger

	// previewing suppresses clipboard side effects while Preview runs
	previewing bool
	pasting    bool
}

// Option customizes a State before first use.
type Option func(*State)

// WithClipboard enables copy and paste.
func WithClipboard(c Clipboard) Option {
	return func(s *State) {
		s.clipboard = c
	}
}

// WithLogger sets the logger evaluation failures and journal problems go to.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.log = l
		}
	}
}

// WithAngleMode sets the initial angle mode.
func WithAngleMode(m value.AngleMode) Option {
	return func(s *State) {
		s.angleMode = m
	}
}

// WithDisplayBase sets the initial display base. Unsupported bases are ignored.
func WithDisplayBase(base int) Option {
	return func(s *State) {
		if value.ValidBase(base) {
			s.displayBase = base
		}
	}
}

// WithDisplay sets precision, scientific notation threshold and locale.
func WithDisplay(precision int, scientificLimit float64, locale language.Tag) Option {
	return func(s *State) {
		s.SetDisplay(precision, scientificLimit, locale)
	}
}

// New returns a state with an empty stack in degree mode and base 10.
func New(opts ...Option) *State {
	s := &State{
		stack:           stack.New(),
		angleMode:       value.Degrees,
		displayBase:     value.Decimal,
		constants:       defaultConstants(),
		variables:       make(map[string]value.Value),
		journal:         journal.New[Record](),
		precision:       value.DefaultPrecision,
		scientificLimit: value.DefaultScientificLimit,
		locale:          language.AmericanEnglish,
		log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.registry = builtinRegistry()
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func defaultConstants() map[string]Constant {
	constants := []Constant{
		{Name: "pi", Value: value.Dec(math.Pi), Description: "the ratio of a circle's circumference to its diameter"},
		{Name: "e", Value: value.Dec(math.E), Description: "Euler's number"},
		{Name: "tau", Value: value.Dec(2 * math.Pi), Description: "the ratio of a circle's circumference to its radius"},
		{Name: "phi", Value: value.Dec(math.Phi), Description: "the golden ratio"},
	}
	out := make(map[string]Constant, len(constants))
	for _, c := range constants {
		out[c.Name] = c
	}
	return out
}

// Stack returns a copy of the stack, bottom first.
func (s *State) Stack() []value.Value { return s.stack.Items() }

// Len returns the number of stack items.
func (s *State) Len() int { return s.stack.Len() }

// Peek returns the item n positions below the top.
func (s *State) Peek(n int) (value.Value, bool) { return s.stack.Peek(n) }

func (s *State) AngleMode() value.AngleMode { return s.angleMode }
func (s *State) DisplayBase() int           { return s.displayBase }
func (s *State) Registry() *Registry        { return s.registry }

// CanUndo and CanRedo report whether the journal has records on either side
// of its cursor.
func (s *State) CanUndo() bool { return s.journal.CanUndo() }
func (s *State) CanRedo() bool { return s.journal.CanRedo() }

// History returns the journal cursor and length.
func (s *State) History() (cursor, length int) {
	return s.journal.Cursor(), s.journal.Len()
}

// Constant looks up a constant by name.
func (s *State) Constant(name string) (Constant, bool) {
	c, ok := s.constants[name]
	return c, ok
}

// Constants returns all constants sorted by name.
func (s *State) Constants() []Constant {
	out := make([]Constant, 0, len(s.constants))
	for _, c := range s.constants {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Variable returns the value bound to name.
func (s *State) Variable(name string) (value.Value, bool) {
	v, ok := s.variables[name]
	return v, ok
}

// VariableNames returns the bound variable names, sorted.
func (s *State) VariableNames() []string {
	names := make([]string, 0, len(s.variables))
	for name := range s.variables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SetDisplay replaces the display settings. They are not journaled.
func (s *State) SetDisplay(precision int, scientificLimit float64, locale language.Tag) {
	if precision >= 0 {
		s.precision = precision
	}
	if scientificLimit > 1 {
		s.scientificLimit = scientificLimit
	}
	if locale != language.Und {
		s.locale = locale
	}
}

// FormatOptions returns the options Format uses. With base 10 selected every
// Number renders in its own base; otherwise everything renders in the state base.
func (s *State) FormatOptions() value.FormatOptions {
	opts := value.FormatOptions{
		Precision:       s.precision,
		ScientificLimit: s.scientificLimit,
		Locale:          s.locale,
	}
	if s.displayBase != value.Decimal {
		opts.Base = s.displayBase
	}
	return opts
}

// Format renders v with the current display settings.
func (s *State) Format(v value.Value) string {
	return value.Format(v, s.FormatOptions())
}
