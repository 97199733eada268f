// Package expr lexes and parses one line of calculator input into an
// expression tree.
package expr

import (
	"strings"

	"github.com/codefionn/rpncalc/internal/value"
)

// Node is an expression tree node. The set of implementations is closed.
type Node interface {
	String() string
	node()
}

// Literal is a number or string written in the input.
type Literal struct {
	Value value.Value
}

// Ident is a bare name: a constant, variable, function, or a lone operator.
type Ident struct {
	Name string
}

// Call applies a function to a parenthesised argument list.
type Call struct {
	Name string
	Args []Node
}

// Unary is a prefix operation. The only operator produced is "neg".
type Unary struct {
	Op      string
	Operand Node
}

// Binary is an infix operation, one of + - * / % ^.
type Binary struct {
	Left  Node
	Op    string
	Right Node
}

func (Literal) node() {}
func (Ident) node()   {}
func (Call) node()    {}
func (Unary) node()   {}
func (Binary) node()  {}

func (n Literal) String() string { return n.Value.String() }

func (n Ident) String() string { return n.Name }

func (n Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

func (n Unary) String() string { return "(" + n.Op + " " + n.Operand.String() + ")" }

func (n Binary) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}
