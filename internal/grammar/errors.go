package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dekarrin/prepll/internal/util"
)

var (
	ErrSyntax              = errors.New("not a valid production statement")
	ErrEmpty               = errors.New("grammar has no productions")
	ErrUndeclared          = errors.New("grammar references undeclared non-terminal")
	ErrDegenerateRecursion = errors.New("non-terminal is left-recursive with no base alternative")
	ErrNonConvergence      = errors.New("set computation did not converge")
)

// SyntaxError is returned when a production statement is not in the form
// "A: alt1 | alt2 | ...". It is also returned by errors.Is(err, ErrSyntax).
type SyntaxError struct {
	// Statement is the raw statement that was rejected.
	Statement string

	// Index is the position of the statement within the input, starting at 0.
	Index int
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("statement %d (%q): %s", e.Index+1, e.Statement, ErrSyntax.Error())
}

func (e SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// UndeclaredError is returned when one or more alternatives name a
// non-terminal that has no production set of its own.
type UndeclaredError struct {
	// Missing maps each undeclared non-terminal to the non-terminals whose
	// alternatives reference it. Both are in order of first appearance.
	Missing []string
	UsedBy  map[string][]string
}

func (e UndeclaredError) Error() string {
	var parts []string
	for _, nt := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s (used by %s)", nt, util.MakeTextList(e.UsedBy[nt])))
	}
	return ErrUndeclared.Error() + ": " + strings.Join(parts, "; ")
}

func (e UndeclaredError) Is(target error) bool {
	return target == ErrUndeclared
}

// DegenerateRecursionError is returned when every alternative of a
// non-terminal begins with that non-terminal, so that no finite derivation
// exists.
type DegenerateRecursionError struct {
	NonTerminal string
}

func (e DegenerateRecursionError) Error() string {
	return fmt.Sprintf("%s: %s", e.NonTerminal, ErrDegenerateRecursion.Error())
}

func (e DegenerateRecursionError) Is(target error) bool {
	return target == ErrDegenerateRecursion
}

// NonConvergenceError is returned when a fixed-point computation either finds
// a cycle it cannot resolve or exceeds its pass budget.
type NonConvergenceError struct {
	// Stage is the name of the computation that failed, such as "FIRST".
	Stage string

	// Cycle is the chain of non-terminals responsible, with the first element
	// repeated at the end. It may be empty if the budget ran out without a
	// cycle being identifiable.
	Cycle []string

	// Passes is the number of passes that were made before giving up.
	Passes int
}

func (e NonConvergenceError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Stage, ErrNonConvergence.Error())
	if len(e.Cycle) > 0 {
		msg += " due to cycle " + strings.Join(e.Cycle, " -> ")
	}
	if e.Passes > 0 {
		msg += fmt.Sprintf(" after %d passes", e.Passes)
	}
	return msg
}

func (e NonConvergenceError) Is(target error) bool {
	return target == ErrNonConvergence
}
