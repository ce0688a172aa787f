// Package plerrors has errors that carry a message meant to be shown to the
// person running the program, along with the more technical message returned
// by Error().
package plerrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dekarrin/prepll/internal/grammar"
	"github.com/dekarrin/prepll/internal/util"
)

// displayError is an error that includes a human-readable message to show to
// an operator as well as a typical more technical "error message" style
// message.
type displayError struct {
	msg   string
	human string
	wrap  error
}

func (e *displayError) Error() string {
	return e.msg
}

// DisplayMessage shows the message that should be displayed to the user to
// describe the error.
func (e *displayError) DisplayMessage() string {
	return e.human
}

// Unwrap gives the error that the displayError wraps, if it wraps one.
func (e *displayError) Unwrap() error {
	return e.wrap
}

// Display returns a new error that has both the message to show the user and
// the technical description of the error.
func Display(human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got DisplayError(%q)", human)
	}
	return &displayError{
		msg:   technical,
		human: human,
	}
}

// Displayf returns a new error that has a message to show to the user and an
// automatically generated Error() description. The arguments given are the
// format string and the arguments to the format string.
func Displayf(humanFormat string, a ...interface{}) error {
	return Display(fmt.Sprintf(humanFormat, a...), "")
}

// WrapDisplay returns a new error that has both the message to show the user
// and the technical description of the error, and that wraps the given error.
// If technical is empty, the wrapped error's message is used.
func WrapDisplay(e error, human, technical string) error {
	if technical == "" {
		technical = e.Error()
	}
	return &displayError{
		msg:   technical,
		human: human,
		wrap:  e,
	}
}

// WrapDisplayf returns a new error that has a message to show the user built
// from the format and its arguments, and that wraps the given error.
func WrapDisplayf(e error, humanFormat string, a ...interface{}) error {
	return WrapDisplay(e, fmt.Sprintf(humanFormat, a...), "")
}

// DisplayMessage gets the message to display to the console for the given
// error. If the error or any error it wraps was created by this package, its
// display message is returned. Errors from preparing a grammar are described
// in terms of the offending non-terminals. Otherwise, err.Error() is returned.
func DisplayMessage(err error) string {
	var dispErr *displayError
	if errors.As(err, &dispErr) {
		return dispErr.DisplayMessage()
	}

	var synErr grammar.SyntaxError
	var undeclErr grammar.UndeclaredError
	var degenErr grammar.DegenerateRecursionError
	var ncErr grammar.NonConvergenceError

	switch {
	case errors.As(err, &synErr):
		return fmt.Sprintf("No valid production found for %s. Please try again.", synErr.Statement)
	case errors.As(err, &undeclErr):
		return undeclaredMessage(undeclErr)
	case errors.As(err, &degenErr):
		A := degenErr.NonTerminal
		return fmt.Sprintf("Every alternative of %s begins with %s, so %s can never derive a finite string. Add an alternative for %s that does not begin with %s.", A, A, A, A, A)
	case errors.As(err, &ncErr):
		return nonConvergenceMessage(ncErr)
	case errors.Is(err, grammar.ErrEmpty):
		return "No productions were entered."
	}

	return err.Error()
}

func undeclaredMessage(e grammar.UndeclaredError) string {
	var sb strings.Builder

	nts := util.Plural(len(e.Missing), "non-terminal", "non-terminals")
	verb := util.Plural(len(e.Missing), "is", "are")
	sb.WriteString(fmt.Sprintf("The %s %s %s used but never defined.", nts, util.MakeTextList(e.Missing), verb))

	for _, nt := range e.Missing {
		sb.WriteString(fmt.Sprintf(" %s is used by %s.", nt, util.MakeTextList(e.UsedBy[nt])))
	}
	return sb.String()
}

func nonConvergenceMessage(e grammar.NonConvergenceError) string {
	if len(e.Cycle) == 0 {
		return fmt.Sprintf("The %s sets could not be computed within %d passes.", e.Stage, e.Passes)
	}

	chain := strings.Join(e.Cycle, " -> ")
	if e.Stage == "FIRST" {
		return fmt.Sprintf("The FIRST sets could not be computed because the grammar is indirectly left-recursive: %s.", chain)
	}
	if e.Stage == "FOLLOW" {
		return fmt.Sprintf("The FOLLOW sets could not be computed because they depend on each other: %s.", chain)
	}
	return fmt.Sprintf("The %s sets could not be computed because of the cycle %s.", e.Stage, chain)
}
