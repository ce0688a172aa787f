package grammar

import (
	"fmt"
)

// DefaultPassFactor is the multiplier applied to the number of non-terminals
// to get the maximum number of passes FIRST and FOLLOW may take.
const DefaultPassFactor = 4

// Options controls how Run prepares a grammar.
type Options struct {
	// Epsilon is the character that denotes the empty alternative in
	// production statements.
	Epsilon rune

	// PassFactor multiplies the number of non-terminals to bound the
	// fixed-point passes of FIRST and FOLLOW.
	PassFactor int

	// KeepOtherTails makes left factoring keep the full alternatives that do
	// not share the factored prefix instead of only their leading symbol.
	KeepOtherTails bool
}

// DefaultOptions returns the Options used when none are given.
func DefaultOptions() Options {
	return Options{
		Epsilon:    DefaultEpsilon,
		PassFactor: DefaultPassFactor,
	}
}

// Analysis is the result of preparing a grammar for top-down parsing.
type Analysis struct {
	// Initial is the grammar as it was entered.
	Initial Grammar

	// NoLeftRecursion is Initial with direct left recursion removed and the
	// synthetic start rule added.
	NoLeftRecursion Grammar

	// Factored is NoLeftRecursion after left factoring. First and Follow are
	// computed on it.
	Factored Grammar

	First  FirstTable
	Follow FollowTable

	// Warnings lists places where left factoring could not fully preserve or
	// factor a rule.
	Warnings []string
}

// Run builds a grammar from the given production statements and prepares it:
// the grammar is checked for undeclared non-terminals, left recursion is
// removed, it is left factored, and its FIRST and FOLLOW sets are computed.
// Either every stage succeeds or an error is returned along with an empty
// Analysis.
func Run(statements []string, opts Options) (Analysis, error) {
	if opts.Epsilon == 0 {
		opts.Epsilon = DefaultEpsilon
	}
	if opts.PassFactor < 1 {
		opts.PassFactor = DefaultPassFactor
	}

	var a Analysis
	var err error

	a.Initial, err = Build(statements, opts.Epsilon)
	if err != nil {
		return Analysis{}, err
	}
	if err := a.Initial.Validate(); err != nil {
		return Analysis{}, err
	}

	a.NoLeftRecursion, err = a.Initial.RemoveLeftRecursion()
	if err != nil {
		return Analysis{}, fmt.Errorf("removing left recursion: %w", err)
	}

	a.Factored, a.Warnings, err = a.NoLeftRecursion.LeftFactor(opts.KeepOtherTails)
	if err != nil {
		return Analysis{}, fmt.Errorf("left factoring: %w", err)
	}

	a.First, err = a.Factored.FIRST(opts.PassFactor)
	if err != nil {
		return Analysis{}, fmt.Errorf("computing FIRST sets: %w", err)
	}

	a.Follow, err = a.Factored.FOLLOW(a.First, opts.PassFactor)
	if err != nil {
		return Analysis{}, fmt.Errorf("computing FOLLOW sets: %w", err)
	}

	return a, nil
}
