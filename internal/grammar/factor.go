package grammar

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
)

// LeftFactor returns a new Grammar in which no two alternatives of a
// non-terminal begin with the same symbol.
//
// For each non-terminal A, the leading symbols of its alternatives are
// scanned in sorted order, and the first one shared by more than one
// alternative is taken as the common prefix a. The rule
//
//	A -> aβ₁ | aβ₂ | ... | aβₙ | γ₁ | ... | γₘ
//
// is replaced by
//
//	A    -> aA_lf | γ₁ | ... | γₘ
//	A_lf -> β₁ | β₂ | ... | βₙ
//
// where an empty βᵢ becomes ε, and A_lf is itself factored the same way. Only
// one prefix is factored per non-terminal. Unless keepOtherTails is set, each
// γᵢ is reduced to its leading symbol, and a warning is returned for every
// alternative that loses symbols that way. If keepOtherTails is set, a
// warning is returned for every non-terminal left with a shared leading
// symbol.
//
// Calling LeftFactor on a grammar that it has already factored returns an
// identical grammar.
func (g Grammar) LeftFactor(keepOtherTails bool) (Grammar, []string, error) {
	g = g.Copy()

	var warnings []string

	// every factoring shortens the alternatives being grouped by at least one
	// symbol, so the number of steps cannot exceed the number of symbols.
	budget := len(g.rules) + 1
	for _, r := range g.rules {
		for _, alt := range r.Alternatives {
			budget += len(alt)
		}
	}

	queue := g.NonTerminals()
	steps := 0
	for len(queue) > 0 {
		A := queue[0]
		queue = queue[1:]

		ARule := g.Rule(A)
		cur, found := firstSharedLeading(ARule.Alternatives)
		if !found {
			continue
		}

		steps++
		if steps > budget {
			return Grammar{}, nil, NonConvergenceError{Stage: "left factoring", Cycle: []string{A, A}, Passes: steps}
		}

		APrime := g.GenerateUniqueName(A, factorSuffix)

		APrimeRule := Rule{NonTerminal: APrime}
		newARule := Rule{
			NonTerminal:  A,
			Alternatives: []Alternative{{cur, NonTerm(APrime)}},
		}
		for _, alt := range ARule.Alternatives {
			if alt.Leading() == cur {
				tail := alt[1:].Copy()
				if len(tail) == 0 {
					tail = Alternative{Epsilon}
				}
				APrimeRule.Alternatives = append(APrimeRule.Alternatives, tail)
				continue
			}

			if keepOtherTails || len(alt) == 1 {
				newARule.Alternatives = append(newARule.Alternatives, alt.Copy())
			} else {
				warnings = append(warnings, fmt.Sprintf("%s: alternative %s reduced to its leading symbol %s", A, alt, alt.Leading()))
				newARule.Alternatives = append(newARule.Alternatives, Alternative{alt.Leading()})
			}
		}
		newARule.Alternatives = dedupeAlternatives(newARule.Alternatives)
		APrimeRule.Alternatives = dedupeAlternatives(APrimeRule.Alternatives)

		g.setRule(newARule)
		g.insertRule(APrimeRule, g.rulesByName[A])

		// A_lf is factored next, before moving on to other non-terminals
		queue = append([]string{APrime}, queue...)

		if keepOtherTails {
			if other, shared := firstSharedLeading(newARule.Alternatives); shared {
				warnings = append(warnings, fmt.Sprintf("%s: alternatives beginning with %s were not factored", A, other))
			}
		}
	}

	return g, warnings, nil
}

// firstSharedLeading gives the first leading symbol, in sorted order, that
// begins more than one of the given alternatives.
func firstSharedLeading(alts []Alternative) (Symbol, bool) {
	if len(alts) < 2 {
		return Symbol{}, false
	}

	counts := treemap.NewWith(compareSymbols)
	for _, alt := range alts {
		n, _ := counts.Get(alt.Leading())
		if n == nil {
			n = 0
		}
		counts.Put(alt.Leading(), n.(int)+1)
	}

	it := counts.Iterator()
	for it.Next() {
		if it.Value().(int) > 1 {
			return it.Key().(Symbol), true
		}
	}
	return Symbol{}, false
}

// UnfactoredNonTerminals returns the non-terminals of g that still have more
// than one alternative beginning with the same symbol.
func (g Grammar) UnfactoredNonTerminals() []string {
	var names []string
	for _, r := range g.rules {
		if _, shared := firstSharedLeading(r.Alternatives); shared {
			names = append(names, r.NonTerminal)
		}
	}
	return names
}
