package grammar

const (
	recursionSuffix = "_rr"
	factorSuffix    = "_lf"
	startSuffix     = "'"
)

// RemoveLeftRecursion returns a new Grammar equivalent to this one but with
// all direct left recursion eliminated. Every rule of the form
//
//	A -> Aα₁ | Aα₂ | ... | Aαₘ | β₁ | β₂ | ... | βₙ
//
// where no βᵢ starts with A, is replaced by
//
//	A    -> β₁A_rr | β₂A_rr | ... | βₙA_rr
//	A_rr -> α₁A_rr | α₂A_rr | ... | αₘA_rr | ε
//
// with A_rr placed immediately after A. A leading ε is dropped from each βᵢ,
// and alternatives of the form A -> A are discarded since they derive nothing
// new.
//
// It also adds a synthetic start rule as the first rule of the grammar, named
// after the original start symbol with a prime added, whose only alternative
// is the original start symbol.
//
// A DegenerateRecursionError is returned if a non-terminal has only
// left-recursive alternatives. Indirect left recursion is not removed; it is
// reported when FIRST sets are computed.
func (g Grammar) RemoveLeftRecursion() (Grammar, error) {
	if len(g.rules) == 0 {
		return Grammar{}, ErrEmpty
	}

	g = g.Copy()

	for _, A := range g.NonTerminals() {
		ARule := g.Rule(A)

		var alphas, betas []Alternative
		var hadSelfUnit bool
		for _, alt := range ARule.Alternatives {
			if alt.Leading() != NonTerm(A) {
				betas = append(betas, alt)
				continue
			}
			if len(alt) == 1 {
				hadSelfUnit = true
				continue
			}
			alphas = append(alphas, alt[1:])
		}

		if len(betas) < 1 && (len(alphas) > 0 || hadSelfUnit) {
			return Grammar{}, DegenerateRecursionError{NonTerminal: A}
		}

		if len(alphas) < 1 {
			if hadSelfUnit {
				ARule.Alternatives = betas
				g.setRule(ARule)
			}
			continue
		}

		APrime := g.GenerateUniqueName(A, recursionSuffix)

		newARule := Rule{NonTerminal: A}
		for _, beta := range betas {
			var newAlt Alternative
			if beta.Leading().IsEpsilon() {
				newAlt = append(newAlt, beta[1:]...)
			} else {
				newAlt = append(newAlt, beta...)
			}
			newAlt = append(newAlt, NonTerm(APrime))
			newARule.Alternatives = append(newARule.Alternatives, newAlt)
		}
		newARule.Alternatives = dedupeAlternatives(newARule.Alternatives)

		APrimeRule := Rule{NonTerminal: APrime}
		for _, alpha := range alphas {
			newAlt := append(alpha.Copy(), NonTerm(APrime))
			APrimeRule.Alternatives = append(APrimeRule.Alternatives, newAlt)
		}
		APrimeRule.Alternatives = append(APrimeRule.Alternatives, Alternative{Epsilon})
		APrimeRule.Alternatives = dedupeAlternatives(APrimeRule.Alternatives)

		g.setRule(newARule)
		g.insertRule(APrimeRule, g.rulesByName[A])
	}

	return g.withStartRule(), nil
}

// withStartRule returns a copy of g with a new first rule that produces the
// current start symbol, and with Start set to that new rule.
func (g Grammar) withStartRule() Grammar {
	g = g.Copy()
	start := g.GenerateUniqueName(g.Start, startSuffix)
	g.insertRule(Rule{
		NonTerminal:  start,
		Alternatives: []Alternative{{NonTerm(g.Start)}},
	}, -1)
	g.Start = start
	return g
}
