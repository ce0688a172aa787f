package grammar

import (
	"strings"
)

// Grammar is an ordered set of production rules along with the name of the
// non-terminal that derivations start from. The order of rules is the order
// that non-terminals were first defined in, with generated non-terminals
// placed immediately after the non-terminal they were created for.
//
// The transformation stages never modify the Grammar they are called on; each
// returns a new one.
type Grammar struct {
	rulesByName map[string]int
	rules       []Rule

	// Start is the non-terminal that derivations begin from. It is the first
	// non-terminal defined until a synthetic start rule is added.
	Start string
}

// Copy makes a duplicate deep copy of the grammar.
func (g Grammar) Copy() Grammar {
	cp := Grammar{
		rulesByName: make(map[string]int, len(g.rulesByName)),
		rules:       make([]Rule, len(g.rules)),
		Start:       g.Start,
	}
	for k, v := range g.rulesByName {
		cp.rulesByName[k] = v
	}
	for i := range g.rules {
		cp.rules[i] = g.rules[i].Copy()
	}
	return cp
}

// Len returns the number of non-terminals in the grammar.
func (g Grammar) Len() int {
	return len(g.rules)
}

// NonTerminals returns the names of all non-terminals in the grammar in rule
// order.
func (g Grammar) NonTerminals() []string {
	names := make([]string, len(g.rules))
	for i := range g.rules {
		names[i] = g.rules[i].NonTerminal
	}
	return names
}

// Terminals returns every terminal used by the grammar, in order of first
// appearance.
func (g Grammar) Terminals() []Symbol {
	seen := map[Symbol]bool{}
	var terms []Symbol
	for _, r := range g.rules {
		for _, alt := range r.Alternatives {
			for _, sym := range alt {
				if sym.IsTerminal() && !seen[sym] {
					seen[sym] = true
					terms = append(terms, sym)
				}
			}
		}
	}
	return terms
}

// Has returns whether the grammar has a rule for the given non-terminal.
func (g Grammar) Has(nonTerminal string) bool {
	_, ok := g.rulesByName[nonTerminal]
	return ok
}

// Rule returns the grammar rule for the given non-terminal. If there is no
// rule defined for that non-terminal, a Rule with an empty NonTerminal field
// is returned.
func (g Grammar) Rule(nonTerminal string) Rule {
	if g.rulesByName == nil {
		return Rule{}
	}
	idx, ok := g.rulesByName[nonTerminal]
	if !ok {
		return Rule{}
	}
	return g.rules[idx]
}

// Rules returns copies of all rules in the grammar, in order.
func (g Grammar) Rules() []Rule {
	rules := make([]Rule, len(g.rules))
	for i := range g.rules {
		rules[i] = g.rules[i].Copy()
	}
	return rules
}

// AddRule adds alternatives to the rule for the given non-terminal, creating
// the rule at the end of the grammar if it does not yet exist. Alternatives
// that are already present are skipped. The first rule added to an empty
// grammar sets its Start.
func (g *Grammar) AddRule(nonTerminal string, alts ...Alternative) {
	if g.rulesByName == nil {
		g.rulesByName = map[string]int{}
	}

	idx, ok := g.rulesByName[nonTerminal]
	if !ok {
		g.rules = append(g.rules, Rule{NonTerminal: nonTerminal})
		idx = len(g.rules) - 1
		g.rulesByName[nonTerminal] = idx
		if g.Start == "" {
			g.Start = nonTerminal
		}
	}

	r := g.rules[idx]
	for _, alt := range alts {
		if !r.HasAlternative(alt) {
			r.Alternatives = append(r.Alternatives, alt.Copy())
		}
	}
	g.rules[idx] = r
}

// setRule replaces the alternatives of an existing rule.
func (g *Grammar) setRule(r Rule) {
	g.rules[g.rulesByName[r.NonTerminal]] = r
}

// insertRule places r immediately after the rule at index idx. An idx of -1
// places it first.
func (g *Grammar) insertRule(r Rule, idx int) {
	if g.rulesByName == nil {
		g.rulesByName = map[string]int{}
	}

	// explicitly copy the end of the slice; appending onto the head while
	// holding a slice of the tail aliases the backing array
	postList := make([]Rule, len(g.rules)-(idx+1))
	copy(postList, g.rules[idx+1:])
	g.rules = append(g.rules[:idx+1], r)
	g.rules = append(g.rules, postList...)

	for i := idx + 1; i < len(g.rules); i++ {
		g.rulesByName[g.rules[i].NonTerminal] = i
	}
}

// GenerateUniqueName gives a name for a new non-terminal based on original
// with suffix appended. If that name is taken, suffix is appended again until
// the name is unique within the grammar.
func (g Grammar) GenerateUniqueName(original, suffix string) string {
	newName := original + suffix
	for g.Has(newName) {
		newName += suffix
	}
	return newName
}

// Validate checks that the grammar is non-empty and that every non-terminal
// referenced by an alternative has a rule of its own.
func (g Grammar) Validate() error {
	if len(g.rules) == 0 {
		return ErrEmpty
	}

	undeclared := UndeclaredError{UsedBy: map[string][]string{}}
	for _, r := range g.rules {
		for _, alt := range r.Alternatives {
			for _, sym := range alt {
				if !sym.IsNonTerminal() || g.Has(sym.Value) {
					continue
				}
				users, seen := undeclared.UsedBy[sym.Value]
				if !seen {
					undeclared.Missing = append(undeclared.Missing, sym.Value)
				}
				if len(users) == 0 || users[len(users)-1] != r.NonTerminal {
					undeclared.UsedBy[sym.Value] = append(users, r.NonTerminal)
				}
			}
		}
	}

	if len(undeclared.Missing) > 0 {
		return undeclared
	}
	return nil
}

// String shows the grammar with one rule per line.
func (g Grammar) String() string {
	var sb strings.Builder
	for i := range g.rules {
		sb.WriteString(g.rules[i].String())
		sb.WriteRune('\n')
	}
	return sb.String()
}
