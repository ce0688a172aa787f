package grammar

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// FIRST computes the FIRST set of every non-terminal in the grammar.
//
// Each set starts as the distinct leading symbols of the non-terminal's
// alternatives, which may be terminals, ε, or other non-terminals. Non-terminal
// members are then replaced in synchronized passes by every member of their own
// FIRST set, ε included, until none remain. A non-terminal is never spliced
// into its own set.
//
// If the non-terminals that can begin each other's alternatives form a cycle,
// the sets can never be resolved and a NonConvergenceError naming the cycle is
// returned. This is the case for grammars with indirect left recursion. A
// NonConvergenceError is also returned if more than passFactor times the
// number of non-terminals passes are needed.
func (g Grammar) FIRST(passFactor int) (FirstTable, error) {
	if err := g.Validate(); err != nil {
		return FirstTable{}, err
	}

	names := g.NonTerminals()

	sets := map[string]*linkedhashset.Set{}
	for _, r := range g.rules {
		A := r.NonTerminal
		set := linkedhashset.New()
		for _, alt := range r.Alternatives {
			if len(alt) == 0 || alt[0] == NonTerm(A) {
				continue
			}
			set.Add(alt[0])
		}
		sets[A] = set
	}

	if cycle := findCycle(names, pendingEdges(names, sets)); cycle != nil {
		return FirstTable{}, NonConvergenceError{Stage: "FIRST", Cycle: cycle}
	}

	budget := passBudget(len(names), passFactor)
	passes := 0
	for hasPending(sets) {
		passes++
		if passes > budget {
			cycle := findCycle(names, pendingEdges(names, sets))
			return FirstTable{}, NonConvergenceError{Stage: "FIRST", Cycle: cycle, Passes: passes - 1}
		}

		// all replacements in a pass are made from the sets as they were at
		// the start of the pass
		newSets := make(map[string]*linkedhashset.Set, len(sets))
		for _, A := range names {
			newSet := linkedhashset.New()
			for _, v := range sets[A].Values() {
				member := v.(Symbol)
				if !member.IsNonTerminal() {
					newSet.Add(member)
					continue
				}
				for _, xv := range sets[member.Value].Values() {
					spliced := xv.(Symbol)
					if spliced == NonTerm(A) {
						continue
					}
					newSet.Add(spliced)
				}
			}
			newSets[A] = newSet
		}
		sets = newSets
	}

	return FirstTable{newSetTable(names, sets)}, nil
}

// FirstOf returns the FIRST set of a single symbol: the symbol itself if it is
// a terminal, ε for ε, or the table entry for a non-terminal.
func (ft FirstTable) FirstOf(sym Symbol) []Symbol {
	if sym.IsNonTerminal() {
		return ft.Get(sym.Value)
	}
	return []Symbol{sym}
}

func hasPending(sets map[string]*linkedhashset.Set) bool {
	for _, s := range sets {
		for _, v := range s.Values() {
			if v.(Symbol).IsNonTerminal() {
				return true
			}
		}
	}
	return false
}

func pendingEdges(names []string, sets map[string]*linkedhashset.Set) map[string][]string {
	edges := map[string][]string{}
	for _, A := range names {
		for _, v := range sets[A].Values() {
			if sym := v.(Symbol); sym.IsNonTerminal() {
				edges[A] = append(edges[A], sym.Value)
			}
		}
	}
	return edges
}
